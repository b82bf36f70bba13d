package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"worklog-panel/internal/data/entity"
	"worklog-panel/internal/data/repository"
	"worklog-panel/internal/dto/request"
	"worklog-panel/internal/dto/response"
	"worklog-panel/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	LookupByUsername(ctx context.Context, username string) (*response.UserResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	UpdateRole(ctx context.Context, userID string, req *request.UpdateRoleRequest) error
	ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	log         *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		log:         log.With(zap.String("service", "user")),
	}
}

func (us *userService) LookupByUsername(ctx context.Context, username string) (*response.UserResponse, error) {
	normalized := utils.NormalizeUsername(username)
	if normalized == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	user, err := us.userRepo.FindByUsername(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", ErrStorage, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", ErrStorage, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *request.UpdateProfileRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", ErrStorage, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	user.FullName = strings.TrimSpace(req.FullName)
	user.Phone = trimmedOrNil(req.Phone)
	user.UpdatedAt = time.Now()

	if err := us.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: update user: %v", ErrStorage, err)
	}

	us.log.Info("Profile updated", zap.String("user_id", user.ID.String()))
	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	username := utils.NormalizeUsername(req.Username)
	existing, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: check username: %v", ErrStorage, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username already taken", ErrConflict)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     username,
		PasswordHash: hashed,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         entity.ParseRole(req.Role),
		Phone:        trimmedOrNil(req.Phone),
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username already taken", ErrConflict)
		}
		return nil, fmt.Errorf("%w: create user: %v", ErrStorage, err)
	}

	us.log.Info("User provisioned",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateRole sets or clears a role and ends the user's sessions, since the
// role is carried in every signed session.
func (us *userService) UpdateRole(ctx context.Context, userID string, req *request.UpdateRoleRequest) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrInvalidInput)
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	if err := us.userRepo.UpdateRole(ctx, id, entity.ParseRole(req.Role)); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return fmt.Errorf("%w: update role: %v", ErrStorage, err)
	}

	if err := us.sessionRepo.RevokeAllUserSessions(ctx, id); err != nil {
		return fmt.Errorf("%w: revoke sessions: %v", ErrStorage, err)
	}

	return nil
}

func (us *userService) ListUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if req.Page < 1 {
		req.Page = 1
	}
	req.PerPage = req.Limit()

	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", ErrStorage, err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: count users: %v", ErrStorage, err)
	}

	items := make([]response.UserResponse, len(users))
	for i, user := range users {
		items[i] = response.UserToResponse(user)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
