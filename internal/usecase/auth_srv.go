package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"worklog-panel/internal/data/entity"
	"worklog-panel/internal/data/repository"
	"worklog-panel/internal/dto/request"
	"worklog-panel/internal/dto/response"
	"worklog-panel/pkg/token"
	"worklog-panel/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ClientInfo is recorded on the session row at login.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, principal *utils.Principal) error
	CurrentSession(ctx context.Context, principal *utils.Principal) (*response.SessionResponse, error)
	// Elevate re-signs the caller's session with otp_verified set.
	Elevate(ctx context.Context, principal *utils.Principal) (*response.VerifyOTPResponse, error)
}

type authService struct {
	repo     *repository.Repository
	tokens   *token.Manager
	lifetime time.Duration
	log      *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *token.Manager,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	lifetime := time.Duration(config.JWT.ExpiryHours) * time.Hour
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &authService{
		repo:     repo,
		tokens:   tokens,
		lifetime: lifetime,
		log:      log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client ClientInfo) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	username := utils.NormalizeUsername(req.Username)
	user, err := s.repo.User.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", ErrStorage, err)
	}
	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", username))
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    user.ID,
		Token:     utils.GenerateSessionToken(),
		UserAgent: optionalString(client.UserAgent),
		IPAddress: optionalString(client.IPAddress),
		ExpiresAt: now.Add(s.lifetime),
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: create session: %v", ErrStorage, err)
	}

	signed, err := s.tokens.Issue(user.ID, string(user.Role), session.Token, false, session.ExpiresAt)
	if err != nil {
		s.log.Error("Failed to sign session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("sign session: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.AuthResponse{
		Token:        signed,
		ExpiresAt:    session.ExpiresAt,
		User:         response.UserToResponse(user),
		LandingRoute: LandingRoute(user.Role),
		OTPRequired:  true,
	}, nil
}

func (s *authService) Logout(ctx context.Context, principal *utils.Principal) error {
	if principal == nil {
		return fmt.Errorf("%w: authentication required", ErrUnauthorized)
	}

	if err := s.repo.Session.Revoke(ctx, principal.SessionToken); err != nil {
		if errors.Is(err, repository.ErrSessionGone) {
			return fmt.Errorf("%w: session already ended", ErrUnauthorized)
		}
		return fmt.Errorf("%w: revoke session: %v", ErrStorage, err)
	}

	s.log.Info("User logged out", zap.String("user_id", principal.UserID.String()))
	return nil
}

func (s *authService) CurrentSession(ctx context.Context, principal *utils.Principal) (*response.SessionResponse, error) {
	if principal == nil {
		return &response.SessionResponse{Authenticated: false}, nil
	}

	user, err := s.repo.User.FindByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %v", ErrStorage, err)
	}
	if user == nil {
		return &response.SessionResponse{Authenticated: false}, nil
	}

	summary := response.UserToResponse(user)
	return &response.SessionResponse{
		Authenticated: true,
		OTPVerified:   principal.OTPVerified,
		User:          &summary,
		LandingRoute:  LandingRoute(user.Role),
	}, nil
}

func (s *authService) Elevate(ctx context.Context, principal *utils.Principal) (*response.VerifyOTPResponse, error) {
	if principal == nil {
		return nil, fmt.Errorf("%w: authentication required", ErrUnauthorized)
	}

	session, err := s.repo.Session.FindValidSession(ctx, principal.SessionToken)
	if err != nil {
		return nil, fmt.Errorf("%w: find session: %v", ErrStorage, err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	signed, err := s.tokens.Issue(principal.UserID, principal.Role, session.Token, true, session.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}

	return &response.VerifyOTPResponse{
		Verified:  true,
		Token:     signed,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
