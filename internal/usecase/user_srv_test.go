package usecase

import (
	"context"
	"fmt"
	"testing"

	"worklog-panel/internal/data/entity"
	"worklog-panel/internal/data/repository"
	"worklog-panel/internal/dto/request"
	"worklog-panel/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserFixture(t *testing.T) (UserService, *MockUserRepository, *MockSessionRepository) {
	t.Helper()
	users := new(MockUserRepository)
	sessions := new(MockSessionRepository)
	t.Cleanup(func() {
		users.AssertExpectations(t)
		sessions.AssertExpectations(t)
	})
	return NewUserService(users, sessions, zap.NewNop()), users, sessions
}

func TestLookupByUsername(t *testing.T) {
	service, users, _ := newUserFixture(t)
	ctx := context.Background()
	user := &entity.User{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Username: "mehmet", Role: entity.RoleStaff}

	users.On("FindByUsername", ctx, "mehmet").Return(user, nil).Once()
	users.On("FindByUsername", ctx, "nobody").Return(nil, nil).Once()

	resp, err := service.LookupByUsername(ctx, " Mehmet ")
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), resp.ID)
	assert.Equal(t, entity.RoleStaff, resp.Role)

	_, err = service.LookupByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.LookupByUsername(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateUser(t *testing.T) {
	service, users, _ := newUserFixture(t)
	ctx := context.Background()

	users.On("FindByUsername", ctx, "newhire").Return(nil, nil).Once()
	users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "newhire" &&
			u.Role == entity.RoleSupervizor &&
			utils.CheckPasswordHash("hunter22", u.PasswordHash)
	})).Return(nil).Once()

	resp, err := service.CreateUser(ctx, &request.CreateUserRequest{
		Username: "NewHire",
		Password: "hunter22",
		FullName: "New Hire",
		Role:     "SUPERVIZOR",
	})
	require.NoError(t, err)
	assert.Equal(t, "newhire", resp.Username)
}

func TestCreateUser_Duplicate(t *testing.T) {
	service, users, _ := newUserFixture(t)
	ctx := context.Background()

	users.On("FindByUsername", ctx, "ayse").Return(nil, nil).Once()
	users.On("Create", ctx, mock.Anything).
		Return(fmt.Errorf("create user ayse: %w", repository.ErrDuplicate)).Once()

	_, err := service.CreateUser(ctx, &request.CreateUserRequest{
		Username: "ayse", Password: "hunter22", FullName: "Ayse",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateUser_InvalidRole(t *testing.T) {
	service, _, _ := newUserFixture(t)
	_, err := service.CreateUser(context.Background(), &request.CreateUserRequest{
		Username: "ayse", Password: "hunter22", FullName: "Ayse", Role: "ADMIN",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateRole_RevokesSessions(t *testing.T) {
	service, users, sessions := newUserFixture(t)
	ctx := context.Background()
	id := uuid.New()

	users.On("UpdateRole", ctx, id, entity.RoleManager).Return(nil).Once()
	sessions.On("RevokeAllUserSessions", ctx, id).Return(nil).Once()

	require.NoError(t, service.UpdateRole(ctx, id.String(), &request.UpdateRoleRequest{Role: "MANAGER"}))
}

func TestUpdateRole_Clear(t *testing.T) {
	service, users, sessions := newUserFixture(t)
	ctx := context.Background()
	id := uuid.New()

	users.On("UpdateRole", ctx, id, entity.RoleUnset).Return(nil).Once()
	sessions.On("RevokeAllUserSessions", ctx, id).Return(nil).Once()

	require.NoError(t, service.UpdateRole(ctx, id.String(), &request.UpdateRoleRequest{}))
}

func TestUpdateRole_NotFound(t *testing.T) {
	service, users, sessions := newUserFixture(t)
	ctx := context.Background()
	id := uuid.New()

	users.On("UpdateRole", ctx, id, entity.RoleStaff).
		Return(fmt.Errorf("update role: %w", repository.ErrUserNotFound)).Once()

	err := service.UpdateRole(ctx, id.String(), &request.UpdateRoleRequest{Role: "STAFF"})
	assert.ErrorIs(t, err, ErrNotFound)
	sessions.AssertNotCalled(t, "RevokeAllUserSessions", mock.Anything, mock.Anything)

	assert.ErrorIs(t, service.UpdateRole(ctx, "not-a-uuid", &request.UpdateRoleRequest{}), ErrInvalidInput)
}

func TestListUsers(t *testing.T) {
	service, users, _ := newUserFixture(t)
	ctx := context.Background()
	page := []*entity.User{
		{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Username: "a"},
		{BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()}, Username: "b"},
	}

	users.On("FindAll", ctx, 2, 2).Return(page, nil).Once()
	users.On("CountAll", ctx).Return(int64(5), nil).Once()

	resp, err := service.ListUsers(ctx, &request.PaginatedRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 2)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.EqualValues(t, 5, resp.Pagination.Total)
}
