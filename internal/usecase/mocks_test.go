package usecase

import (
	"context"
	"io"
	"time"

	"worklog-panel/internal/data/entity"
	"worklog-panel/pkg/sms"
	"worklog-panel/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}
func (m *MockUserRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockUserRepository) UpdateProfile(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

type MockSessionRepository struct{ mock.Mock }

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}
func (m *MockSessionRepository) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}
func (m *MockSessionRepository) Revoke(ctx context.Context, token uuid.UUID) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
func (m *MockSessionRepository) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockSessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOTPRepository struct{ mock.Mock }

func (m *MockOTPRepository) Create(ctx context.Context, otp *entity.OTPCode) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}
func (m *MockOTPRepository) FindLatestValid(ctx context.Context, userID uuid.UUID) (*entity.OTPCode, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OTPCode), args.Error(1)
}
func (m *MockOTPRepository) Consume(ctx context.Context, otpID uuid.UUID) (bool, error) {
	args := m.Called(ctx, otpID)
	return args.Bool(0), args.Error(1)
}
func (m *MockOTPRepository) DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockSender struct{ mock.Mock }

func (m *MockSender) Send(ctx context.Context, msg sms.Message) (*sms.Result, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sms.Result), args.Error(1)
}

type MockLimiter struct{ mock.Mock }

func (m *MockLimiter) Check(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockLimiter) RecordFailure(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockLimiter) Reset(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type MockImageStore struct{ mock.Mock }

func (m *MockImageStore) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*storage.Object, error) {
	args := m.Called(ctx, key, r, size, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}
