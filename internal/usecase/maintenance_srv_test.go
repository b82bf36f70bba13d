package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"worklog-panel/internal/data/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestPurgeOnce(t *testing.T) {
	sessions := new(MockSessionRepository)
	otps := new(MockOTPRepository)
	service := NewMaintenanceService(&repository.Repository{Session: sessions, OTP: otps}, zap.NewNop()).(*maintenanceService)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	ctx := context.Background()
	sessions.On("CleanExpiredSessions", ctx).Return(int64(2), nil).Once()
	otps.On("DeleteCreatedBefore", ctx, fixed.Add(-24*time.Hour)).Return(int64(9), nil).Once()

	assert.NoError(t, service.PurgeOnce(ctx))
	sessions.AssertExpectations(t)
	otps.AssertExpectations(t)
}

func TestPurgeOnce_StopsOnError(t *testing.T) {
	sessions := new(MockSessionRepository)
	otps := new(MockOTPRepository)
	service := NewMaintenanceService(&repository.Repository{Session: sessions, OTP: otps}, zap.NewNop())

	ctx := context.Background()
	sessions.On("CleanExpiredSessions", ctx).Return(int64(0), errors.New("db down")).Once()

	assert.Error(t, service.PurgeOnce(ctx))
	otps.AssertNotCalled(t, "DeleteCreatedBefore", mock.Anything, mock.Anything)
}

func TestRun_StopsWithContext(t *testing.T) {
	service := NewMaintenanceService(&repository.Repository{}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		service.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
