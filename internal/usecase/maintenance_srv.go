package usecase

import (
	"context"
	"time"

	"worklog-panel/internal/data/repository"

	"go.uber.org/zap"
)

const (
	defaultCleanupInterval = time.Hour
	otpRetention           = 24 * time.Hour
)

// MaintenanceService purges expired sessions and stale OTP codes.
type MaintenanceService interface {
	PurgeOnce(ctx context.Context) error
	Run(ctx context.Context, interval time.Duration)
}

type maintenanceService struct {
	sessionRepo repository.SessionRepository
	otpRepo     repository.OTPRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewMaintenanceService(repo *repository.Repository, log *zap.Logger) MaintenanceService {
	return &maintenanceService{
		sessionRepo: repo.Session,
		otpRepo:     repo.OTP,
		log:         log.With(zap.String("service", "maintenance")),
		now:         time.Now,
	}
}

func (s *maintenanceService) PurgeOnce(ctx context.Context) error {
	sessions, err := s.sessionRepo.CleanExpiredSessions(ctx)
	if err != nil {
		return err
	}

	codes, err := s.otpRepo.DeleteCreatedBefore(ctx, s.now().Add(-otpRetention))
	if err != nil {
		return err
	}

	if sessions > 0 || codes > 0 {
		s.log.Info("Housekeeping finished",
			zap.Int64("sessions_deleted", sessions),
			zap.Int64("otp_codes_deleted", codes))
	}
	return nil
}

// Run blocks until ctx is cancelled.
func (s *maintenanceService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("Housekeeping started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Housekeeping stopped")
			return
		case <-ticker.C:
			if err := s.PurgeOnce(ctx); err != nil {
				s.log.Error("Housekeeping failed", zap.Error(err))
			}
		}
	}
}
