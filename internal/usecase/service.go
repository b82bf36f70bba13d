package usecase

import (
	"worklog-panel/internal/data/repository"
	"worklog-panel/pkg/database"
	"worklog-panel/pkg/metrics"
	"worklog-panel/pkg/sms"
	"worklog-panel/pkg/token"
	"worklog-panel/pkg/utils"

	"go.uber.org/zap"
)

// Deps carries the infrastructure the services are built from.
// Limiter and Images may be nil.
type Deps struct {
	DB      database.PgxIface
	Repo    *repository.Repository
	Tokens  *token.Manager
	SMS     sms.Sender
	Limiter AttemptLimiter
	Images  ImageStore
	Metrics *metrics.Metrics
}

type Service struct {
	Auth        AuthService
	OTP         OTPService
	User        UserService
	Upload      UploadService
	Health      HealthService
	Maintenance MaintenanceService
}

func NewService(deps Deps, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:        NewAuthService(deps.Repo, deps.Tokens, config, log),
		OTP:         NewOTPService(deps.Repo, deps.SMS, deps.Limiter, deps.Metrics, config, log),
		User:        NewUserService(deps.Repo.User, deps.Repo.Session, log),
		Upload:      NewUploadService(deps.Images, deps.Metrics, config, log),
		Health:      NewHealthService(deps.DB, log),
		Maintenance: NewMaintenanceService(deps.Repo, log),
	}
}
