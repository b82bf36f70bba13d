package adaptor

import (
	"worklog-panel/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	OTP    *OTPHandler
	User   *UserHandler
	Upload *UploadHandler
	Health *HealthHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		OTP:    NewOTPHandler(service.OTP, service.Auth, log),
		User:   NewUserHandler(service.User, log),
		Upload: NewUploadHandler(service.Upload, log),
		Health: NewHealthHandler(service.Health),
	}
}
