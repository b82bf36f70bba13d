package wire

import (
	"worklog-panel/internal/adaptor"
	"worklog-panel/internal/usecase"
	"worklog-panel/pkg/middleware"
	"worklog-panel/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and the services main needs after wiring.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes.
func Wiring(deps usecase.Deps, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(deps, config, logger)
	handler := adaptor.NewHandler(service, logger)
	authority := middleware.NewSessionAuthority(deps.Tokens, deps.Repo.Session, logger)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger, deps.Metrics))
	r.Use(middleware.Recover(logger))

	wireAuth(r, handler.Auth, authority)
	wireOTP(r, handler.OTP, authority)
	wireUser(r, handler.User, authority, logger)
	wireUpload(r, handler.Upload, authority)

	r.Get("/health", handler.Health.Health)
	r.Method("GET", "/metrics", deps.Metrics.Handler())

	return &App{
		Router:  r,
		Service: service,
	}
}
