package wire

import (
	"worklog-panel/internal/adaptor"
	"worklog-panel/internal/data/entity"
	"worklog-panel/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures profile routes and role-gated user management
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	authority *middleware.SessionAuthority,
	log *zap.Logger,
) {
	// login-phase lookup works with or without a session
	r.With(authority.VerifyOptionalSession).Get("/api/users/lookup", userHandler.Lookup)

	r.With(authority.VerifyRequiredSession).Route("/api/users/me", func(r chi.Router) {
		r.Get("/", userHandler.GetProfile)
		r.Patch("/", userHandler.UpdateProfile)
	})

	r.With(
		authority.VerifyRequiredSession,
		middleware.RequireVerified,
		middleware.RequireRoles(log, entity.RoleDeveloper, entity.RoleManager),
	).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.CreateUser)
		r.Patch("/{id}/role", userHandler.UpdateRole)
	})
}
