package wire

import (
	"worklog-panel/internal/adaptor"
	"worklog-panel/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, authority *middleware.SessionAuthority) {
	// public
	r.Post("/api/login", authHandler.Login)
	r.With(authority.VerifyOptionalSession).Get("/api/session", authHandler.Session)

	// session required
	r.With(authority.VerifyRequiredSession).Post("/api/logout", authHandler.Logout)

	// session required and OTP elevated
	r.With(
		authority.VerifyRequiredSession,
		middleware.RequireVerified,
	).Get("/api/panel", authHandler.Panel)
}
