package wire

import (
	"worklog-panel/internal/adaptor"
	"worklog-panel/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireOTP(r chi.Router, otpHandler *adaptor.OTPHandler, authority *middleware.SessionAuthority) {
	r.With(authority.VerifyRequiredSession).Route("/api/otp", func(r chi.Router) {
		r.Post("/send", otpHandler.SendOTP)
		r.Post("/verify", otpHandler.VerifyOTP)
	})
}
