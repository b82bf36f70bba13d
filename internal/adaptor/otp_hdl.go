package adaptor

import (
	"encoding/json"
	"net/http"

	"worklog-panel/internal/dto/request"
	"worklog-panel/internal/usecase"
	"worklog-panel/pkg/utils"

	"go.uber.org/zap"
)

type OTPHandler struct {
	service usecase.OTPService
	auth    usecase.AuthService
	log     *zap.Logger
}

func NewOTPHandler(service usecase.OTPService, auth usecase.AuthService, log *zap.Logger) *OTPHandler {
	return &OTPHandler{
		service: service,
		auth:    auth,
		log:     log,
	}
}

// SendOTP handles POST /api/otp/send
func (h *OTPHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	resp, err := h.service.SendOTP(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.log, err, "send OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP sent successfully", resp)
}

// VerifyOTP handles POST /api/otp/verify. On success the response carries a
// re-signed session with otp_verified set.
func (h *OTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	principal := utils.GetPrincipal(r.Context())
	if principal == nil {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.VerifyOTP(r.Context(), principal.UserID, &req); err != nil {
		handleServiceError(w, h.log, err, "verify OTP")
		return
	}

	resp, err := h.auth.Elevate(r.Context(), principal)
	if err != nil {
		handleServiceError(w, h.log, err, "elevate session")
		return
	}

	utils.ResponseSuccess(w, "OTP verified successfully", resp)
}
