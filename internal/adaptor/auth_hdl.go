package adaptor

import (
	"encoding/json"
	"net/http"

	"worklog-panel/internal/data/entity"
	"worklog-panel/internal/dto/request"
	"worklog-panel/internal/dto/response"
	"worklog-panel/internal/usecase"
	"worklog-panel/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	client := usecase.ClientInfo{
		UserAgent: r.UserAgent(),
		IPAddress: r.RemoteAddr,
	}
	resp, err := h.service.Login(r.Context(), &req, client)
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), utils.GetPrincipal(r.Context())); err != nil {
		handleServiceError(w, h.log, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// Session handles GET /api/session. Anonymous callers get authenticated=false.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.CurrentSession(r.Context(), utils.GetPrincipal(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "get session")
		return
	}

	utils.ResponseSuccess(w, "Session retrieved successfully", resp)
}

// Panel handles GET /api/panel
func (h *AuthHandler) Panel(w http.ResponseWriter, r *http.Request) {
	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	parsed := entity.ParseRole(role)
	utils.ResponseSuccess(w, "Panel resolved", response.PanelResponse{
		Role:         parsed,
		LandingRoute: usecase.LandingRoute(parsed),
	})
}
