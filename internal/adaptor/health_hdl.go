package adaptor

import (
	"net/http"

	"worklog-panel/internal/usecase"
	"worklog-panel/pkg/utils"
)

type HealthHandler struct {
	service usecase.HealthService
}

func NewHealthHandler(service usecase.HealthService) *HealthHandler {
	return &HealthHandler{service: service}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp, healthy := h.service.Check(r.Context())
	if !healthy {
		utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unavailable", resp, nil)
		return
	}
	utils.ResponseSuccess(w, "OK", resp)
}
