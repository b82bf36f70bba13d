package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"worklog-panel/internal/usecase"
	"worklog-panel/pkg/utils"

	"go.uber.org/zap"
)

var errorStatus = []struct {
	kind   error
	status int
}{
	{usecase.ErrInvalidInput, http.StatusBadRequest},
	{usecase.ErrMismatch, http.StatusBadRequest},
	{usecase.ErrUnauthorized, http.StatusUnauthorized},
	{usecase.ErrForbidden, http.StatusForbidden},
	{usecase.ErrNotFound, http.StatusNotFound},
	{usecase.ErrConflict, http.StatusConflict},
	{usecase.ErrTooManyAttempts, http.StatusTooManyRequests},
	{usecase.ErrUpstream, http.StatusBadGateway},
}

// handleServiceError converts a service error into the JSON envelope.
// Unknown errors and storage failures never leak their text.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	for _, e := range errorStatus {
		if errors.Is(err, e.kind) {
			log.Warn(operation+" failed", zap.Error(err), zap.Int("status", e.status))
			utils.ResponseJSON(w, e.status, false, userMessage(err, e.kind), nil, nil)
			return
		}
	}

	log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}

// userMessage strips the error kind prefix added by fmt.Errorf("%w: ...").
func userMessage(err, kind error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, kind.Error()+": "); ok && rest != "" {
		return rest
	}
	return msg
}
