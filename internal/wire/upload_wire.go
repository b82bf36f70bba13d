package wire

import (
	"worklog-panel/internal/adaptor"
	"worklog-panel/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireUpload(r chi.Router, uploadHandler *adaptor.UploadHandler, authority *middleware.SessionAuthority) {
	r.With(authority.VerifyRequiredSession).Post("/api/upload/image", uploadHandler.UploadImage)
}
