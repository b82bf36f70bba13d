package adaptor

import (
	"errors"
	"net/http"

	"worklog-panel/internal/dto/request"
	"worklog-panel/internal/usecase"
	"worklog-panel/pkg/utils"

	"go.uber.org/zap"
)

// multipart overhead allowed on top of the file limit
const formOverhead = 1 << 20

type UploadHandler struct {
	service usecase.UploadService
	log     *zap.Logger
}

func NewUploadHandler(service usecase.UploadService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		log:     log,
	}
}

// UploadImage handles POST /api/upload/image (multipart: file, folder)
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxBytes()+formOverhead)
	if err := r.ParseMultipartForm(formOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseBadRequest(w, "File is too large", nil)
			return
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, "File is required", map[string]string{"file": "This field is required"})
		return
	}
	defer file.Close()

	req := request.UploadImageRequest{Folder: r.FormValue("folder")}
	resp, err := h.service.UploadImage(r.Context(), usecase.ImageFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "upload image")
		return
	}

	utils.ResponseCreated(w, "Image uploaded successfully", resp)
}
