package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"worklog-panel/internal/dto/request"
	"worklog-panel/internal/dto/response"
	"worklog-panel/pkg/metrics"
	"worklog-panel/pkg/storage"
	"worklog-panel/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultMaxUploadMB = 10
	sniffLen           = 512
)

// ImageStore is the media host contract.
type ImageStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*storage.Object, error)
}

// ImageFile describes one uploaded part.
type ImageFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadService interface {
	UploadImage(ctx context.Context, file ImageFile, req *request.UploadImageRequest) (*response.UploadResponse, error)
	MaxBytes() int64
}

type uploadService struct {
	store    ImageStore
	maxBytes int64
	metrics  *metrics.Metrics
	log      *zap.Logger
}

// NewUploadService accepts a nil store; uploads then fail as upstream errors.
func NewUploadService(store ImageStore, m *metrics.Metrics, config *utils.Config, log *zap.Logger) UploadService {
	maxMB := config.Storage.MaxUploadMB
	if maxMB <= 0 {
		maxMB = defaultMaxUploadMB
	}
	return &uploadService{
		store:    store,
		maxBytes: int64(maxMB) << 20,
		metrics:  m,
		log:      log.With(zap.String("service", "upload")),
	}
}

func (s *uploadService) MaxBytes() int64 {
	return s.maxBytes
}

func (s *uploadService) UploadImage(ctx context.Context, file ImageFile, req *request.UploadImageRequest) (*response.UploadResponse, error) {
	if req.Folder == "" {
		req.Folder = "uploads"
	}
	req.Folder = strings.Trim(strings.ToLower(req.Folder), "/")
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	if file.Size <= 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	if file.Size > s.maxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d MB", ErrInvalidInput, s.maxBytes>>20)
	}

	declared, _, err := mime.ParseMediaType(file.ContentType)
	if err != nil || !strings.HasPrefix(declared, "image/") {
		return nil, fmt.Errorf("%w: only image files are allowed", ErrInvalidInput)
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file.Body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("%w: read file: %v", ErrInvalidInput, err)
	}
	head = head[:n]
	if sniffed := http.DetectContentType(head); !strings.HasPrefix(sniffed, "image/") {
		s.log.Warn("Upload content is not an image",
			zap.String("declared", declared),
			zap.String("sniffed", sniffed))
		return nil, fmt.Errorf("%w: file content is not an image", ErrInvalidInput)
	}

	if s.store == nil {
		return nil, fmt.Errorf("%w: image storage is not configured", ErrUpstream)
	}

	key := path.Join(req.Folder, uuid.New().String()+imageExtension(file.Name, declared))
	obj, err := s.store.Upload(ctx, key, io.MultiReader(bytes.NewReader(head), file.Body), file.Size, declared)
	if err != nil {
		return nil, fmt.Errorf("%w: image upload failed: %v", ErrUpstream, err)
	}
	s.metrics.ImagesUploaded.Inc()

	return &response.UploadResponse{
		URL:      obj.URL,
		PublicID: obj.Key,
	}, nil
}

func imageExtension(name, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
