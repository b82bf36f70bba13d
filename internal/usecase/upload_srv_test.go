package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"worklog-panel/internal/dto/request"
	"worklog-panel/pkg/metrics"
	"worklog-panel/pkg/storage"
	"worklog-panel/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func pngFile() ImageFile {
	return ImageFile{
		Name:        "Photo.PNG",
		ContentType: "image/png",
		Size:        int64(len(pngHeader)),
		Body:        bytes.NewReader(pngHeader),
	}
}

func newUploadService(store ImageStore) UploadService {
	return NewUploadService(store, metrics.New("test"), &utils.Config{}, zap.NewNop())
}

func TestUploadImage_Success(t *testing.T) {
	store := new(MockImageStore)
	service := newUploadService(store)

	var uploaded []byte
	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "tasks/") && strings.HasSuffix(key, ".png")
	}), mock.Anything, int64(len(pngHeader)), "image/png").
		Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(2).(io.Reader))
		}).
		Return(&storage.Object{Key: "tasks/x.png", URL: "https://cdn/tasks/x.png"}, nil).Once()

	resp, err := service.UploadImage(context.Background(), pngFile(), &request.UploadImageRequest{Folder: "Tasks/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/tasks/x.png", resp.URL)
	assert.Equal(t, "tasks/x.png", resp.PublicID)
	assert.Equal(t, pngHeader, uploaded)
	store.AssertExpectations(t)
}

func TestUploadImage_DefaultFolder(t *testing.T) {
	store := new(MockImageStore)
	service := newUploadService(store)

	store.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "uploads/")
	}), mock.Anything, mock.Anything, mock.Anything).
		Return(&storage.Object{Key: "uploads/x.png"}, nil).Once()

	_, err := service.UploadImage(context.Background(), pngFile(), &request.UploadImageRequest{})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestUploadImage_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		file   ImageFile
		folder string
	}{
		{
			name:   "declared non image",
			file:   ImageFile{Name: "a.pdf", ContentType: "application/pdf", Size: 4, Body: strings.NewReader("%PDF")},
			folder: "docs",
		},
		{
			name:   "content is not an image",
			file:   ImageFile{Name: "a.png", ContentType: "image/png", Size: 11, Body: strings.NewReader("hello world")},
			folder: "docs",
		},
		{
			name:   "too large",
			file:   ImageFile{Name: "a.png", ContentType: "image/png", Size: 11 << 20, Body: bytes.NewReader(pngHeader)},
			folder: "docs",
		},
		{
			name:   "empty",
			file:   ImageFile{Name: "a.png", ContentType: "image/png", Size: 0, Body: bytes.NewReader(nil)},
			folder: "docs",
		},
		{
			name:   "bad folder",
			file:   pngFile(),
			folder: "../../etc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockImageStore)
			service := newUploadService(store)

			_, err := service.UploadImage(context.Background(), tt.file, &request.UploadImageRequest{Folder: tt.folder})
			assert.ErrorIs(t, err, ErrInvalidInput)
			store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUploadImage_HostFailure(t *testing.T) {
	store := new(MockImageStore)
	service := newUploadService(store)

	store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("bucket unreachable")).Once()

	_, err := service.UploadImage(context.Background(), pngFile(), &request.UploadImageRequest{Folder: "tasks"})
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "bucket unreachable")
}

func TestUploadImage_NotConfigured(t *testing.T) {
	service := newUploadService(nil)

	_, err := service.UploadImage(context.Background(), pngFile(), &request.UploadImageRequest{Folder: "tasks"})
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestUploadService_MaxBytes(t *testing.T) {
	assert.EqualValues(t, 10<<20, newUploadService(nil).MaxBytes())

	service := NewUploadService(nil, metrics.New("test"), &utils.Config{
		Storage: utils.StorageConfig{MaxUploadMB: 2},
	}, zap.NewNop())
	assert.EqualValues(t, 2<<20, service.MaxBytes())
}
