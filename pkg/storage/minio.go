package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"worklog-panel/pkg/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// Object is a stored file as seen by clients.
type Object struct {
	Key string
	URL string
}

// MinioStorage uploads objects to an S3-compatible media host.
type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

// NewMinioStorage connects to the endpoint and makes sure the bucket exists.
func NewMinioStorage(ctx context.Context, cfg utils.StorageConfig, logger *zap.Logger) (*MinioStorage, error) {
	log := logger.Named("MinioStorage")
	log.Info("Initializing media storage",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("bucket", cfg.Bucket),
		zap.Bool("use_ssl", cfg.UseSSL))

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", cfg.Endpoint, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %s: %w", cfg.Bucket, err)
		}
		log.Info("Bucket created", zap.String("bucket", cfg.Bucket))
	}

	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = client.EndpointURL().String() + "/" + cfg.Bucket
	}

	return &MinioStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		logger:    log,
	}, nil
}

// Upload streams size bytes from r under key.
func (s *MinioStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (*Object, error) {
	info, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.logger.Error("PutObject failed",
			zap.String("bucket", s.bucket),
			zap.String("key", key),
			zap.Error(err))
		return nil, fmt.Errorf("upload object %s to bucket %s: %w", key, s.bucket, err)
	}

	s.logger.Info("Object uploaded",
		zap.String("key", info.Key),
		zap.String("etag", info.ETag),
		zap.Int64("size", info.Size))

	return &Object{
		Key: info.Key,
		URL: s.publicURL + "/" + info.Key,
	}, nil
}
