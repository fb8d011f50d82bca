package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"artplatform-backend/internal/config"
)

// ObjectStorage is the narrow contract services use to talk to the object store.
// Implemented by MinIOStorage; mocked in service tests.
type ObjectStorage interface {
	// Upload writes data under key and returns the public URL
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete removes a single object by key
	Delete(ctx context.Context, key string) error
	// KeyFromURL maps a public URL back to its object key, "" when external
	KeyFromURL(url string) string
}

// MinIOStorage handles file uploads to MinIO
type MinIOStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorage initializes the MinIO client and ensures the bucket exists
func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOStorage{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Upload uploads a file to MinIO and returns the public URL
// key: object path inside the bucket (e.g. gallery/1718000000-piece.jpg)
func (s *MinIOStorage) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	reader := bytes.NewReader(data)

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		reader,
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType:  contentType,
			CacheControl: "max-age=3600",
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	return s.PublicURL(key), nil
}

// PublicURL builds the public access URL for an object
// Format: http://localhost:9000/rise/gallery/1718000000-piece.jpg
func (s *MinIOStorage) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, key)
}

// Delete removes a single object from MinIO
func (s *MinIOStorage) Delete(ctx context.Context, key string) error {
	err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// KeyFromURL derives the object key from a public URL produced by PublicURL.
// Returns "" for URLs that do not point into our bucket (external images).
func (s *MinIOStorage) KeyFromURL(url string) string {
	prefix := fmt.Sprintf("%s/%s/", s.client.EndpointURL().String(), s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

// ObjectKey builds a collision-resistant key for an uploaded file:
// "<folder>/<unix-timestamp>-<original-name>". Mirrors how records link
// their images: one folder per record kind plus a timestamp qualifier.
func ObjectKey(folder, filename string) string {
	base := filepath.Base(filename)
	return fmt.Sprintf("%s/%d-%s", folder, time.Now().UnixMilli(), base)
}
