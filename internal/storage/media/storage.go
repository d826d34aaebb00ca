package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bulatminnakhmetov/collection-tracker/internal/config"
)

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrAccessDenied   = errors.New("storage: access denied")
)

// compressed blobs are opaque zlib streams
const objectContentType = "application/zlib"

// StorageProvider keeps compressed media blobs outside the database
type StorageProvider interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

var _ StorageProvider = (*MinioStorage)(nil)

// MinioStorage stores blobs in a MinIO or S3 compatible bucket
type MinioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinioStorage connects to MinIO and creates the bucket if it is missing
func NewMinioStorage(ctx context.Context, cfg config.MinioConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, mapMinioError(err))
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, mapMinioError(err))
		}
	}

	return &MinioStorage{client: client, bucket: cfg.Bucket}, nil
}

// ObjectKey returns a fresh key for a blob of the given listing
func ObjectKey(listingID int64) string {
	return fmt.Sprintf("listings/%d/%s", listingID, uuid.New().String())
}

// Put uploads a blob under key
func (s *MinioStorage) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: objectContentType,
	})
	if err != nil {
		return mapMinioError(err)
	}
	return nil
}

// Get downloads the blob stored under key
func (s *MinioStorage) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioError(err)
	}
	defer obj.Close()

	// GetObject is lazy, Stat surfaces a missing key
	if _, err := obj.Stat(); err != nil {
		return nil, mapMinioError(err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, mapMinioError(err)
	}
	return data, nil
}

// Delete removes the blob stored under key
func (s *MinioStorage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return mapMinioError(err)
	}
	return nil
}

// mapMinioError translates MinIO SDK errors into storage errors
func mapMinioError(err error) error {
	if err == nil {
		return nil
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return ErrObjectNotFound
	case "AccessDenied":
		return ErrAccessDenied
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return ErrObjectNotFound
	case http.StatusForbidden:
		return ErrAccessDenied
	}

	return fmt.Errorf("storage provider error: %w", err)
}
