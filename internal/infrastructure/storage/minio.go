package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"monument-backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStorage handles object storage for uploaded media. The high level
// client covers simple puts and gets; the core client is needed for the
// multipart signing flow the admin uploader uses for large files.
type MinIOStorage struct {
	client *minio.Client
	core   *minio.Core
	bucket string
}

func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	}

	client, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	core, err := minio.NewCore(cfg.Endpoint, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create minio core client: %w", err)
	}

	s := &MinIOStorage{client: client, core: core, bucket: cfg.Bucket}
	if err := s.EnsureBucket(context.Background(), cfg.Bucket); err != nil {
		return nil, err
	}

	return s, nil
}

// DefaultBucket is the bucket uploads land in when the caller does not
// pick one.
func (s *MinIOStorage) DefaultBucket() string {
	return s.bucket
}

func (s *MinIOStorage) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
	}
	return nil
}

func (s *MinIOStorage) Upload(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Get returns the object stream and its metadata. The caller owns the
// ReadCloser.
func (s *MinIOStorage) Get(ctx context.Context, bucket, key string) (io.ReadCloser, minio.ObjectInfo, error) {
	obj, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, minio.ObjectInfo{}, fmt.Errorf("failed to get %s/%s: %w", bucket, key, err)
	}

	info, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, minio.ObjectInfo{}, err
	}

	return obj, info, nil
}

func (s *MinIOStorage) Delete(ctx context.Context, bucket, key string) error {
	if err := s.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", bucket, key, err)
	}
	return nil
}

// PresignedPut returns a URL the browser can PUT the object to directly.
func (s *MinIOStorage) PresignedPut(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, bucket, key, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign put for %s/%s: %w", bucket, key, err)
	}
	return u.String(), nil
}

// NewMultipartUpload starts a multipart upload and returns its id.
func (s *MinIOStorage) NewMultipartUpload(ctx context.Context, bucket, key, contentType string) (string, error) {
	uploadID, err := s.core.NewMultipartUpload(ctx, bucket, key, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to start multipart upload for %s/%s: %w", bucket, key, err)
	}
	return uploadID, nil
}

// PresignedPartURLs returns one presigned PUT URL per part, 1-based.
func (s *MinIOStorage) PresignedPartURLs(ctx context.Context, bucket, key, uploadID string, parts int, expiry time.Duration) ([]string, error) {
	urls := make([]string, 0, parts)
	for part := 1; part <= parts; part++ {
		params := make(url.Values)
		params.Set("uploadId", uploadID)
		params.Set("partNumber", strconv.Itoa(part))

		u, err := s.client.Presign(ctx, "PUT", bucket, key, expiry, params)
		if err != nil {
			return nil, fmt.Errorf("failed to presign part %d for %s/%s: %w", part, bucket, key, err)
		}
		urls = append(urls, u.String())
	}
	return urls, nil
}

// CompleteMultipartUpload finishes a multipart upload from the part etags
// the client collected.
func (s *MinIOStorage) CompleteMultipartUpload(ctx context.Context, bucket, key, uploadID string, etags []string) error {
	parts := make([]minio.CompletePart, 0, len(etags))
	for i, etag := range etags {
		parts = append(parts, minio.CompletePart{PartNumber: i + 1, ETag: etag})
	}

	_, err := s.core.CompleteMultipartUpload(ctx, bucket, key, uploadID, parts, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to complete multipart upload for %s/%s: %w", bucket, key, err)
	}
	return nil
}
