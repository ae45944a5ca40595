package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/media"
	"github.com/hamzaamir-design/Real-state-MarketPlace/internal/platform/logger"
)

// S3Storage implements media.AssetStore against a MinIO/S3 endpoint. The
// object key doubles as the handle's deletion key.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewS3Storage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *logger.Logger) (*S3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucketName, err, errBucketExists)
		}
	}

	log.Info("S3 storage initialized",
		zap.String("endpoint", endpoint),
		zap.String("bucket", bucketName),
		zap.Bool("use_ssl", useSSL))

	return &S3Storage{
		client: client,
		bucket: bucketName,
		logger: log.Named("S3Storage"),
	}, nil
}

// Upload stores the file under a fresh unique key and returns the handle.
func (s *S3Storage) Upload(ctx context.Context, file media.File) (media.AssetHandle, error) {
	ext := filepath.Ext(file.Name)
	objectKey := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(file.Data), int64(len(file.Data)), minio.PutObjectOptions{
		ContentType: file.ContentType,
		UserMetadata: map[string]string{
			"original-filename": file.Name,
		},
	})
	if err != nil {
		s.logger.Error("PutObject failed",
			zap.String("bucket", s.bucket),
			zap.String("key", objectKey),
			zap.Error(err))
		return media.AssetHandle{}, fmt.Errorf("%w: upload of %s: %v", media.ErrUpstreamUnavailable, file.Name, err)
	}

	// http(s)://<endpoint>/<bucket>/<objectKey>
	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)

	s.logger.Debug("object uploaded",
		zap.String("key", objectKey),
		zap.Int("size_bytes", len(file.Data)))

	return media.AssetHandle{URL: fileURL, DeleteKey: objectKey}, nil
}

// Delete removes the object behind a deletion key.
func (s *S3Storage) Delete(ctx context.Context, deleteKey string) error {
	err := s.client.RemoveObject(ctx, s.bucket, deleteKey, minio.RemoveObjectOptions{})
	if err != nil {
		s.logger.Error("RemoveObject failed",
			zap.String("bucket", s.bucket),
			zap.String("key", deleteKey),
			zap.Error(err))
		return fmt.Errorf("%w: delete of %s: %v", media.ErrUpstreamUnavailable, deleteKey, err)
	}
	return nil
}
