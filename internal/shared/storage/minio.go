package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/samcomo/dbz-api-server/internal/config"
	"github.com/samcomo/dbz-api-server/internal/shared/logger"
)

// MinioImageStore streams images to a MinIO bucket
type MinioImageStore struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinioImageStore creates a MinIO client and fails fast if the bucket is missing.
// The endpoint scheme decides Secure; it is stripped before dialing.
func NewMinioImageStore(ctx context.Context, cfg config.StorageConfig) (*MinioImageStore, error) {
	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("MinIO 클라이언트 생성 실패: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("MinIO 버킷 확인 실패: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("MinIO 버킷이 존재하지 않습니다: %q", cfg.Bucket)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = objectURL(client.EndpointURL().String(), cfg.Bucket)
	}

	slog.Info("MinIO 이미지 스토리지 초기화", "endpoint", endpoint, "bucket", cfg.Bucket)

	return &MinioImageStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

func (s *MinioImageStore) Upload(ctx context.Context, file ImageFile, destinationKey string) UploadState {
	log := logger.FromContext(ctx)

	size := file.Size
	if size <= 0 {
		size = -1 // unknown length, multipart upload
	}

	info, err := s.client.PutObject(ctx, s.bucket, destinationKey, file.Reader, size, minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		log.Error("MinIO 이미지 업로드 실패", "key", destinationKey, "error", err)
		return NotUploaded()
	}

	log.Info("MinIO 이미지 업로드 성공", "key", info.Key, "size", info.Size)
	return Uploaded(objectURL(s.baseURL, destinationKey))
}

// Ensure MinioImageStore implements ImageStore
var _ ImageStore = (*MinioImageStore)(nil)
