package storage

import (
	"context"
	"fmt"

	"github.com/samcomo/dbz-api-server/internal/config"
)

// NewImageStore creates the image store selected by cfg.Provider
func NewImageStore(ctx context.Context, cfg config.StorageConfig) (ImageStore, error) {
	switch cfg.Provider {
	case config.StorageS3:
		store, err := NewS3ImageStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageMinio:
		store, err := NewMinioImageStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("지원하지 않는 스토리지: %s", cfg.Provider)
	}
}
