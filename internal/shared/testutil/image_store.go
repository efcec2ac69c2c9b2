package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/samcomo/dbz-api-server/internal/shared/storage"
)

const FakeImageBaseURL = "https://fake-storage.dbz.test/"

// FakeImageStore is a storage.ImageStore that keeps uploads in memory
type FakeImageStore struct {
	mu      sync.Mutex
	uploads map[string][]byte

	UploadFunc func(ctx context.Context, file storage.ImageFile, destinationKey string) storage.UploadState
}

// NewFakeImageStore creates a fake store that accepts every upload
func NewFakeImageStore() *FakeImageStore {
	return &FakeImageStore{uploads: map[string][]byte{}}
}

func (f *FakeImageStore) Upload(ctx context.Context, file storage.ImageFile, destinationKey string) storage.UploadState {
	if f.UploadFunc != nil {
		return f.UploadFunc(ctx, file, destinationKey)
	}

	body, err := io.ReadAll(file.Reader)
	if err != nil {
		return storage.NotUploaded()
	}

	f.mu.Lock()
	f.uploads[destinationKey] = body
	f.mu.Unlock()

	return storage.Uploaded(FakeImageBaseURL + destinationKey)
}

// Uploads returns a copy of the uploaded objects keyed by destination key
func (f *FakeImageStore) Uploads() map[string][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	uploads := make(map[string][]byte, len(f.uploads))
	for k, v := range f.uploads {
		uploads[k] = v
	}
	return uploads
}

// Ensure FakeImageStore implements storage.ImageStore
var _ storage.ImageStore = (*FakeImageStore)(nil)
