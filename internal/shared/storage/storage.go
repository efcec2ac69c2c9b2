// Package storage uploads images to external object storage.
// Failures never escape as errors: callers receive an UploadState and decide
// whether to commit anything that depends on the upload.
package storage

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

type ImageCategory string

const (
	CategoryProfile ImageCategory = "profile"
)

// ImageFile is a streamed image payload with its metadata
type ImageFile struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// UploadState is the outcome of an upload. URL is meaningful only when Success is true.
type UploadState struct {
	URL     string
	Success bool
}

// Uploaded returns a successful state for url
func Uploaded(url string) UploadState {
	return UploadState{URL: url, Success: true}
}

// NotUploaded returns a failed state
func NotUploaded() UploadState {
	return UploadState{}
}

type ImageStore interface {
	Upload(ctx context.Context, file ImageFile, destinationKey string) UploadState
}

// NewObjectKey builds "<category>/<ownerID>/<uuid><ext>".
// The extension comes from the original filename and is lower-cased.
func NewObjectKey(category ImageCategory, ownerID string, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(string(category), ownerID, uuid.NewString()+ext)
}

// objectURL joins a public base URL and an object key
func objectURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(key, "/")
}
