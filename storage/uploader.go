package storage

import (
	"context"
	"io"
)

// Content types of objects the service writes to the bucket.
const (
	ContentTypeJSON = "application/json"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores tournament snapshots in external object storage.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}
