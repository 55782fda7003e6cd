// Package storage is the S3-compatible object store that holds rendered exports.
// Uploads stream from readers; nothing touches local disk.
package storage

import (
	"context"
	"io"
	"path"
	"time"
)

// PutObjectOptions describes an upload. Size is -1 when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo is what the store reports back after an upload.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
	Metadata    map[string]string
}

// Storage is the object store used by the export collaborator.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited download URL that needs no credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// ExportKey places filename under the owner's export prefix.
func ExportKey(ownerID, filename string) string {
	return path.Join("exports", ownerID, filename)
}
