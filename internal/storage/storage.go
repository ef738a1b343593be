// Package storage keeps uploaded files either on local disk or in an
// S3-compatible bucket behind one interface.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/yukikurage/brand-studio-api/internal/config"
)

// Store persists uploaded objects under a key.
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New builds the store selected by cfg.StorageDriver.
func New(cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case "s3":
		return NewS3Store(S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
	case "local", "":
		return NewLocalStore(cfg.UploadDir, cfg.UploadPublicURL)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// NewKey returns a collision-free key inside folder that keeps the
// original file extension.
func NewKey(folder, originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	return path.Join(folder, uuid.NewString()+ext)
}
