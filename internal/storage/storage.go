// Package storage persists uploaded bootcamp photos. The disk backend is the
// default; an S3-compatible backend via MinIO can be selected with
// STORAGE_DRIVER=minio.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/arzan03/CampDirectory/internal/config"
)

// PhotoStore writes an uploaded photo under the given name and returns the
// location clients can use to reference it.
type PhotoStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}

// New builds the photo store selected by the configuration.
func New(cfg *config.Config) (PhotoStore, error) {
	switch cfg.StorageDriver {
	case "disk", "":
		return NewDiskStore(cfg.FileUploadPath)
	case "minio":
		return NewMinioStore(cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
