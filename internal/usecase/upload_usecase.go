package usecase

import (
	"context"
	"io"

	"morgenstar/internal/domain/service"
)

// UploadInput is an uploaded image.
type UploadInput struct {
	Folder string
	Size   int64
	File   io.Reader
}

// UploadUsecase stores back office images and serves them back.
type UploadUsecase interface {
	// Upload validates and stores an image; returns its public path.
	Upload(ctx context.Context, input *UploadInput) (string, error)

	// Open returns a stored file by public path.
	Open(ctx context.Context, publicPath string) (*service.StoredFile, error)
}
