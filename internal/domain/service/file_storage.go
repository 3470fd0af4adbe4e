package service

import (
	"context"
	"io"
)

// StoredFile is an opened stored file.
type StoredFile struct {
	Reader      io.ReadCloser
	ContentType string
	Size        int64
}

// FileStorage stores uploaded files.
type FileStorage interface {
	// Put writes data under key and returns the public path of the stored file.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Open reads the file behind a public path. A missing file returns domain ErrFileNotFound.
	Open(ctx context.Context, publicPath string) (*StoredFile, error)
}
