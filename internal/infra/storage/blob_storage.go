// Package storage keeps uploaded files in a gocloud.dev bucket.
package storage

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"morgenstar/config"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket drivers selected by URL scheme: file://, gs:// and mem://.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

const (
	defaultBucketURL    = "mem://"
	defaultPublicPrefix = "/uploads"
)

// Params defines the dependencies of the bucket storage
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type blobStorage struct {
	bucket       *blob.Bucket
	publicPrefix string
}

// New opens the configured bucket and closes it on shutdown.
func New(params Params) (service.FileStorage, error) {
	bucketURL, publicPrefix := defaultBucketURL, defaultPublicPrefix
	if cfg := params.Config.Storage; cfg != nil {
		if cfg.BucketURL != "" {
			bucketURL = cfg.BucketURL
		}
		if cfg.PublicPrefix != "" {
			publicPrefix = cfg.PublicPrefix
		}
	}

	bucket, err := blob.OpenBucket(context.Background(), bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	params.Logger.Info("Upload storage ready", slog.String("bucket", bucketURL))

	return NewBlobStorage(bucket, publicPrefix), nil
}

// NewBlobStorage wraps an opened bucket. Files are stored below the public prefix,
// so "/uploads/products/a.jpg" lives at bucket key "uploads/products/a.jpg".
func NewBlobStorage(bucket *blob.Bucket, publicPrefix string) service.FileStorage {
	return &blobStorage{
		bucket:       bucket,
		publicPrefix: "/" + strings.Trim(publicPrefix, "/"),
	}
}

// Put writes data under key and returns its public path.
func (s *blobStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	publicPath := path.Join(s.publicPrefix, key)

	err := s.bucket.WriteAll(ctx, bucketKey(publicPath), data, &blob.WriterOptions{
		ContentType:  contentType,
		CacheControl: "public, max-age=31536000, immutable",
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to write %s", publicPath)
	}

	return publicPath, nil
}

// Open returns a reader for a public path below the prefix.
func (s *blobStorage) Open(ctx context.Context, publicPath string) (*service.StoredFile, error) {
	cleaned := path.Clean("/" + publicPath)
	if !strings.HasPrefix(cleaned, s.publicPrefix+"/") {
		return nil, domainerrors.ErrFileNotFound
	}

	reader, err := s.bucket.NewReader(ctx, bucketKey(cleaned), nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, domainerrors.ErrFileNotFound
		}

		return nil, errors.Wrapf(err, "failed to open %s", cleaned)
	}

	return &service.StoredFile{
		Reader:      reader,
		ContentType: reader.ContentType(),
		Size:        reader.Size(),
	}, nil
}

func bucketKey(publicPath string) string {
	return strings.TrimPrefix(publicPath, "/")
}
