package storage

import (
	"context"
	"io"
	"testing"

	domainerrors "morgenstar/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func TestBlobStorage_PutAndOpen(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	storage := NewBlobStorage(bucket, "/uploads/")
	ctx := context.Background()

	publicPath, err := storage.Put(ctx, "products/1700000000000-ab12cd.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/1700000000000-ab12cd.png", publicPath)

	exists, err := bucket.Exists(ctx, "uploads/products/1700000000000-ab12cd.png")
	require.NoError(t, err)
	assert.True(t, exists)

	file, err := storage.Open(ctx, publicPath)
	require.NoError(t, err)
	defer file.Reader.Close()

	content, err := io.ReadAll(file.Reader)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))
	assert.Equal(t, "image/png", file.ContentType)
	assert.Equal(t, int64(len("png-bytes")), file.Size)
}

func TestBlobStorage_OpenMissing(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	storage := NewBlobStorage(bucket, "/uploads")

	_, err := storage.Open(context.Background(), "/uploads/products/missing.png")
	assert.ErrorIs(t, err, domainerrors.ErrFileNotFound)
}

func TestBlobStorage_OpenOutsidePrefix(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	storage := NewBlobStorage(bucket, "/uploads")
	require.NoError(t, bucket.WriteAll(context.Background(), "secret.txt", []byte("x"), nil))

	_, err := storage.Open(context.Background(), "/uploads/../secret.txt")
	assert.ErrorIs(t, err, domainerrors.ErrFileNotFound)
}
