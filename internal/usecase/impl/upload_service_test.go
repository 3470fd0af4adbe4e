package impl

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/service"
	mockSvc "morgenstar/internal/mocks/service"
	"morgenstar/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type uploadServiceFixtures struct {
	service usecase.UploadUsecase
	storage *mockSvc.MockFileStorage
}

func createTestUploadService(t *testing.T) uploadServiceFixtures {
	storage := mockSvc.NewMockFileStorage(t)

	svc := NewUploadService(UploadServiceParams{
		Storage: storage,
		Logger:  newDiscardLogger(),
	})
	svc.(*uploadService).now = func() time.Time { return fixedNow }

	return uploadServiceFixtures{service: svc, storage: storage}
}

func TestUploadService_Upload_StoresSniffedImage(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		wantType string
		wantExt  string
	}{
		{"png", pngHeader, "image/png", ".png"},
		{"jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00"), "image/jpeg", ".jpg"},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBPVP8 "), "image/webp", ".webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestUploadService(t)
			ctx := context.Background()

			var storedKey string
			fx.storage.EXPECT().
				Put(ctx, mock.AnythingOfType("string"), tt.data, tt.wantType).
				RunAndReturn(func(_ context.Context, key string, _ []byte, _ string) (string, error) {
					storedKey = key

					return "/uploads/" + key, nil
				})

			path, err := fx.service.Upload(ctx, &usecase.UploadInput{
				Size: int64(len(tt.data)),
				File: bytes.NewReader(tt.data),
			})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(storedKey, "products/1773482400000-"), storedKey)
			assert.True(t, strings.HasSuffix(storedKey, tt.wantExt), storedKey)
			assert.Equal(t, "/uploads/"+storedKey, path)
		})
	}
}

func TestUploadService_Upload_CustomFolder(t *testing.T) {
	fx := createTestUploadService(t)
	ctx := context.Background()

	fx.storage.EXPECT().
		Put(ctx, mock.MatchedBy(func(key string) bool { return strings.HasPrefix(key, "brand-logos/") }), pngHeader, "image/png").
		Return("/uploads/brand-logos/x.png", nil)

	_, err := fx.service.Upload(ctx, &usecase.UploadInput{Folder: "brand-logos", File: bytes.NewReader(pngHeader)})
	require.NoError(t, err)
}

func TestUploadService_Upload_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		input   *usecase.UploadInput
		wantErr error
	}{
		{"no file", &usecase.UploadInput{}, domainerrors.ErrNoFileUploaded},
		{"empty file", &usecase.UploadInput{File: bytes.NewReader(nil)}, domainerrors.ErrNoFileUploaded},
		{"gif", &usecase.UploadInput{File: strings.NewReader("GIF89a\x01\x00\x01\x00")}, domainerrors.ErrInvalidFile},
		{"text", &usecase.UploadInput{File: strings.NewReader("<?php echo 1; ?>")}, domainerrors.ErrInvalidFile},
		{"declared too large", &usecase.UploadInput{Size: MaxUploadSize + 1, File: bytes.NewReader(pngHeader)}, domainerrors.ErrInvalidFile},
		{
			"actually too large",
			&usecase.UploadInput{File: io.MultiReader(bytes.NewReader(pngHeader), bytes.NewReader(make([]byte, MaxUploadSize)))},
			domainerrors.ErrInvalidFile,
		},
		{"path traversal folder", &usecase.UploadInput{Folder: "../etc", File: bytes.NewReader(pngHeader)}, domainerrors.ErrValidationFailed},
		{"upper case folder", &usecase.UploadInput{Folder: "Products", File: bytes.NewReader(pngHeader)}, domainerrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestUploadService(t)

			_, err := fx.service.Upload(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUploadService_Upload_StorageFailure(t *testing.T) {
	fx := createTestUploadService(t)
	ctx := context.Background()

	fx.storage.EXPECT().Put(ctx, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("bucket unavailable"))

	_, err := fx.service.Upload(ctx, &usecase.UploadInput{File: bytes.NewReader(pngHeader)})
	assert.ErrorIs(t, err, domainerrors.ErrUploadFailed)
}

func TestUploadService_Open(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		fx := createTestUploadService(t)
		file := &service.StoredFile{Reader: io.NopCloser(bytes.NewReader(pngHeader)), ContentType: "image/png", Size: int64(len(pngHeader))}
		fx.storage.EXPECT().Open(ctx, "/uploads/products/a.png").Return(file, nil)

		got, err := fx.service.Open(ctx, "/uploads/products/a.png")
		require.NoError(t, err)
		assert.Equal(t, "image/png", got.ContentType)
	})

	t.Run("missing", func(t *testing.T) {
		fx := createTestUploadService(t)
		fx.storage.EXPECT().Open(ctx, "/uploads/products/b.png").Return(nil, domainerrors.ErrFileNotFound)

		_, err := fx.service.Open(ctx, "/uploads/products/b.png")
		assert.ErrorIs(t, err, domainerrors.ErrFileNotFound)
	})
}
