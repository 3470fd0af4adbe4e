package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	deliverycontext "morgenstar/internal/delivery/context"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"
	"morgenstar/internal/usecase"
	"morgenstar/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	// MaxUploadSize is the largest accepted image.
	MaxUploadSize = 5 << 20

	defaultUploadFolder = "products"
)

var (
	uploadFolderPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

	// Sniffed content type -> stored file extension.
	uploadImageTypes = map[string]string{
		"image/jpeg": "jpg",
		"image/png":  "png",
		"image/webp": "webp",
	}
)

type uploadService struct {
	storage service.FileStorage
	logger  *slog.Logger
	now     func() time.Time
}

// UploadServiceParams holds dependencies for UploadService, injected by Fx.
type UploadServiceParams struct {
	fx.In

	Storage service.FileStorage
	Logger  *slog.Logger
}

// NewUploadService creates the back office image upload service
func NewUploadService(params UploadServiceParams) usecase.UploadUsecase {
	return &uploadService{
		storage: params.Storage,
		logger:  params.Logger,
		now:     time.Now,
	}
}

func (srv *uploadService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Upload checks the image by content, not by the client supplied name or type,
// and stores it as <folder>/<unixMillis>-<random>.<ext>.
func (srv *uploadService) Upload(ctx context.Context, input *usecase.UploadInput) (string, error) {
	if input == nil || input.File == nil {
		return "", errors.WithStack(domainerrors.ErrNoFileUploaded)
	}

	folder := strings.TrimSpace(input.Folder)
	if folder == "" {
		folder = defaultUploadFolder
	}
	if !uploadFolderPattern.MatchString(folder) {
		return "", errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("folder may only contain a-z, 0-9 and -"))
	}

	if input.Size > MaxUploadSize {
		return "", domainerrors.ErrInvalidFile.WrapMessage("declared size exceeds " + util.FormatBytes(MaxUploadSize))
	}

	data, err := io.ReadAll(io.LimitReader(input.File, MaxUploadSize+1))
	if err != nil {
		return "", errors.Wrap(err, "failed to read upload")
	}
	if len(data) == 0 {
		return "", errors.WithStack(domainerrors.ErrNoFileUploaded)
	}
	if len(data) > MaxUploadSize {
		return "", domainerrors.ErrInvalidFile.WrapMessage("file exceeds " + util.FormatBytes(MaxUploadSize))
	}

	contentType := http.DetectContentType(data)
	ext, ok := uploadImageTypes[contentType]
	if !ok {
		srv.log(ctx).Warn("Rejected upload", slog.String("content_type", contentType))

		return "", domainerrors.ErrInvalidFile.WrapMessage("unsupported content type " + contentType)
	}

	key := fmt.Sprintf("%s/%d-%s.%s", folder, srv.now().UnixMilli(), uuid.NewString()[:8], ext)

	publicPath, err := srv.storage.Put(ctx, key, data, contentType)
	if err != nil {
		srv.log(ctx).Error("Failed to store upload", slog.String("key", key), slog.Any("error", err))

		return "", domainerrors.ErrUploadFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Info("File uploaded",
		slog.String("path", publicPath),
		slog.String("content_type", contentType),
		slog.Int("size", len(data)),
	)

	return publicPath, nil
}

func (srv *uploadService) Open(ctx context.Context, publicPath string) (*service.StoredFile, error) {
	file, err := srv.storage.Open(ctx, publicPath)
	if err != nil {
		if errors.Is(err, domainerrors.ErrFileNotFound) {
			return nil, errors.WithStack(domainerrors.ErrFileNotFound)
		}

		return nil, errors.Wrap(err, "failed to open upload")
	}

	return file, nil
}
