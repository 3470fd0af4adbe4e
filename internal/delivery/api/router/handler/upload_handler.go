package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"morgenstar/internal/delivery/api/response"
	deliverycontext "morgenstar/internal/delivery/context"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UploadHandlerParams holds dependencies for UploadHandler, injected by Fx.
type UploadHandlerParams struct {
	fx.In

	UploadUC usecase.UploadUsecase
	Logger   *slog.Logger
}

// UploadHandler serves image uploads and the stored files.
type UploadHandler struct {
	uploadUC usecase.UploadUsecase
	logger   *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler
func NewUploadHandler(params UploadHandlerParams) *UploadHandler {
	return &UploadHandler{
		uploadUC: params.UploadUC,
		logger:   params.Logger,
	}
}

// UploadResponse confirms a stored file.
type UploadResponse struct {
	Success  bool   `json:"success"`
	Filepath string `json:"filepath"`
	Message  string `json:"message"`
}

// Upload stores the multipart field "file" in the optional "folder".
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrNoFileUploaded)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrUploadFailed.WrapMessage(err.Error()))
	}
	defer file.Close()

	path, err := h.uploadUC.Upload(c.Request().Context(), &usecase.UploadInput{
		Folder: c.FormValue("folder"),
		Size:   fileHeader.Size,
		File:   file,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &UploadResponse{
		Success:  true,
		Filepath: path,
		Message:  "Datei erfolgreich hochgeladen",
	})
}

// Serve streams a stored upload.
func (h *UploadHandler) Serve(c echo.Context) error {
	ctx := c.Request().Context()

	stored, err := h.uploadUC.Open(ctx, c.Request().URL.Path)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	defer func() {
		if closeErr := stored.Reader.Close(); closeErr != nil {
			deliverycontext.GetLoggerOrDefault(ctx, h.logger).Warn("Failed to close upload", slog.Any("error", closeErr))
		}
	}()

	header := c.Response().Header()
	header.Set(echo.HeaderContentType, stored.ContentType)
	if stored.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(stored.Size, 10))
	}
	header.Set("Cache-Control", "public, max-age=31536000, immutable")
	c.Response().WriteHeader(http.StatusOK)

	_, err = io.Copy(c.Response(), stored.Reader)

	return err
}
