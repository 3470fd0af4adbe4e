package middleware

import (
	"log/slog"
	"net/http"

	"morgenstar/internal/delivery/api/response"
	deliverycontext "morgenstar/internal/delivery/context"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is echo's HTTPErrorHandler. Domain errors keep their status and German
// message; everything unknown is logged and answered with 500.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed",
				slog.Any("error", err),
				slog.String("code", appErr.ErrorCode()),
				slog.String("path", c.Request().URL.Path),
			)
		}

		_ = response.HandleAppError(c, appErr)

		return
	}

	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		_ = response.Error(c, httpErr.Code, httpErrorCode(httpErr.Code), httpErrorMessage(httpErr.Code), nil)

		return
	}

	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c)
}

func httpErrorCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return domainerrors.ErrNotFound.ErrorCode()
	case http.StatusUnauthorized:
		return domainerrors.ErrUnauthorized.ErrorCode()
	case http.StatusForbidden:
		return domainerrors.ErrForbidden.ErrorCode()
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case http.StatusTooManyRequests:
		return domainerrors.ErrTooManyRequests.ErrorCode()
	}
	if status >= http.StatusInternalServerError {
		return domainerrors.ErrInternalError.ErrorCode()
	}

	return domainerrors.ErrValidationFailed.ErrorCode()
}

func httpErrorMessage(status int) string {
	switch status {
	case http.StatusNotFound:
		return domainerrors.ErrNotFound.Message()
	case http.StatusUnauthorized:
		return domainerrors.ErrUnauthorized.Message()
	case http.StatusForbidden:
		return domainerrors.ErrForbidden.Message()
	case http.StatusMethodNotAllowed:
		return "Methode nicht erlaubt"
	case http.StatusRequestEntityTooLarge:
		return "Anfrage zu groß"
	case http.StatusTooManyRequests:
		return domainerrors.ErrTooManyRequests.Message()
	}
	if status >= http.StatusInternalServerError {
		return domainerrors.ErrInternalError.Message()
	}

	return domainerrors.ErrValidationFailed.Message()
}
