// Package response renders the JSON envelopes of the storefront API.
package response

import (
	"net/http"

	deliverycontext "morgenstar/internal/delivery/context"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/errors"

	"github.com/labstack/echo/v4"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse is the flat error envelope; Error holds the German message shown to customers.
type ErrorResponse struct {
	Error   string    `json:"error"`
	Code    string    `json:"code"`
	Details any       `json:"details,omitempty"`
	Meta    *MetaInfo `json:"meta"`
}

// RateLimitResponse is returned with 429.
type RateLimitResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retryAfter"`
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// MessageData is the payload of endpoints that only confirm an action.
type MessageData struct {
	Message string `json:"message"`
}

func meta(c echo.Context) *MetaInfo {
	return &MetaInfo{RequestID: deliverycontext.GetRequestID(c)}
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: meta(c),
	})
}

// Message returns a successful response carrying only a message.
func Message(c echo.Context, statusCode int, message string) error {
	return Success(c, statusCode, MessageData{Message: message})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// No details for server errors or authentication/authorization failures
	if statusCode >= 500 || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error:   message,
		Code:    errorCode,
		Details: details,
		Meta:    meta(c),
	})
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

// BindingError answers a body that could not be decoded.
func BindingError(c echo.Context) error {
	return Error(c, http.StatusBadRequest, domainerrors.ErrValidationFailed.ErrorCode(),
		domainerrors.ErrValidationFailed.Message(), nil)
}

// ValidationError answers a request that failed struct validation.
func ValidationError(c echo.Context, err error) error {
	return Error(c, http.StatusBadRequest, domainerrors.ErrValidationFailed.ErrorCode(),
		domainerrors.ErrValidationFailed.Message(), err.Error())
}

// Unauthorized returns a 401 error
func Unauthorized(c echo.Context) error {
	return Error(c, http.StatusUnauthorized, domainerrors.ErrUnauthorized.ErrorCode(),
		domainerrors.ErrUnauthorized.Message(), nil)
}

// Forbidden returns a 403 error
func Forbidden(c echo.Context) error {
	return Error(c, http.StatusForbidden, domainerrors.ErrForbidden.ErrorCode(),
		domainerrors.ErrForbidden.Message(), nil)
}

// NotFound returns a 404 error
func NotFound(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusNotFound, errorCode, message, nil)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context) error {
	return Error(c, http.StatusInternalServerError, domainerrors.ErrInternalError.ErrorCode(),
		domainerrors.ErrInternalError.Message(), nil)
}

// TooManyRequests returns a 429 with the seconds until the window resets.
func TooManyRequests(c echo.Context, retryAfterSeconds int) error {
	return c.JSON(http.StatusTooManyRequests, RateLimitResponse{
		Error:      domainerrors.ErrTooManyRequests.Message(),
		RetryAfter: retryAfterSeconds,
	})
}

// HandleAppError renders domain errors; anything else is passed to the echo error handler.
func HandleAppError(c echo.Context, err error) error {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		var details any
		if d := appErr.Details(); d != "" {
			details = d
		}

		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)
	}

	return errors.WithStack(err)
}
