package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"morgenstar/internal/delivery/api/response"
	domainerrors "morgenstar/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, response.ErrorResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	NewErrorMiddleware(testLogger).HandleHTTPError(err, c)

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return rec, body
}

func TestErrorMiddleware_DomainError(t *testing.T) {
	rec, body := handleError(t, domainerrors.ErrCouponExpired)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domainerrors.ErrCouponExpired.ErrorCode(), body.Code)
	assert.Equal(t, domainerrors.ErrCouponExpired.Message(), body.Error)
	require.NotNil(t, body.Meta)
	assert.NotEmpty(t, body.Meta.RequestID)
}

func TestErrorMiddleware_WrappedDomainError(t *testing.T) {
	rec, body := handleError(t, domainerrors.ErrUploadFailed.WrapMessage("bucket write failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, domainerrors.ErrUploadFailed.ErrorCode(), body.Code)
	assert.NotContains(t, rec.Body.String(), "bucket write failed")
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{name: "unknown route", err: echo.ErrNotFound, wantCode: http.StatusNotFound, wantBody: domainerrors.ErrNotFound.ErrorCode()},
		{name: "wrong method", err: echo.ErrMethodNotAllowed, wantCode: http.StatusMethodNotAllowed, wantBody: "METHOD_NOT_ALLOWED"},
		{name: "body too large", err: echo.ErrStatusRequestEntityTooLarge, wantCode: http.StatusRequestEntityTooLarge, wantBody: "PAYLOAD_TOO_LARGE"},
		{name: "bad request", err: echo.NewHTTPError(http.StatusBadRequest, "syntax"), wantCode: http.StatusBadRequest, wantBody: domainerrors.ErrValidationFailed.ErrorCode()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := handleError(t, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, body.Code)
		})
	}
}

func TestErrorMiddleware_UnknownError(t *testing.T) {
	rec, body := handleError(t, errors.New("pq: relation \"orders\" does not exist"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, domainerrors.ErrInternalError.ErrorCode(), body.Code)
	assert.Equal(t, "Interner Serverfehler", body.Error)
	assert.NotContains(t, rec.Body.String(), "relation")
}
