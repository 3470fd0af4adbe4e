package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/entity"
	"morgenstar/internal/domain/service"
	mockService "morgenstar/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newAuthContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)
	m := NewAuthMiddleware(AuthMiddlewareParams{TokenService: tokenSvc, Logger: testLogger})

	userID := uuid.New()
	tokenSvc.EXPECT().ValidateAccessToken("good-token").
		Return(&service.Claims{UserID: userID, Roles: []string{"customer"}, Type: service.TokenTypeAccess}, nil)

	c, rec := newAuthContext("Bearer good-token")

	var seen uuid.UUID
	err := m.Authenticate(func(c echo.Context) error {
		id, ok := GetUserID(c)
		require.True(t, ok)
		seen = id

		return okHandler(c)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, seen)
}

func TestAuthMiddleware_Authenticate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		setup  func(tokenSvc *mockService.MockTokenService)
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic dXNlcjpwdw=="},
		{name: "empty token", header: "Bearer "},
		{
			name:   "invalid token",
			header: "Bearer forged",
			setup: func(tokenSvc *mockService.MockTokenService) {
				tokenSvc.EXPECT().ValidateAccessToken("forged").Return(nil, errors.New("signature is invalid"))
			},
		},
		{
			name:   "token without subject",
			header: "Bearer anonymous",
			setup: func(tokenSvc *mockService.MockTokenService) {
				tokenSvc.EXPECT().ValidateAccessToken("anonymous").Return(&service.Claims{UserID: uuid.Nil}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mockService.NewMockTokenService(t)
			if tt.setup != nil {
				tt.setup(tokenSvc)
			}
			m := NewAuthMiddleware(AuthMiddlewareParams{TokenService: tokenSvc, Logger: testLogger})

			c, rec := newAuthContext(tt.header)
			called := false

			err := m.Authenticate(func(c echo.Context) error {
				called = true

				return nil
			})(c)

			require.NoError(t, err)
			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		wantStatus int
	}{
		{name: "admin passes", roles: []string{"customer", "admin"}, wantStatus: http.StatusNoContent},
		{name: "customer is forbidden", roles: []string{"customer"}, wantStatus: http.StatusForbidden},
		{name: "no principal is forbidden", roles: nil, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mockService.NewMockTokenService(t)
			m := NewAuthMiddleware(AuthMiddlewareParams{TokenService: tokenSvc, Logger: testLogger})

			c, rec := newAuthContext("")
			if tt.roles != nil {
				deliverycontext.SetPrincipal(c, uuid.New(), tt.roles)
			}

			require.NoError(t, m.RequireRole(entity.RoleAdmin)(okHandler)(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
