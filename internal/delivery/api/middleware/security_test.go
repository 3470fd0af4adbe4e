package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, SecurityHeaders()(okHandler)(c))

	header := rec.Header()
	assert.Equal(t, "1; mode=block", header.Get("X-XSS-Protection"))
	assert.Equal(t, "nosniff", header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", header.Get("X-Frame-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", header.Get("Referrer-Policy"))
	assert.Equal(t, "camera=(), microphone=(), geolocation=()", header.Get("Permissions-Policy"))
	assert.Contains(t, header.Get("Content-Security-Policy"), "frame-ancestors 'none'")
	assert.Contains(t, header.Get("Content-Security-Policy"), "default-src 'self'")
}

func TestBlockSensitivePaths(t *testing.T) {
	tests := []struct {
		path      string
		wantBlock bool
	}{
		{path: "/.env", wantBlock: true},
		{path: "/config/.env.local", wantBlock: true},
		{path: "/prisma/schema.prisma", wantBlock: true},
		{path: "/data/dev.sqlite", wantBlock: true},
		{path: "/api/products", wantBlock: false},
		{path: "/uploads/products/a.png", wantBlock: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			require.NoError(t, BlockSensitivePaths(okHandler)(c))

			if tt.wantBlock {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Equal(t, "Not Found", rec.Body.String())
			} else {
				assert.Equal(t, http.StatusNoContent, rec.Code)
			}
		})
	}
}
