package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	storefrontCSP = "default-src 'self'; " +
		"script-src 'self' 'unsafe-eval' 'unsafe-inline' https://www.googletagmanager.com; " +
		"style-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data: https:; " +
		"font-src 'self'; " +
		"connect-src 'self' https://www.google-analytics.com; " +
		"frame-ancestors 'none'; " +
		"base-uri 'self'; " +
		"form-action 'self'"

	permissionsPolicy = "camera=(), microphone=(), geolocation=()"
)

// blockedPathFragments never reach a handler.
var blockedPathFragments = []string{".env", "prisma/", ".sqlite"}

// SecurityHeaders sets the browser hardening headers on every response.
func SecurityHeaders() echo.MiddlewareFunc {
	secure := echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ContentSecurityPolicy: storefrontCSP,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withSecure := secure(next)

		return func(c echo.Context) error {
			c.Response().Header().Set("Permissions-Policy", permissionsPolicy)

			return withSecure(c)
		}
	}
}

// BlockSensitivePaths answers 404 for probes of configuration and database files.
func BlockSensitivePaths(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		for _, fragment := range blockedPathFragments {
			if strings.Contains(path, fragment) {
				return c.String(http.StatusNotFound, "Not Found")
			}
		}

		return next(c)
	}
}
