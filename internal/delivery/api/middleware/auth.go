package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"morgenstar/internal/delivery/api/response"
	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/entity"
	"morgenstar/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	Logger       *slog.Logger
}

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: params.TokenService,
		logger:   params.Logger,
	}
}

// Authenticate validates the Bearer access token and stores the principal on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		tokenString, found := strings.CutPrefix(authHeader, bearerPrefix)
		if !found || tokenString == "" {
			return response.Unauthorized(c)
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected access token", slog.Any("error", err))

			return response.Unauthorized(c)
		}

		if claims.UserID == uuid.Nil {
			return response.Unauthorized(c)
		}

		deliverycontext.SetPrincipal(c, claims.UserID, claims.Roles)

		return next(c)
	}
}

// RequireRole checks the role of the authenticated user. It must run after Authenticate.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !slices.Contains(deliverycontext.GetRoles(c), requiredRole.String()) {
				return response.Forbidden(c)
			}

			return next(c)
		}
	}
}

// GetUserID returns the id of the authenticated user.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	return deliverycontext.GetUserID(c)
}
