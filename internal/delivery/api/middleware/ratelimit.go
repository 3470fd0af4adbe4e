package middleware

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"morgenstar/config"
	"morgenstar/internal/delivery/api/response"
	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/util"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	defaultRateLimitWindow   = 15 * time.Minute
	defaultRateLimitMax      = 100
	defaultRateLimitStrict   = 20
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRetryAfter         = "Retry-After"
)

// RateLimitMiddlewareParams holds dependencies for RateLimitMiddleware, injected by Fx.
type RateLimitMiddlewareParams struct {
	fx.In

	Config  *config.Config
	Limiter service.RateLimiter
	Logger  *slog.Logger
}

// RateLimitMiddleware limits /api requests per client ip and path.
type RateLimitMiddleware struct {
	limiter   service.RateLimiter
	logger    *slog.Logger
	enabled   bool
	window    time.Duration
	maxReq    int
	strictMax int
}

// NewRateLimitMiddleware creates the middleware with defaults for unset values.
func NewRateLimitMiddleware(params RateLimitMiddlewareParams) *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		limiter:   params.Limiter,
		logger:    params.Logger,
		window:    defaultRateLimitWindow,
		maxReq:    defaultRateLimitMax,
		strictMax: defaultRateLimitStrict,
	}

	if cfg := params.Config.RateLimit; cfg != nil {
		m.enabled = cfg.Enabled
		if cfg.Window > 0 {
			m.window = cfg.Window
		}
		if cfg.MaxRequests > 0 {
			m.maxReq = cfg.MaxRequests
		}
		if cfg.StrictMaxRequests > 0 {
			m.strictMax = cfg.StrictMaxRequests
		}
	}

	return m
}

// Handle counts the request and answers 429 once the budget of the window is spent.
// Store failures let the request through.
func (m *RateLimitMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if !m.enabled || !strings.HasPrefix(path, "/api/") {
			return next(c)
		}

		ctx := c.Request().Context()
		key := c.RealIP() + "-" + path

		result, err := m.limiter.Allow(ctx, key, m.limitFor(path), m.window)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("Rate limiter unavailable, letting request through",
				slog.String("key", key),
				slog.Any("error", err),
			)

			return next(c)
		}

		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Info("Rate limit exceeded",
				slog.String("key", key),
				slog.String("retry_after", util.FormatDuration(result.RetryAfter)),
			)
			c.Response().Header().Set(headerRetryAfter, strconv.Itoa(retryAfter))

			return response.TooManyRequests(c, retryAfter)
		}

		c.Response().Header().Set(headerRateLimitRemaining, strconv.Itoa(result.Remaining))

		return next(c)
	}
}

// limitFor returns the stricter budget for login, registration and checkout.
func (m *RateLimitMiddleware) limitFor(path string) int {
	if strings.Contains(path, "/auth/") || strings.Contains(path, "/orders") {
		return m.strictMax
	}

	return m.maxReq
}
