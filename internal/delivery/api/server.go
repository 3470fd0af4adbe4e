package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"morgenstar/config"
	"morgenstar/internal/delivery"
	apimiddleware "morgenstar/internal/delivery/api/middleware"
	"morgenstar/internal/delivery/api/router"
	"morgenstar/internal/delivery/api/validator"
	"morgenstar/internal/delivery/middleware"
	"morgenstar/internal/domain/lifecycle"
	"morgenstar/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type apiServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc                  fx.Lifecycle
	Cfg                 *config.Config
	Logger              *slog.Logger
	TracerProvider      trace.TracerProvider
	RateLimitMiddleware *apimiddleware.RateLimitMiddleware
	RouterParams        router.RouterParams
}

func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer := NewEcho(params)

	srv := &apiServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// NewEcho builds the storefront echo instance with its middleware chain and routes.
func NewEcho(params ServerParams) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Server.ReadTimeout = params.Cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = params.Cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = params.Cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = params.Cfg.HTTP.Timeouts.IdleTimeout

	// Probes for config and database files never reach the router
	echoServer.Pre(apimiddleware.BlockSensitivePaths)

	// 1. Recover middleware first (to catch panics early)
	echoServer.Use(echomiddleware.Recover())

	// 2. Server span, so the request id and logs can carry the trace id
	serviceName := params.Cfg.Env.ServiceName
	if serviceName == "" {
		serviceName = "morgenstar-api"
	}
	echoServer.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(serviceName,
		otelhttp.WithTracerProvider(params.TracerProvider),
	)))

	// 3. Request ID middleware (must be before logger to include in logs)
	requestIDMiddleware := middleware.NewRequestIDMiddleware(params.Logger)
	echoServer.Use(requestIDMiddleware.Process)

	// 4. Logger middleware
	loggerMiddleware := middleware.NewLoggerMiddleware(params.Logger, params.Cfg)
	echoServer.Use(loggerMiddleware.Handle)

	// 5. Security headers on every response
	echoServer.Use(apimiddleware.SecurityHeaders())

	// 6. CORS middleware
	if len(params.Cfg.HTTP.AllowOrigins) > 0 {
		echoServer.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     params.Cfg.HTTP.AllowOrigins,
			AllowCredentials: true,
		}))
	} else {
		echoServer.Use(echomiddleware.CORS())
	}

	// 7. Rate limit for /api
	echoServer.Use(params.RateLimitMiddleware.Handle)

	// 8. Request body size limit
	echoServer.Use(echomiddleware.BodyLimit(params.Cfg.HTTP.MaxRequestBodySize))

	errorMiddleware := apimiddleware.NewErrorMiddleware(params.Logger)
	echoServer.HTTPErrorHandler = errorMiddleware.HandleHTTPError

	echoServer.Validator = validator.New()

	r := router.NewRouter(params.RouterParams)
	r.RegisterRoutes(echoServer)

	return echoServer
}

func (s *apiServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting API HTTP server", slog.String("host_port", hostPort))
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *apiServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down API HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
