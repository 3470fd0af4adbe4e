package handler

import (
	"log/slog"
	"net/http"

	"morgenstar/internal/delivery/api/response"
	deliverycontext "morgenstar/internal/delivery/context"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HealthHandlerParams holds dependencies for HealthHandler, injected by Fx.
type HealthHandlerParams struct {
	fx.In

	HealthRepo repository.HealthRepository
	Logger     *slog.Logger
}

// HealthHandler serves the liveness and database checks.
type HealthHandler struct {
	healthRepo repository.HealthRepository
	logger     *slog.Logger
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		healthRepo: params.HealthRepo,
		logger:     params.Logger,
	}
}

// Health always answers ok while the process serves requests.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// DBPing runs SELECT 1 against the database.
func (h *HealthHandler) DBPing(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.healthRepo.Ping(ctx); err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Error("Database ping failed", slog.Any("error", err))

		return response.HandleAppError(c, domainerrors.ErrDatabaseUnavailable)
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
