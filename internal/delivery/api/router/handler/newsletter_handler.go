package handler

import (
	"log/slog"
	"net/http"

	"morgenstar/internal/delivery/api/response"
	"morgenstar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	msgNewsletterCreated      = "Erfolgreich für den Newsletter angemeldet!"
	msgNewsletterReactivated  = "Newsletter-Anmeldung wurde reaktiviert"
	msgNewsletterUnsubscribed = "Erfolgreich vom Newsletter abgemeldet"
)

// NewsletterHandlerParams holds dependencies for NewsletterHandler, injected by Fx.
type NewsletterHandlerParams struct {
	fx.In

	NewsletterUC usecase.NewsletterUsecase
	Logger       *slog.Logger
}

// NewsletterHandler serves newsletter signup and signout.
type NewsletterHandler struct {
	newsletterUC usecase.NewsletterUsecase
	logger       *slog.Logger
}

// NewNewsletterHandler is the constructor for NewsletterHandler
func NewNewsletterHandler(params NewsletterHandlerParams) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterUC: params.NewsletterUC,
		logger:       params.Logger,
	}
}

// NewsletterRequest represents the request body of a signup or signout
type NewsletterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Subscribe signs an address up, or reactivates it.
func (h *NewsletterHandler) Subscribe(c echo.Context) error {
	var req NewsletterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	result, err := h.newsletterUC.Subscribe(c.Request().Context(), req.Email, req.Name)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if result == usecase.SubscribeResultReactivated {
		return response.Message(c, http.StatusOK, msgNewsletterReactivated)
	}

	return response.Message(c, http.StatusCreated, msgNewsletterCreated)
}

// Unsubscribe deactivates an address. The address may come as body or ?email=.
func (h *NewsletterHandler) Unsubscribe(c echo.Context) error {
	var req NewsletterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}
	if req.Email == "" {
		req.Email = c.QueryParam("email")
	}

	if err := h.newsletterUC.Unsubscribe(c.Request().Context(), req.Email); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, msgNewsletterUnsubscribed)
}
