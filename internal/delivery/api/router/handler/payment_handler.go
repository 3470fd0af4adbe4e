package handler

import (
	"io"
	"log/slog"
	"net/http"

	"morgenstar/internal/delivery/api/middleware"
	"morgenstar/internal/delivery/api/response"
	deliverycontext "morgenstar/internal/delivery/context"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	headerStripeSignature = "Stripe-Signature"

	// Stripe documents 256 KiB as the upper bound of an event payload
	maxWebhookPayload = 256 << 10
)

// PaymentHandlerParams holds dependencies for PaymentHandler, injected by Fx.
type PaymentHandlerParams struct {
	fx.In

	PaymentUC usecase.PaymentUsecase
	Logger    *slog.Logger
}

// PaymentHandler serves payment intents and the processor webhook.
type PaymentHandler struct {
	paymentUC usecase.PaymentUsecase
	logger    *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler
func NewPaymentHandler(params PaymentHandlerParams) *PaymentHandler {
	return &PaymentHandler{
		paymentUC: params.PaymentUC,
		logger:    params.Logger,
	}
}

// CreatePaymentIntentRequest represents the request body for a card payment
type CreatePaymentIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	OrderID  string `json:"orderId"`
}

// CreatePaymentIntentResponse is what the client needs to confirm the payment.
type CreatePaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// CreatePaymentIntent registers the payment of an order with the processor.
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req CreatePaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	output, err := h.paymentUC.CreatePaymentIntent(c.Request().Context(), &usecase.CreatePaymentIntentInput{
		UserID:   userID,
		OrderID:  req.OrderID,
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &CreatePaymentIntentResponse{
		ClientSecret:    output.ClientSecret,
		PaymentIntentID: output.PaymentIntentID,
	})
}

// StripeWebhook verifies the signature over the raw body and applies the event.
func (h *PaymentHandler) StripeWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	signature := c.Request().Header.Get(headerStripeSignature)
	if signature == "" {
		return response.HandleAppError(c, domainerrors.ErrMissingSignature)
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookPayload))
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Warn("Failed to read webhook body", slog.Any("error", err))

		return response.BindingError(c)
	}

	if err := h.paymentUC.HandleWebhook(ctx, payload, signature); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"received": true})
}
