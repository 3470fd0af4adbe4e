package handler

import (
	"log/slog"
	"net/http"

	"morgenstar/config"
	"morgenstar/internal/delivery/api/middleware"
	"morgenstar/internal/delivery/api/response"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Config  *config.Config
	Logger  *slog.Logger
}

// OrderHandler serves checkout and the order history of a customer.
type OrderHandler struct {
	orderUC        usecase.OrderUsecase
	logger         *slog.Logger
	cartCookieName string
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	cookieName := "cart_id"
	if params.Config.Cart != nil && params.Config.Cart.CookieName != "" {
		cookieName = params.Config.Cart.CookieName
	}

	return &OrderHandler{
		orderUC:        params.OrderUC,
		logger:         params.Logger,
		cartCookieName: cookieName,
	}
}

// OrderLineRequest references a variant and a quantity; prices are looked up server side.
type OrderLineRequest struct {
	VariantID uuid.UUID `json:"variantId"`
	Qty       int       `json:"qty"`
}

// PlaceOrderRequest represents the checkout request body
type PlaceOrderRequest struct {
	Items           []OrderLineRequest `json:"items"`
	ShippingAddress *entity.Address    `json:"shippingAddress"`
	BillingAddress  *entity.Address    `json:"billingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
	CouponCode      string             `json:"couponCode"`
}

// PlaceOrderResponse confirms a new order.
type PlaceOrderResponse struct {
	OrderID       uuid.UUID `json:"orderId"`
	Message       string    `json:"message"`
	TotalCents    int64     `json:"totalCents"`
	DiscountCents int64     `json:"discountCents"`
}

// PlaceOrder runs the checkout for the signed in customer.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	// Address fields are checked here, empty addresses by the usecase
	for _, addr := range []*entity.Address{req.ShippingAddress, req.BillingAddress} {
		if addr == nil {
			continue
		}
		if err := c.Validate(addr); err != nil {
			return response.HandleAppError(c, domainerrors.ErrAddressMissing.WithDetails(err.Error()))
		}
	}

	lines := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, usecase.OrderLineInput{VariantID: item.VariantID, Qty: item.Qty})
	}

	var cartID *uuid.UUID
	if cookie, err := c.Cookie(h.cartCookieName); err == nil {
		if id, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			cartID = &id
		}
	}

	output, err := h.orderUC.PlaceOrder(c.Request().Context(), &usecase.PlaceOrderInput{
		UserID:          userID,
		Items:           lines,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
		CouponCode:      req.CouponCode,
		CartID:          cartID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, &PlaceOrderResponse{
		OrderID:       output.Order.ID,
		Message:       "Bestellung erfolgreich erstellt",
		TotalCents:    output.Order.TotalCents,
		DiscountCents: output.Order.DiscountCents,
	})
}

// ListOrders returns the customer's orders newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	orders, err := h.orderUC.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders)
}

// GetOrder returns one of the customer's orders.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrOrderNotFound)
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// OrderQRCode renders the tracking QR code of an order as PNG.
func (h *OrderHandler) OrderQRCode(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrOrderNotFound)
	}

	png, err := h.orderUC.OrderQRCode(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
