package handler

import (
	"log/slog"
	"net/http"
	"time"

	"morgenstar/config"
	"morgenstar/internal/delivery/api/response"
	"morgenstar/internal/domain/constants"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Config *config.Config
	Logger *slog.Logger
}

// CartHandler serves the anonymous cart identified by a cookie.
type CartHandler struct {
	cartUC       usecase.CartUsecase
	logger       *slog.Logger
	cookieName   string
	cookieMaxAge time.Duration
	secureCookie bool
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	h := &CartHandler{
		cartUC:       params.CartUC,
		logger:       params.Logger,
		cookieName:   "cart_id",
		cookieMaxAge: 30 * 24 * time.Hour,
		secureCookie: params.Config.Env.Env != constants.EnvDevelop,
	}
	if cart := params.Config.Cart; cart != nil {
		if cart.CookieName != "" {
			h.cookieName = cart.CookieName
		}
		if cart.CookieMaxAge > 0 {
			h.cookieMaxAge = cart.CookieMaxAge
		}
	}

	return h
}

// AddCartItemRequest represents the request body for adding a line
type AddCartItemRequest struct {
	VariantID uuid.UUID `json:"variantId" validate:"required"`
	Qty       int       `json:"qty"`
}

// UpdateCartItemRequest represents the request body for changing a quantity
type UpdateCartItemRequest struct {
	ItemID uuid.UUID `json:"itemId" validate:"required"`
	Qty    int       `json:"qty"`
}

// cartID returns the cart referenced by the cookie. A malformed value counts as no cart.
func (h *CartHandler) cartID(c echo.Context) *uuid.UUID {
	cookie, err := c.Cookie(h.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return nil
	}

	return &id
}

func (h *CartHandler) setCartCookie(c echo.Context, value string, maxAge time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetCart returns the cart with current prices.
func (h *CartHandler) GetCart(c echo.Context) error {
	view, err := h.cartUC.GetCart(c.Request().Context(), h.cartID(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// AddItem adds a variant and sets the cookie when a cart was created.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	if req.Qty < 0 {
		return response.HandleAppError(c, domainerrors.ErrInvalidQuantity)
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	current := h.cartID(c)

	output, err := h.cartUC.AddItem(c.Request().Context(), current, &usecase.AddCartItemInput{
		VariantID: req.VariantID,
		Qty:       req.Qty,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if current == nil || *current != output.CartID {
		h.setCartCookie(c, output.CartID.String(), h.cookieMaxAge)
	}

	return response.Success(c, http.StatusOK, output.Item)
}

// UpdateItem sets the quantity of a line.
func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.cartUC.UpdateItem(c.Request().Context(), h.cartID(c), req.ItemID, req.Qty); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteItem removes the line given by ?itemId=, or clears the whole cart without it.
func (h *CartHandler) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	cartID := h.cartID(c)

	rawItemID := c.QueryParam("itemId")
	if rawItemID == "" {
		if err := h.cartUC.ClearCart(ctx, cartID); err != nil {
			return response.HandleAppError(c, err)
		}

		h.setCartCookie(c, "", -time.Second)

		return response.Success(c, http.StatusOK, map[string]bool{"ok": true})
	}

	itemID, err := uuid.Parse(rawItemID)
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrCartItemNotFound)
	}

	if err := h.cartUC.RemoveItem(ctx, cartID, itemID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"ok": true})
}
