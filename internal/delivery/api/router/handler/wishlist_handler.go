package handler

import (
	"log/slog"
	"net/http"

	"morgenstar/internal/delivery/api/middleware"
	"morgenstar/internal/delivery/api/response"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// WishlistHandlerParams holds dependencies for WishlistHandler, injected by Fx.
type WishlistHandlerParams struct {
	fx.In

	WishlistUC usecase.WishlistUsecase
	Logger     *slog.Logger
}

// WishlistHandler serves the wishlist of the signed in customer.
type WishlistHandler struct {
	wishlistUC usecase.WishlistUsecase
	logger     *slog.Logger
}

// NewWishlistHandler is the constructor for WishlistHandler
func NewWishlistHandler(params WishlistHandlerParams) *WishlistHandler {
	return &WishlistHandler{
		wishlistUC: params.WishlistUC,
		logger:     params.Logger,
	}
}

// AddWishlistRequest represents the request body for adding a product
type AddWishlistRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

// List returns the wishlist entries with their products.
func (h *WishlistHandler) List(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	items, err := h.wishlistUC.List(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, items)
}

// Add puts a product on the wishlist.
func (h *WishlistHandler) Add(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	var req AddWishlistRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	item, err := h.wishlistUC.Add(c.Request().Context(), userID, req.ProductID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, item)
}

// Remove takes the product given by ?productId= off the wishlist.
func (h *WishlistHandler) Remove(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c)
	}

	productID, err := uuid.Parse(c.QueryParam("productId"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("productId is required"))
	}

	if err := h.wishlistUC.Remove(c.Request().Context(), userID, productID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, http.StatusOK, "Produkt von der Wunschliste entfernt")
}
