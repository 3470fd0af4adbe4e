package handler

import (
	"log/slog"
	"net/http"

	"morgenstar/internal/delivery/api/response"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler serves the back office.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// UpdateOrderStatusRequest represents the request body of a status change
type UpdateOrderStatusRequest struct {
	Status         string `json:"status"`
	TrackingNumber string `json:"trackingNumber"`
}

// UpdateOrderStatusResponse confirms a status change.
type UpdateOrderStatusResponse struct {
	Message string        `json:"message"`
	Order   *entity.Order `json:"order"`
}

// CreateVariantRequest is one variant of a new product.
type CreateVariantRequest struct {
	SKU        string `json:"sku" validate:"required"`
	Name       string `json:"name" validate:"required"`
	PriceCents int64  `json:"priceCents" validate:"gt=0"`
	InStock    int    `json:"inStock" validate:"min=0"`
	WeightGr   int    `json:"weightGr" validate:"min=0"`
}

// CreateProductRequest represents the request body of a new product
type CreateProductRequest struct {
	Title       string                 `json:"title"`
	Subtitle    string                 `json:"subtitle"`
	Description string                 `json:"description"`
	ImageURL    string                 `json:"imageUrl"`
	BrandID     *uuid.UUID             `json:"brandId"`
	CategoryIDs []uuid.UUID            `json:"categoryIds"`
	Variants    []CreateVariantRequest `json:"variants" validate:"dive"`
}

// UpdateVariantRequest represents the request body of a variant edit
type UpdateVariantRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	PriceCents *int64  `json:"priceCents" validate:"omitempty,gt=0"`
	InStock    *int    `json:"inStock" validate:"omitempty,min=0"`
}

// Stats returns the dashboard figures.
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.adminUC.Stats(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, stats)
}

// ListOrders returns all orders, optionally filtered by ?status=.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders, err := h.adminUC.ListOrders(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders)
}

// GetOrder returns any order with customer and items.
func (h *AdminHandler) GetOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrOrderNotFound)
	}

	order, err := h.adminUC.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// UpdateOrderStatus moves an order along the status machine.
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrOrderNotFound)
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	order, err := h.adminUC.UpdateOrderStatus(c.Request().Context(), orderID, &usecase.UpdateOrderStatusInput{
		Status:         req.Status,
		TrackingNumber: req.TrackingNumber,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &UpdateOrderStatusResponse{
		Message: "Bestellstatus erfolgreich aktualisiert",
		Order:   order,
	})
}

// ListProducts returns the full catalogue.
func (h *AdminHandler) ListProducts(c echo.Context) error {
	products, err := h.adminUC.ListProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// CreateProduct stores a product with its variants.
func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	input := &usecase.CreateProductInput{
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		BrandID:     req.BrandID,
		CategoryIDs: req.CategoryIDs,
		Variants:    make([]usecase.CreateVariantInput, 0, len(req.Variants)),
	}
	for _, v := range req.Variants {
		input.Variants = append(input.Variants, usecase.CreateVariantInput{
			SKU:        v.SKU,
			Name:       v.Name,
			PriceCents: v.PriceCents,
			InStock:    v.InStock,
			WeightGr:   v.WeightGr,
		})
	}

	product, err := h.adminUC.CreateProduct(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product)
}

// UpdateVariant applies price, stock or name edits.
func (h *AdminHandler) UpdateVariant(c echo.Context) error {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrVariantNotFound)
	}

	var req UpdateVariantRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	variant, err := h.adminUC.UpdateVariant(c.Request().Context(), variantID, repository.VariantUpdate{
		Name:       req.Name,
		PriceCents: req.PriceCents,
		InStock:    req.InStock,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, variant)
}

// ListNewsletterSubscribers returns the active subscribers.
func (h *AdminHandler) ListNewsletterSubscribers(c echo.Context) error {
	subscribers, err := h.adminUC.ListNewsletterSubscribers(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, subscribers)
}
