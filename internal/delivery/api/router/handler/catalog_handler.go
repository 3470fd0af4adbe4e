package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"morgenstar/internal/delivery/api/response"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves products, brands, categories and search.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// ListProducts returns the catalogue.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.catalogUC.ListProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// FeaturedProducts returns the best rated products.
func (h *CatalogHandler) FeaturedProducts(c echo.Context) error {
	products, err := h.catalogUC.FeaturedProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// GetProduct returns one product by slug with its reviews.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogUC.GetProductBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// Search filters the catalogue by text, category, brand and euro price range.
func (h *CatalogHandler) Search(c echo.Context) error {
	minPrice, err := parseEuroParam(c.QueryParam("minPrice"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("minPrice must be a number"))
	}

	maxPrice, err := parseEuroParam(c.QueryParam("maxPrice"))
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("maxPrice must be a number"))
	}

	output, err := h.catalogUC.Search(c.Request().Context(), &usecase.SearchInput{
		Query:     c.QueryParam("q"),
		Category:  c.QueryParam("category"),
		Brand:     c.QueryParam("brand"),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, output)
}

// ListBrands returns all brands.
func (h *CatalogHandler) ListBrands(c echo.Context) error {
	brands, err := h.catalogUC.ListBrands(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, brands)
}

// ListCategories returns all categories.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogUC.ListCategories(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, categories)
}

// parseEuroParam reads an optional euro amount; a German decimal comma is accepted.
func parseEuroParam(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return nil, err
	}

	return &value, nil
}
