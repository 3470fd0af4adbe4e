package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/errors"
	"morgenstar/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	productReviewLimit  = 10
	featuredMinRating   = 4.0
	featuredLimit       = 6
	searchMinQueryRunes = 2
	searchResultLimit   = 50
)

type catalogService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewCatalogService creates the storefront catalogue service
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProductBySlug returns a product page with its latest verified reviews.
func (srv *catalogService) GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, errors.WithStack(domainerrors.ErrProductNotFound)
	}

	product, err := srv.productRepo.FindBySlug(ctx, slug, productReviewLimit)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("no product with slug " + slug)
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	return product, nil
}

func (srv *catalogService) FeaturedProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListFeatured(ctx, featuredMinRating, featuredLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list featured products")
	}

	return products, nil
}

// Search matches the query against title, subtitle and description. Queries shorter
// than two characters return nothing.
func (srv *catalogService) Search(ctx context.Context, input *usecase.SearchInput) (*usecase.SearchOutput, error) {
	query := strings.TrimSpace(input.Query)
	if utf8.RuneCountInString(query) < searchMinQueryRunes {
		return &usecase.SearchOutput{Products: []*entity.Product{}}, nil
	}

	filter := repository.ProductSearchFilter{
		Query:        query,
		CategorySlug: strings.TrimSpace(input.Category),
		BrandSlug:    strings.TrimSpace(input.Brand),
		SortBy:       repository.SearchSortTitle,
		Descending:   strings.EqualFold(strings.TrimSpace(input.SortOrder), "desc"),
		Limit:        searchResultLimit,
	}

	switch repository.SearchSort(strings.ToLower(strings.TrimSpace(input.SortBy))) {
	case repository.SearchSortPrice:
		filter.SortBy = repository.SearchSortPrice
	case repository.SearchSortRating:
		filter.SortBy = repository.SearchSortRating
	}

	var err error
	if filter.MinPriceCents, err = euroFilterToCents(input.MinPrice); err != nil {
		return nil, err
	}
	if filter.MaxPriceCents, err = euroFilterToCents(input.MaxPrice); err != nil {
		return nil, err
	}

	products, err := srv.productRepo.Search(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	srv.log(ctx).Debug("Product search",
		slog.String("query", query),
		slog.String("sort_by", string(filter.SortBy)),
		slog.Int("results", len(products)),
	)

	return &usecase.SearchOutput{Products: products, Total: len(products)}, nil
}

// euroFilterToCents converts an optional euro price bound to cents.
func euroFilterToCents(euro *float64) (*int64, error) {
	if euro == nil {
		return nil, nil
	}
	if *euro < 0 {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("price filters must not be negative"))
	}

	cents := decimal.NewFromFloat(*euro).Shift(2).Round(0).IntPart()

	return &cents, nil
}

func (srv *catalogService) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	brands, err := srv.productRepo.ListBrands(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list brands")
	}

	return brands, nil
}

func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.productRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}
