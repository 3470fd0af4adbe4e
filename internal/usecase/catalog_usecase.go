package usecase

import (
	"context"

	"morgenstar/internal/domain/entity"
)

// SearchInput holds raw search parameters. Prices are euro amounts.
type SearchInput struct {
	Query     string
	Category  string
	Brand     string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
}

// SearchOutput is a page of search results.
type SearchOutput struct {
	Products []*entity.Product `json:"products"`
	Total    int               `json:"total"`
}

// CatalogUsecase defines the storefront catalogue reads.
type CatalogUsecase interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*entity.Product, error)
	FeaturedProducts(ctx context.Context) ([]*entity.Product, error)
	Search(ctx context.Context, input *SearchInput) (*SearchOutput, error)
	ListBrands(ctx context.Context) ([]*entity.Brand, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
}
