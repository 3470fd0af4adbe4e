package repository

import (
	"context"

	"morgenstar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateProduct is returned when the product slug is taken.
	ErrDuplicateProduct = errors.New("product already exists")
	// ErrDuplicateSKU is returned when a variant SKU is taken.
	ErrDuplicateSKU = errors.New("variant sku already exists")
	// ErrVariantNotFound is returned when a variant is not found.
	ErrVariantNotFound = errors.New("variant not found")
	// ErrInsufficientStock is returned when a guarded stock decrement matches no row.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// SearchSort selects the ordering of search results.
type SearchSort string

const (
	SearchSortTitle  SearchSort = "title"
	SearchSortPrice  SearchSort = "price"
	SearchSortRating SearchSort = "rating"
)

// ProductSearchFilter holds normalised search criteria. Prices are in cents.
type ProductSearchFilter struct {
	Query         string
	CategorySlug  string
	BrandSlug     string
	MinPriceCents *int64
	MaxPriceCents *int64
	SortBy        SearchSort
	Descending    bool
	Limit         int
}

// ProductRepository defines catalogue persistence.
type ProductRepository interface {
	// List returns all products with brand, categories and variants (price ascending).
	List(ctx context.Context) ([]*entity.Product, error)

	// FindByID retrieves a product without relations.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindBySlug retrieves a product with relations and up to reviewLimit verified reviews.
	FindBySlug(ctx context.Context, slug string, reviewLimit int) (*entity.Product, error)

	// ListFeatured returns products rated at least minRating, best first.
	ListFeatured(ctx context.Context, minRating float64, limit int) ([]*entity.Product, error)

	// Search returns products matching the filter with relations.
	Search(ctx context.Context, filter ProductSearchFilter) ([]*entity.Product, error)

	// Create persists a product with its variants and category links.
	Create(ctx context.Context, product *entity.Product, categoryIDs []uuid.UUID) error

	// Count returns the number of products.
	Count(ctx context.Context) (int64, error)

	// ListBrands returns all brands ordered by name.
	ListBrands(ctx context.Context) ([]*entity.Brand, error)

	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]*entity.Category, error)
}

// VariantUpdate carries optional admin edits of a variant.
type VariantUpdate struct {
	Name       *string
	PriceCents *int64
	InStock    *int
}

// VariantRepository defines product variant persistence.
type VariantRepository interface {
	// FindByID retrieves a variant with its product and brand.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductVariant, error)

	// FindByIDs retrieves variants with their product. Unknown ids are omitted.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.ProductVariant, error)

	// DecrementStock lowers in_stock by qty only while enough stock is left.
	// Returns ErrInsufficientStock when the guard fails.
	DecrementStock(ctx context.Context, id uuid.UUID, qty int) error

	// Update applies admin edits and returns the updated variant.
	Update(ctx context.Context, id uuid.UUID, update VariantUpdate) (*entity.ProductVariant, error)
}
