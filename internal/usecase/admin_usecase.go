package usecase

import (
	"context"

	"morgenstar/internal/domain/entity"
	"morgenstar/internal/domain/repository"

	"github.com/google/uuid"
)

// UpdateOrderStatusInput carries the target status of an order.
type UpdateOrderStatusInput struct {
	Status         string
	TrackingNumber string
}

// CreateVariantInput defines a variant of a new product.
type CreateVariantInput struct {
	SKU        string
	Name       string
	PriceCents int64
	InStock    int
	WeightGr   int
}

// CreateProductInput defines a new product with its variants.
type CreateProductInput struct {
	Title       string
	Subtitle    string
	Description string
	ImageURL    string
	BrandID     *uuid.UUID
	CategoryIDs []uuid.UUID
	Variants    []CreateVariantInput
}

// AdminUsecase defines the back office operations.
type AdminUsecase interface {
	// UpdateOrderStatus validates the transition and notifies the customer on a change.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input *UpdateOrderStatusInput) (*entity.Order, error)

	// GetOrder returns any order with user and items.
	GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// ListOrders returns all orders newest first, optionally filtered by status.
	ListOrders(ctx context.Context, status string) ([]*entity.Order, error)

	// ListProducts returns the full catalogue.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// CreateProduct stores a product, its variants and category links in one transaction.
	CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error)

	// UpdateVariant applies price, stock or name edits.
	UpdateVariant(ctx context.Context, variantID uuid.UUID, update repository.VariantUpdate) (*entity.ProductVariant, error)

	// Stats returns the dashboard figures.
	Stats(ctx context.Context) (*entity.ShopStats, error)

	// ListNewsletterSubscribers returns active subscribers.
	ListNewsletterSubscribers(ctx context.Context) ([]*entity.NewsletterSubscriber, error)
}
