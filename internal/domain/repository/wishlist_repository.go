package repository

import (
	"context"

	"morgenstar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrWishlistItemNotFound is returned when the product is not on the wishlist.
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	// ErrDuplicateWishlistItem is returned when the product is already on the wishlist.
	ErrDuplicateWishlistItem = errors.New("wishlist item already exists")
)

// WishlistRepository defines wishlist persistence.
type WishlistRepository interface {
	// ListByUser returns entries with product, variants and brand, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WishlistItem, error)

	// Create adds a product to the wishlist.
	Create(ctx context.Context, item *entity.WishlistItem) error

	// Delete removes a product from the wishlist.
	Delete(ctx context.Context, userID, productID uuid.UUID) error
}
