package repository

import (
	"context"

	"morgenstar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrCartNotFound is returned when the cart referenced by the cookie does not exist.
	ErrCartNotFound = errors.New("cart not found")
	// ErrCartItemNotFound is returned when a line does not exist in the cart.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartRepository defines anonymous cart persistence.
type CartRepository interface {
	// FindByID loads a cart with items, variants, products and brands.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error)

	// Create persists an empty cart.
	Create(ctx context.Context) (*entity.Cart, error)

	// AddItem inserts a line or atomically increments the quantity of an existing one.
	AddItem(ctx context.Context, cartID, variantID uuid.UUID, qty int) (*entity.CartItem, error)

	// UpdateItemQty sets the absolute quantity of a line that belongs to the cart.
	UpdateItemQty(ctx context.Context, cartID, itemID uuid.UUID, qty int) error

	// RemoveItem deletes a line that belongs to the cart.
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error

	// Delete removes the cart and its lines. Deleting a missing cart is not an error.
	Delete(ctx context.Context, cartID uuid.UUID) error
}
