package usecase

import (
	"context"

	"morgenstar/internal/domain/entity"

	"github.com/google/uuid"
)

// CartView is the cart as returned to the storefront. Totals use current variant prices.
type CartView struct {
	Items     []*entity.CartItem `json:"items"`
	Total     int64              `json:"total"`
	ItemCount int                `json:"itemCount"`
}

// AddCartItemInput defines a line to put into the cart.
type AddCartItemInput struct {
	VariantID uuid.UUID
	Qty       int // 0 means 1
}

// AddCartItemOutput carries the id of the (possibly new) cart.
type AddCartItemOutput struct {
	CartID uuid.UUID
	Item   *entity.CartItem
}

// CartUsecase defines the anonymous cart operations.
type CartUsecase interface {
	// GetCart returns the cart behind the cookie; a missing or unknown cart is empty.
	GetCart(ctx context.Context, cartID *uuid.UUID) (*CartView, error)

	// AddItem creates the cart lazily and adds or increments a line.
	AddItem(ctx context.Context, cartID *uuid.UUID, input *AddCartItemInput) (*AddCartItemOutput, error)

	// UpdateItem sets the absolute quantity of a line.
	UpdateItem(ctx context.Context, cartID *uuid.UUID, itemID uuid.UUID, qty int) error

	// RemoveItem deletes a line.
	RemoveItem(ctx context.Context, cartID *uuid.UUID, itemID uuid.UUID) error

	// ClearCart deletes the cart with all lines.
	ClearCart(ctx context.Context, cartID *uuid.UUID) error
}
