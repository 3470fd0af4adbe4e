package usecase

import (
	"context"

	"morgenstar/internal/domain/entity"

	"github.com/google/uuid"
)

// WishlistUsecase defines the wishlist operations of a signed in customer.
type WishlistUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]*entity.WishlistItem, error)
	Add(ctx context.Context, userID, productID uuid.UUID) (*entity.WishlistItem, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}
