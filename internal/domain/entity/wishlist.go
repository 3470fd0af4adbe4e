package entity

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem marks a product a customer wants to remember.
type WishlistItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ProductID uuid.UUID `json:"productId"`
	CreatedAt time.Time `json:"createdAt"`
	Product   *Product  `json:"product,omitempty"`
}
