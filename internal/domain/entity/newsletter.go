package entity

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscriber is a newsletter signup. Unsubscribing only deactivates it.
type NewsletterSubscriber struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
