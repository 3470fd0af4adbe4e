package repository

import (
	"context"

	"morgenstar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrSubscriberNotFound is returned when no subscriber has the email.
	ErrSubscriberNotFound = errors.New("newsletter subscriber not found")
	// ErrDuplicateSubscriber is returned when the email is already stored.
	ErrDuplicateSubscriber = errors.New("newsletter subscriber already exists")
)

// NewsletterRepository defines newsletter subscriber persistence.
type NewsletterRepository interface {
	// FindByEmail retrieves a subscriber by lower case email.
	FindByEmail(ctx context.Context, email string) (*entity.NewsletterSubscriber, error)

	// Create persists a new subscriber.
	Create(ctx context.Context, subscriber *entity.NewsletterSubscriber) error

	// SetActive (de)activates a subscriber and optionally updates the name.
	SetActive(ctx context.Context, id uuid.UUID, active bool, name string) error

	// ListActive returns active subscribers newest first.
	ListActive(ctx context.Context) ([]*entity.NewsletterSubscriber, error)
}
