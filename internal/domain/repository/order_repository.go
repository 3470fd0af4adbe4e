package repository

import (
	"context"

	"morgenstar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderStatusChanged is returned when a guarded update finds the order in another status.
	ErrOrderStatusChanged = errors.New("order status changed concurrently")
)

// OrderSummary aggregates order figures for the dashboard.
type OrderSummary struct {
	TotalOrders   int64
	PendingOrders int64
	RevenueCents  int64
}

// OrderPaymentUpdate carries the changes applied by a payment webhook.
type OrderPaymentUpdate struct {
	// ExpectedStatus is the status the update was computed from; the write only applies
	// while the order still has it.
	ExpectedStatus  entity.OrderStatus
	Status          *entity.OrderStatus
	PaymentStatus   entity.PaymentStatus
	PaymentIntentID string
}

// OrderRepository defines order persistence.
type OrderRepository interface {
	// Create persists an order with its items. IDs and timestamps are filled in.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID loads an order with items (variant, product, brand) and its user.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByUser returns a user's orders newest first, with items.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// List returns all orders newest first, optionally filtered by status.
	List(ctx context.Context, status *entity.OrderStatus) ([]*entity.Order, error)

	// UpdateStatus moves the order from one status to another and, when not empty, sets the
	// tracking number. ErrOrderStatusChanged when the order is no longer in from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus, trackingNumber string) error

	// SetPaymentIntent stores the processor intent id.
	SetPaymentIntent(ctx context.Context, id uuid.UUID, paymentIntentID string) error

	// UpdatePayment applies a payment webhook result, guarded by update.ExpectedStatus.
	UpdatePayment(ctx context.Context, id uuid.UUID, update OrderPaymentUpdate) error

	// Summary aggregates counts and revenue.
	Summary(ctx context.Context) (*OrderSummary, error)
}
