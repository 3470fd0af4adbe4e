package service

import (
	"context"

	"morgenstar/internal/domain/entity"
)

// ShopEventType names a shop event.
type ShopEventType string

const (
	ShopEventUserRegistered     ShopEventType = "user.registered"
	ShopEventOrderCreated       ShopEventType = "order.created"
	ShopEventOrderStatusChanged ShopEventType = "order.status_changed"
)

// ShopEvent is published after a state change that customers are notified about.
type ShopEvent struct {
	RequestID      string        `json:"request_id,omitempty"` // For distributed tracing
	EventID        string        `json:"event_id"`
	Type           ShopEventType `json:"type"`
	UserID         string        `json:"user_id,omitempty"`
	OrderID        string        `json:"order_id,omitempty"`
	Email          string        `json:"email,omitempty"`
	Name           string        `json:"name,omitempty"`
	Status         string        `json:"status,omitempty"`
	TrackingNumber string        `json:"tracking_number,omitempty"`
	Order          *entity.Order `json:"order,omitempty"` // Snapshot with items, for mails
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishShopEvent publishes a shop event for async processing
	PublishShopEvent(ctx context.Context, event *ShopEvent) error

	// Close releases any resources held by the publisher
	Close() error
}

// EventHandler processes a delivered shop event.
type EventHandler interface {
	HandleShopEvent(ctx context.Context, event *ShopEvent) error
}
