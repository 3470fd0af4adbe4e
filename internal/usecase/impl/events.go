package impl

import (
	"context"
	"log/slog"

	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/entity"
	"morgenstar/internal/domain/service"

	"github.com/google/uuid"
)

// newShopEvent stamps an event with a fresh id and the request id of ctx.
func newShopEvent(ctx context.Context, eventType service.ShopEventType) *service.ShopEvent {
	return &service.ShopEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		EventID:   uuid.New().String(),
		Type:      eventType,
	}
}

// newOrderEvent builds an order event; the order snapshot carries the customer when loaded.
func newOrderEvent(ctx context.Context, eventType service.ShopEventType, order *entity.Order) *service.ShopEvent {
	event := newShopEvent(ctx, eventType)
	event.UserID = order.UserID.String()
	event.OrderID = order.ID.String()
	event.Status = string(order.Status)
	event.TrackingNumber = order.TrackingNumber
	event.Order = order
	if order.User != nil {
		event.Email = order.User.Email
		event.Name = order.User.Name
	}

	return event
}

// publishShopEvent hands the event to the publisher. Failures are logged and never
// fail the operation that produced the event.
func publishShopEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *service.ShopEvent) {
	if publisher == nil {
		return
	}

	if err := publisher.PublishShopEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish shop event",
			slog.String("event_id", event.EventID),
			slog.String("event_type", string(event.Type)),
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
		)

		return
	}

	logger.Debug("Shop event published",
		slog.String("event_id", event.EventID),
		slog.String("event_type", string(event.Type)),
	)
}
