package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentEvent records a processed payment webhook so that replays are ignored.
type PaymentEvent struct {
	ID          string     // Processor event id, e.g. evt_...
	Type        string     // Processor event type, e.g. payment_intent.succeeded
	OrderID     *uuid.UUID // Order the event applied to, if any
	ProcessedAt time.Time
}
