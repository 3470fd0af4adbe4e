package repository

import (
	"context"

	"morgenstar/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrDuplicatePaymentEvent is returned when a webhook event id was processed before.
var ErrDuplicatePaymentEvent = errors.New("payment event already processed")

// PaymentEventRepository records processed payment webhooks.
type PaymentEventRepository interface {
	// Create stores the event. Returns ErrDuplicatePaymentEvent for a replay.
	Create(ctx context.Context, event *entity.PaymentEvent) error
}
