package usecase

import (
	"context"

	"github.com/google/uuid"
)

// CreatePaymentIntentInput defines the payment the client wants to confirm.
type CreatePaymentIntentInput struct {
	UserID   uuid.UUID
	OrderID  string
	Amount   int64
	Currency string
}

// CreatePaymentIntentOutput is what the client needs to confirm the card payment.
type CreatePaymentIntentOutput struct {
	ClientSecret    string
	PaymentIntentID string
}

// PaymentUsecase defines payment operations.
type PaymentUsecase interface {
	// CreatePaymentIntent registers the payment of an order with the processor.
	CreatePaymentIntent(ctx context.Context, input *CreatePaymentIntentInput) (*CreatePaymentIntentOutput, error)

	// HandleWebhook verifies and applies a processor webhook. Replays are acknowledged without effect.
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
}
