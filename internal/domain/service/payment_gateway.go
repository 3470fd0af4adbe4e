package service

import "context"

// PaymentIntentInput describes a payment to be collected.
type PaymentIntentInput struct {
	AmountCents int64
	Currency    string
	Metadata    map[string]string
}

// PaymentIntent is the processor's answer the client needs to confirm the payment.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentWebhookEvent is a verified webhook delivery.
type PaymentWebhookEvent struct {
	ID              string
	Type            string
	PaymentIntentID string
	Metadata        map[string]string
}

// PaymentGateway abstracts the card payment processor.
type PaymentGateway interface {
	// CreatePaymentIntent registers a payment with automatic payment methods.
	CreatePaymentIntent(ctx context.Context, input *PaymentIntentInput) (*PaymentIntent, error)

	// ParseWebhook verifies the signature header and decodes the event.
	ParseWebhook(payload []byte, signatureHeader string) (*PaymentWebhookEvent, error)
}
