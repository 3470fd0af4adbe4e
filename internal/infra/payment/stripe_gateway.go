// Package payment adapts the card payment processor.
package payment

import (
	"context"
	"encoding/json"
	"strings"

	"morgenstar/config"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"
)

type stripeGateway struct {
	intents       *paymentintent.Client
	webhookSecret string
}

// NewStripeGateway is the constructor for the Stripe payment gateway.
func NewStripeGateway(cfg *config.Config) (service.PaymentGateway, error) {
	if cfg.Stripe == nil || cfg.Stripe.SecretKey == "" {
		return nil, errors.New("stripe secret key must be provided")
	}

	return &stripeGateway{
		intents: &paymentintent.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: cfg.Stripe.SecretKey,
		},
		webhookSecret: cfg.Stripe.WebhookSecret,
	}, nil
}

// CreatePaymentIntent registers the payment with automatic payment methods enabled.
func (g *stripeGateway) CreatePaymentIntent(ctx context.Context, input *service.PaymentIntentInput) (*service.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(input.AmountCents),
		Currency: stripe.String(strings.ToLower(input.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for key, value := range input.Metadata {
		params.AddMetadata(key, value)
	}

	intent, err := g.intents.New(params)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPaymentFailed, err.Error())
	}

	return &service.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes payment intent events.
func (g *stripeGateway) ParseWebhook(payload []byte, signatureHeader string) (*service.PaymentWebhookEvent, error) {
	if signatureHeader == "" {
		return nil, domainerrors.ErrMissingSignature
	}

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrInvalidSignature, err.Error())
	}

	result := &service.PaymentWebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}

	if event.Data != nil && strings.HasPrefix(result.Type, "payment_intent.") {
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("failed to decode payment intent: " + err.Error())
		}
		result.PaymentIntentID = intent.ID
		result.Metadata = intent.Metadata
	}

	return result, nil
}
