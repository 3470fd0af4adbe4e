package payment

import (
	"testing"
	"time"

	"morgenstar/config"
	domainerrors "morgenstar/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testWebhookSecret = "whsec_test_secret"

func newTestGateway(t *testing.T) *stripeGateway {
	t.Helper()

	gateway, err := NewStripeGateway(&config.Config{Stripe: &config.StripeConfig{
		SecretKey:     "sk_test_123",
		WebhookSecret: testWebhookSecret,
	}})
	require.NoError(t, err)

	impl, ok := gateway.(*stripeGateway)
	require.True(t, ok)

	return impl
}

func signPayload(t *testing.T, payload []byte, secret string) string {
	t.Helper()

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: time.Now(),
	})

	return signed.Header
}

func TestNewStripeGateway_RequiresSecret(t *testing.T) {
	_, err := NewStripeGateway(&config.Config{})
	assert.ErrorContains(t, err, "stripe secret key must be provided")
}

func TestStripeGateway_ParseWebhook_PaymentIntentSucceeded(t *testing.T) {
	gateway := newTestGateway(t)
	payload := []byte(`{
		"id": "evt_1",
		"object": "event",
		"api_version": "2025-04-30.basil",
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_123", "object": "payment_intent", "metadata": {"orderId": "0190a7b4-3c1e-7d2a-9f10-5b2c8e4d6a11"}}}
	}`)

	event, err := gateway.ParseWebhook(payload, signPayload(t, payload, testWebhookSecret))
	require.NoError(t, err)

	assert.Equal(t, "evt_1", event.ID)
	assert.Equal(t, "payment_intent.succeeded", event.Type)
	assert.Equal(t, "pi_123", event.PaymentIntentID)
	assert.Equal(t, "0190a7b4-3c1e-7d2a-9f10-5b2c8e4d6a11", event.Metadata["orderId"])
}

func TestStripeGateway_ParseWebhook_OtherEventType(t *testing.T) {
	gateway := newTestGateway(t)
	payload := []byte(`{"id": "evt_2", "object": "event", "type": "charge.refunded", "data": {"object": {"id": "ch_1", "object": "charge"}}}`)

	event, err := gateway.ParseWebhook(payload, signPayload(t, payload, testWebhookSecret))
	require.NoError(t, err)

	assert.Equal(t, "charge.refunded", event.Type)
	assert.Empty(t, event.PaymentIntentID)
}

func TestStripeGateway_ParseWebhook_MissingSignature(t *testing.T) {
	gateway := newTestGateway(t)

	_, err := gateway.ParseWebhook([]byte(`{}`), "")
	assert.ErrorIs(t, err, domainerrors.ErrMissingSignature)
}

func TestStripeGateway_ParseWebhook_WrongSecret(t *testing.T) {
	gateway := newTestGateway(t)
	payload := []byte(`{"id": "evt_3", "object": "event", "type": "payment_intent.succeeded"}`)

	_, err := gateway.ParseWebhook(payload, signPayload(t, payload, "whsec_other"))
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSignature)
}

func TestStripeGateway_ParseWebhook_TamperedPayload(t *testing.T) {
	gateway := newTestGateway(t)
	payload := []byte(`{"id": "evt_4", "object": "event", "type": "payment_intent.succeeded"}`)
	header := signPayload(t, payload, testWebhookSecret)

	_, err := gateway.ParseWebhook([]byte(`{"id": "evt_5", "object": "event", "type": "payment_intent.succeeded"}`), header)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSignature)
}
