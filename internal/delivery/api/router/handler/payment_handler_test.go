package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	domainerrors "morgenstar/internal/domain/errors"
	mockUsecase "morgenstar/internal/mocks/usecase"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestPaymentHandler(t *testing.T) (*PaymentHandler, *mockUsecase.MockPaymentUsecase) {
	paymentUC := mockUsecase.NewMockPaymentUsecase(t)

	return NewPaymentHandler(PaymentHandlerParams{PaymentUC: paymentUC, Logger: testLogger}), paymentUC
}

func TestPaymentHandler_CreatePaymentIntent(t *testing.T) {
	h, paymentUC := createTestPaymentHandler(t)

	userID := uuid.New()
	orderID := uuid.NewString()
	paymentUC.EXPECT().
		CreatePaymentIntent(mock.Anything, &usecase.CreatePaymentIntentInput{
			UserID:   userID,
			OrderID:  orderID,
			Amount:   2599,
			Currency: "eur",
		}).
		Return(&usecase.CreatePaymentIntentOutput{ClientSecret: "pi_1_secret_2", PaymentIntentID: "pi_1"}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/payments/create-intent",
		`{"amount":2599,"currency":"eur","orderId":"`+orderID+`"}`)
	signIn(c, userID)

	require.NoError(t, h.CreatePaymentIntent(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	got := decodeData[CreatePaymentIntentResponse](t, rec)
	assert.Equal(t, "pi_1_secret_2", got.ClientSecret)
	assert.Equal(t, "pi_1", got.PaymentIntentID)
}

func TestPaymentHandler_CreatePaymentIntent_InvalidAmount(t *testing.T) {
	h, paymentUC := createTestPaymentHandler(t)

	paymentUC.EXPECT().CreatePaymentIntent(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrInvalidAmount)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/payments/create-intent",
		`{"amount":0,"orderId":"`+uuid.NewString()+`"}`)
	signIn(c, uuid.New())

	require.NoError(t, h.CreatePaymentIntent(c))
	assert.Equal(t, domainerrors.ErrInvalidAmount.HTTPCode(), rec.Code)
	assert.Equal(t, domainerrors.ErrInvalidAmount.ErrorCode(), decodeEnvelope(t, rec).Code)
}

func TestPaymentHandler_StripeWebhook(t *testing.T) {
	h, paymentUC := createTestPaymentHandler(t)

	payload := `{"id":"evt_1","type":"payment_intent.succeeded"}`
	paymentUC.EXPECT().HandleWebhook(mock.Anything, []byte(payload), "t=1,v1=abc").Return(nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/webhooks/stripe", payload)
	c.Request().Header.Set("Stripe-Signature", "t=1,v1=abc")

	require.NoError(t, h.StripeWebhook(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body["received"])
}

func TestPaymentHandler_StripeWebhook_MissingSignature(t *testing.T) {
	h, _ := createTestPaymentHandler(t)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/webhooks/stripe", `{}`)

	require.NoError(t, h.StripeWebhook(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domainerrors.ErrMissingSignature.ErrorCode(), decodeEnvelope(t, rec).Code)
}

func TestPaymentHandler_StripeWebhook_InvalidSignature(t *testing.T) {
	h, paymentUC := createTestPaymentHandler(t)

	paymentUC.EXPECT().HandleWebhook(mock.Anything, mock.Anything, "forged").
		Return(domainerrors.ErrInvalidSignature)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/webhooks/stripe", `{"id":"evt_2"}`)
	c.Request().Header.Set("Stripe-Signature", "forged")

	require.NoError(t, h.StripeWebhook(c))
	assert.Equal(t, domainerrors.ErrInvalidSignature.HTTPCode(), rec.Code)
	assert.Equal(t, domainerrors.ErrInvalidSignature.ErrorCode(), decodeEnvelope(t, rec).Code)
}
