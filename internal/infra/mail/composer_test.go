package mail

import (
	"testing"
	"time"

	"morgenstar/config"
	"morgenstar/internal/domain/entity"
	"morgenstar/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComposer(t *testing.T) service.MailComposer {
	t.Helper()

	c, err := NewComposer(&config.Config{SMTP: &config.SMTPConfig{ShopURL: "https://morgenstar.de/"}})
	require.NoError(t, err)

	return c
}

func TestComposer_Welcome(t *testing.T) {
	msg, err := newTestComposer(t).Welcome("anna@example.de", "Anna <Admin>")
	require.NoError(t, err)

	assert.Equal(t, "anna@example.de", msg.To)
	assert.Equal(t, "Willkommen bei Morgenstar!", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Willkommen, Anna &lt;Admin&gt;!")
	assert.Contains(t, msg.HTMLBody, "https://morgenstar.de/kaffee")
	assert.Contains(t, msg.TextBody, "Willkommen, Anna <Admin>!")
}

func TestComposer_OrderConfirmation(t *testing.T) {
	order := &entity.Order{
		ID:            uuid.MustParse("0190a7b4-3c1e-7d2a-9f10-5b2c8e4d6a11"),
		TotalCents:    2398,
		DiscountCents: 200,
		CouponCode:    "WELCOME10",
		CreatedAt:     time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		ShippingAddress: &entity.Address{
			FirstName:   "Anna",
			LastName:    "Schmidt",
			Street:      "Hauptstraße",
			HouseNumber: "5",
			PostalCode:  "10115",
			City:        "Berlin",
			Country:     "Deutschland",
		},
		Items: []*entity.OrderItem{
			{ProductTitle: "Espresso Napoli", VariantName: "1kg Bohnen", Qty: 2, PriceCents: 1299},
		},
	}

	msg, err := newTestComposer(t).OrderConfirmation("anna@example.de", "Anna", order)
	require.NoError(t, err)

	assert.Equal(t, "Bestellbestätigung #8E4D6A11 - Morgenstar", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "#8E4D6A11")
	assert.Contains(t, msg.HTMLBody, "14.03.2026")
	assert.Contains(t, msg.HTMLBody, "Espresso Napoli")
	assert.Contains(t, msg.HTMLBody, "25,98 €")
	assert.Contains(t, msg.HTMLBody, "-2,00 €")
	assert.Contains(t, msg.HTMLBody, "23,98 €")
	assert.Contains(t, msg.HTMLBody, "Anna Schmidt")
	assert.Contains(t, msg.TextBody, "- Espresso Napoli (1kg Bohnen) - 2x - 25,98 €")
	assert.Contains(t, msg.TextBody, "Gesamt: 23,98 €")
}

func TestComposer_OrderStatusUpdate(t *testing.T) {
	tests := []struct {
		name     string
		status   entity.OrderStatus
		tracking string
		wantText string
	}{
		{name: "shipped with tracking", status: entity.OrderStatusShipped, tracking: "DHL123", wantText: "versendet"},
		{name: "confirmed", status: entity.OrderStatusConfirmed, wantText: "bestätigt"},
		{name: "delivered", status: entity.OrderStatusDelivered, wantText: "geliefert"},
		{name: "cancelled", status: entity.OrderStatusCancelled, wantText: "storniert"},
		{name: "pending", status: entity.OrderStatusPending, wantText: "in Bearbeitung"},
	}

	composer := newTestComposer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := composer.OrderStatusUpdate("anna@example.de", "Anna", &service.OrderStatusMail{
				OrderID:        "0190a7b4-3c1e-7d2a-9f10-5b2c8e4d6a11",
				Status:         tt.status,
				TrackingNumber: tt.tracking,
			})
			require.NoError(t, err)

			assert.Equal(t, "Bestellstatus Update #8E4D6A11 - Morgenstar", msg.Subject)
			assert.Contains(t, msg.HTMLBody, tt.wantText)
			assert.Contains(t, msg.TextBody, "wurde "+tt.wantText+".")
			if tt.tracking != "" {
				assert.Contains(t, msg.HTMLBody, "Tracking-Nummer:</strong> DHL123")
				assert.Contains(t, msg.TextBody, "Tracking-Nummer: DHL123")
			} else {
				assert.NotContains(t, msg.TextBody, "Tracking-Nummer")
			}
		})
	}
}
