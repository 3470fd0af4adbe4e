package entity

import (
	"fmt"
	"strings"
	"time"

	domainerrors "morgenstar/internal/domain/errors"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions lists the allowed target states per state.
// DELIVERED and CANCELLED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: nil,
	OrderStatusCancelled: nil,
}

// ParseOrderStatus validates a status sent by a client.
func ParseOrderStatus(s string) (OrderStatus, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domainerrors.ErrStatusRequired
	}

	status := OrderStatus(strings.ToUpper(s))
	if !status.IsValid() {
		return "", domainerrors.ErrInvalidStatus
	}

	return status, nil
}

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]

	return ok
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s.IsValid() && len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether the state machine allows s -> next.
// Staying in the same state is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return s.IsValid()
	}

	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// GermanLabel is the status wording used in customer mails and push messages.
func (s OrderStatus) GermanLabel() string {
	switch s {
	case OrderStatusConfirmed:
		return "bestätigt"
	case OrderStatusShipped:
		return "versendet"
	case OrderStatusDelivered:
		return "geliefert"
	case OrderStatusCancelled:
		return "storniert"
	default:
		return "in Bearbeitung"
	}
}

// PaymentStatus is the payment state reported by the payment processor.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Address is a shipping or billing address stored with the order.
type Address struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Company     string `json:"company,omitempty"`
	Street      string `json:"street" validate:"required"`
	HouseNumber string `json:"houseNumber" validate:"required"`
	PostalCode  string `json:"postalCode" validate:"required"`
	City        string `json:"city" validate:"required"`
	Country     string `json:"country" validate:"required"`
}

// FullName joins first and last name.
func (a *Address) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Order is a placed purchase. Items are immutable snapshots.
type Order struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"userId"`
	Status          OrderStatus   `json:"status"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	PaymentIntentID string        `json:"paymentIntentId,omitempty"`
	PaymentMethod   string        `json:"paymentMethod,omitempty"`
	SubtotalCents   int64         `json:"subtotalCents"`
	DiscountCents   int64         `json:"discountCents"`
	TotalCents      int64         `json:"totalCents"`
	CouponCode      string        `json:"couponCode,omitempty"`
	Currency        string        `json:"currency"`
	ShippingAddress *Address      `json:"shippingAddress,omitempty"`
	BillingAddress  *Address      `json:"billingAddress,omitempty"`
	TrackingNumber  string        `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	Items           []*OrderItem  `json:"items,omitempty"`
	User            *User         `json:"user,omitempty"`
}

// TransitionTo validates the state machine and returns whether the status actually changed.
func (o *Order) TransitionTo(next OrderStatus) (bool, error) {
	if !next.IsValid() {
		return false, domainerrors.ErrInvalidStatus
	}
	if !o.Status.CanTransitionTo(next) {
		return false, domainerrors.ErrInvalidStatusTransition.WithMessage(
			fmt.Sprintf("Ungültiger Statusübergang von %s nach %s", o.Status, next),
		)
	}

	changed := o.Status != next
	o.Status = next

	return changed, nil
}

// IsRevenue reports whether the order counts towards shop revenue.
func (o *Order) IsRevenue() bool {
	if o.PaymentStatus == PaymentStatusPaid {
		return true
	}

	switch o.Status {
	case OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// OrderItem is a line of an order with the price and names at purchase time.
type OrderItem struct {
	ID           uuid.UUID       `json:"id"`
	OrderID      uuid.UUID       `json:"orderId"`
	VariantID    uuid.UUID       `json:"variantId"`
	Qty          int             `json:"qty"`
	PriceCents   int64           `json:"priceCents"`
	ProductTitle string          `json:"productTitle"`
	VariantName  string          `json:"variantName"`
	Variant      *ProductVariant `json:"variant,omitempty"`
}

// LineTotalCents is the snapshot price times the quantity.
func (i *OrderItem) LineTotalCents() int64 {
	return i.PriceCents * int64(i.Qty)
}
