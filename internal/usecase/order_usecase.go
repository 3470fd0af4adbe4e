package usecase

import (
	"context"

	"morgenstar/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderLineInput references a variant and a quantity. Client prices are never accepted.
type OrderLineInput struct {
	VariantID uuid.UUID
	Qty       int
}

// PlaceOrderInput defines the data required to place an order.
type PlaceOrderInput struct {
	UserID          uuid.UUID
	Items           []OrderLineInput
	ShippingAddress *entity.Address
	BillingAddress  *entity.Address
	PaymentMethod   string
	CouponCode      string
	CartID          *uuid.UUID // Cleared after a successful checkout
}

// PlaceOrderOutput is the checkout result.
type PlaceOrderOutput struct {
	Order *entity.Order
}

// OrderUsecase defines the customer order operations.
type OrderUsecase interface {
	// PlaceOrder validates the lines and coupon, then creates the order and
	// decrements stock in one transaction.
	PlaceOrder(ctx context.Context, input *PlaceOrderInput) (*PlaceOrderOutput, error)

	// ListOrders returns the user's orders newest first.
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// GetOrder returns one of the user's orders.
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)

	// OrderQRCode renders a PNG QR code linking to the order tracking page.
	OrderQRCode(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error)
}
