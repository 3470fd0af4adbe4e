package entity

import "github.com/google/uuid"

// Cart is an anonymous shopping cart identified by the cart cookie.
type Cart struct {
	ID    uuid.UUID   `json:"id"`
	Items []*CartItem `json:"items"`
}

// CartItem is one line of a cart. The price is read from the variant at read time.
type CartItem struct {
	ID        uuid.UUID       `json:"id"`
	CartID    uuid.UUID       `json:"cartId"`
	VariantID uuid.UUID       `json:"variantId"`
	Qty       int             `json:"qty"`
	Variant   *ProductVariant `json:"variant,omitempty"`
}

// LineTotalCents is the current variant price times the quantity.
func (i *CartItem) LineTotalCents() int64 {
	if i.Variant == nil {
		return 0
	}

	return i.Variant.PriceCents * int64(i.Qty)
}

// TotalCents sums all line totals at current prices.
func (c *Cart) TotalCents() int64 {
	if c == nil {
		return 0
	}

	var total int64
	for _, item := range c.Items {
		total += item.LineTotalCents()
	}

	return total
}

// ItemCount sums the quantities of all lines.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}

	count := 0
	for _, item := range c.Items {
		count += item.Qty
	}

	return count
}
