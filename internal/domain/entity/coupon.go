package entity

import (
	"fmt"
	"strings"
	"time"

	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CouponType selects how the coupon value is interpreted.
type CouponType string

const (
	// CouponTypePercentage takes Value percent off the order value.
	CouponTypePercentage CouponType = "PERCENTAGE"
	// CouponTypeFixed takes Value cents off the order value.
	CouponTypeFixed CouponType = "FIXED"
)

// IsValid reports whether t is a known coupon type.
func (t CouponType) IsValid() bool {
	return t == CouponTypePercentage || t == CouponTypeFixed
}

// Coupon is a discount code.
type Coupon struct {
	ID            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	Description   string     `json:"description,omitempty"`
	Type          CouponType `json:"type"`
	Value         int64      `json:"value"`
	MinOrderValue *int64     `json:"minOrderValue,omitempty"`
	MaxDiscount   *int64     `json:"maxDiscount,omitempty"`
	UsageLimit    *int       `json:"usageLimit,omitempty"`
	UsedCount     int        `json:"usedCount"`
	ValidFrom     time.Time  `json:"validFrom"`
	ValidUntil    *time.Time `json:"validUntil,omitempty"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// NormalizeCouponCode trims and upper-cases a code entered by a customer.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Evaluate checks the coupon against an order value in cents at the given time and
// returns the discount. Checks run in a fixed order so the customer gets the most
// specific reason.
func (c *Coupon) Evaluate(orderValue int64, now time.Time) (int64, error) {
	if !c.IsActive {
		return 0, domainerrors.ErrCouponInactive
	}
	if now.Before(c.ValidFrom) || (c.ValidUntil != nil && now.After(*c.ValidUntil)) {
		return 0, domainerrors.ErrCouponExpired
	}
	if c.IsExhausted() {
		return 0, domainerrors.ErrCouponExhausted
	}
	if c.MinOrderValue != nil && orderValue < *c.MinOrderValue {
		return 0, domainerrors.ErrCouponMinOrderValue.WithMessage(
			fmt.Sprintf("Mindestbestellwert von %s nicht erreicht", util.FormatEuro(*c.MinOrderValue)),
		)
	}

	return c.Discount(orderValue), nil
}

// IsExhausted reports whether the usage limit is reached.
func (c *Coupon) IsExhausted() bool {
	return c.UsageLimit != nil && c.UsedCount >= *c.UsageLimit
}

// Discount computes the discount for an order value, clamped to [0, orderValue].
func (c *Coupon) Discount(orderValue int64) int64 {
	if orderValue <= 0 {
		return 0
	}

	var discount int64
	switch c.Type {
	case CouponTypePercentage:
		// decimal.Round rounds half away from zero.
		discount = decimal.NewFromInt(orderValue).
			Mul(decimal.NewFromInt(c.Value)).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
		if c.MaxDiscount != nil && discount > *c.MaxDiscount {
			discount = *c.MaxDiscount
		}
	case CouponTypeFixed:
		discount = c.Value
	}

	if discount < 0 {
		return 0
	}
	if discount > orderValue {
		return orderValue
	}

	return discount
}
