package entity

import (
	"testing"
	"time"

	domainerrors "morgenstar/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func intPtr(v int) *int { return &v }

func activeCoupon(couponType CouponType, value int64) *Coupon {
	return &Coupon{
		Code:      "WELCOME10",
		Type:      couponType,
		Value:     value,
		ValidFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
}

func TestCoupon_Evaluate_PercentageCappedByMaxDiscount(t *testing.T) {
	coupon := activeCoupon(CouponTypePercentage, 10)
	coupon.MaxDiscount = int64Ptr(500)

	discount, err := coupon.Evaluate(10000, time.Now())

	require.NoError(t, err)
	assert.Equal(t, int64(500), discount)
	assert.Equal(t, int64(9500), 10000-discount)
}

func TestCoupon_Discount(t *testing.T) {
	tests := []struct {
		name       string
		coupon     *Coupon
		orderValue int64
		expected   int64
	}{
		{
			name:       "percentage without cap",
			coupon:     activeCoupon(CouponTypePercentage, 15),
			orderValue: 2399,
			expected:   360, // 359.85 rounds up
		},
		{
			name:       "percentage rounds half away from zero",
			coupon:     activeCoupon(CouponTypePercentage, 50),
			orderValue: 1299,
			expected:   650,
		},
		{
			name:       "fixed amount",
			coupon:     activeCoupon(CouponTypeFixed, 500),
			orderValue: 2999,
			expected:   500,
		},
		{
			name:       "fixed amount never exceeds order value",
			coupon:     activeCoupon(CouponTypeFixed, 5000),
			orderValue: 1299,
			expected:   1299,
		},
		{
			name:       "percentage above hundred is clamped",
			coupon:     activeCoupon(CouponTypePercentage, 150),
			orderValue: 1000,
			expected:   1000,
		},
		{
			name:       "empty order",
			coupon:     activeCoupon(CouponTypeFixed, 500),
			orderValue: 0,
			expected:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.coupon.Discount(tt.orderValue)

			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, got, tt.orderValue)
			assert.GreaterOrEqual(t, got, int64(0))
		})
	}
}

func TestCoupon_Evaluate_Rejections(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	tests := []struct {
		name     string
		mutate   func(c *Coupon)
		value    int64
		expected *domainerrors.BaseError
	}{
		{
			name:     "inactive",
			mutate:   func(c *Coupon) { c.IsActive = false },
			value:    5000,
			expected: domainerrors.ErrCouponInactive,
		},
		{
			name:     "not yet valid",
			mutate:   func(c *Coupon) { c.ValidFrom = now.Add(time.Hour) },
			value:    5000,
			expected: domainerrors.ErrCouponExpired,
		},
		{
			name:     "expired",
			mutate:   func(c *Coupon) { c.ValidUntil = &past },
			value:    5000,
			expected: domainerrors.ErrCouponExpired,
		},
		{
			name: "expired wins over exhausted and minimum",
			mutate: func(c *Coupon) {
				c.ValidUntil = &past
				c.UsageLimit = intPtr(1)
				c.UsedCount = 1
				c.MinOrderValue = int64Ptr(100000)
			},
			value:    5000,
			expected: domainerrors.ErrCouponExpired,
		},
		{
			name: "exhausted",
			mutate: func(c *Coupon) {
				c.UsageLimit = intPtr(3)
				c.UsedCount = 3
			},
			value:    5000,
			expected: domainerrors.ErrCouponExhausted,
		},
		{
			name:     "below minimum order value",
			mutate:   func(c *Coupon) { c.MinOrderValue = int64Ptr(5000) },
			value:    4999,
			expected: domainerrors.ErrCouponMinOrderValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coupon := activeCoupon(CouponTypePercentage, 10)
			tt.mutate(coupon)

			discount, err := coupon.Evaluate(tt.value, now)

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.expected), "got %v", err)
			assert.Zero(t, discount)
		})
	}
}

func TestCoupon_Evaluate_MinOrderMessage(t *testing.T) {
	coupon := activeCoupon(CouponTypeFixed, 500)
	coupon.MinOrderValue = int64Ptr(5000)

	_, err := coupon.Evaluate(1000, time.Now())

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "Mindestbestellwert von 50.00€ nicht erreicht", appErr.Message())
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "WELCOME10", NormalizeCouponCode("  welcome10 "))
	assert.Equal(t, "", NormalizeCouponCode("   "))
}
