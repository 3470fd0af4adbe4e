package usecase

import (
	"context"
	"time"

	"morgenstar/internal/domain/entity"
)

// ValidateCouponOutput is the preview shown before checkout.
type ValidateCouponOutput struct {
	Coupon         *entity.Coupon
	DiscountAmount int64
	FinalAmount    int64
}

// CreateCouponInput defines a new coupon. Amounts are cents, Value is percent for PERCENTAGE.
type CreateCouponInput struct {
	Code          string
	Description   string
	Type          entity.CouponType
	Value         int64
	MinOrderValue *int64
	MaxDiscount   *int64
	UsageLimit    *int
	ValidFrom     *time.Time
	ValidUntil    *time.Time
}

// CouponUsecase defines coupon operations.
type CouponUsecase interface {
	// Validate checks a code against an order value without consuming a usage slot.
	Validate(ctx context.Context, code string, orderValue int64) (*ValidateCouponOutput, error)

	// ListActive returns coupons currently valid.
	ListActive(ctx context.Context) ([]*entity.Coupon, error)

	// CreateCoupon stores a new coupon.
	CreateCoupon(ctx context.Context, input *CreateCouponInput) (*entity.Coupon, error)
}
