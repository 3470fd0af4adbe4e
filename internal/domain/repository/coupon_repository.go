package repository

import (
	"context"
	"time"

	"morgenstar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrCouponNotFound is returned when no coupon has the code.
	ErrCouponNotFound = errors.New("coupon not found")
	// ErrDuplicateCoupon is returned when the code is taken.
	ErrDuplicateCoupon = errors.New("coupon already exists")
	// ErrCouponExhausted is returned when the guarded redemption matches no row.
	ErrCouponExhausted = errors.New("coupon usage limit reached")
)

// CouponRepository defines coupon persistence.
type CouponRepository interface {
	// FindByCode retrieves a coupon by its upper case code.
	FindByCode(ctx context.Context, code string) (*entity.Coupon, error)

	// ListActive returns active coupons that are valid at now.
	ListActive(ctx context.Context, now time.Time) ([]*entity.Coupon, error)

	// Create persists a new coupon.
	Create(ctx context.Context, coupon *entity.Coupon) error

	// Redeem increments used_count while the usage limit allows it.
	Redeem(ctx context.Context, id uuid.UUID) error
}
