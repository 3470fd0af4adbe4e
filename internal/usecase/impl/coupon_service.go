package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/errors"
	"morgenstar/internal/usecase"

	"go.uber.org/fx"
)

type couponService struct {
	couponRepo repository.CouponRepository
	logger     *slog.Logger
	now        func() time.Time
}

// CouponServiceParams holds dependencies for CouponService, injected by Fx.
type CouponServiceParams struct {
	fx.In

	CouponRepo repository.CouponRepository
	Logger     *slog.Logger
}

// NewCouponService creates the coupon service
func NewCouponService(params CouponServiceParams) usecase.CouponUsecase {
	return &couponService{
		couponRepo: params.CouponRepo,
		logger:     params.Logger,
		now:        time.Now,
	}
}

func (srv *couponService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Validate previews the discount of a code. It never consumes a usage slot.
func (srv *couponService) Validate(ctx context.Context, code string, orderValue int64) (*usecase.ValidateCouponOutput, error) {
	code = entity.NormalizeCouponCode(code)
	if code == "" {
		return nil, errors.WithStack(domainerrors.ErrCouponCodeRequired)
	}
	if orderValue < 0 {
		return nil, errors.WithStack(domainerrors.ErrInvalidAmount)
	}

	coupon, err := srv.couponRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return nil, domainerrors.ErrCouponNotFound.WrapMessage("unknown coupon code")
		}

		return nil, errors.Wrap(err, "failed to load coupon")
	}

	discount, err := coupon.Evaluate(orderValue, srv.now())
	if err != nil {
		srv.log(ctx).Debug("Coupon rejected", slog.String("code", code), slog.Any("reason", err))

		return nil, errors.WithStack(err)
	}

	return &usecase.ValidateCouponOutput{
		Coupon:         coupon,
		DiscountAmount: discount,
		FinalAmount:    orderValue - discount,
	}, nil
}

// ListActive returns the coupons valid right now.
func (srv *couponService) ListActive(ctx context.Context) ([]*entity.Coupon, error) {
	coupons, err := srv.couponRepo.ListActive(ctx, srv.now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list coupons")
	}

	return coupons, nil
}

// CreateCoupon validates and stores a coupon.
func (srv *couponService) CreateCoupon(ctx context.Context, input *usecase.CreateCouponInput) (*entity.Coupon, error) {
	coupon, err := buildCoupon(input, srv.now())
	if err != nil {
		return nil, err
	}

	if err := srv.couponRepo.Create(ctx, coupon); err != nil {
		if errors.Is(err, repository.ErrDuplicateCoupon) {
			return nil, domainerrors.ErrCouponAlreadyExists.WrapMessage("coupon code taken")
		}

		return nil, errors.Wrap(err, "failed to create coupon")
	}

	srv.log(ctx).Info("Coupon created", slog.String("code", coupon.Code), slog.String("type", string(coupon.Type)))

	return coupon, nil
}

func buildCoupon(input *usecase.CreateCouponInput, now time.Time) (*entity.Coupon, error) {
	code := entity.NormalizeCouponCode(input.Code)
	if code == "" {
		return nil, errors.WithStack(domainerrors.ErrCouponCodeRequired)
	}

	invalid := func(details string) error {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(details))
	}

	switch {
	case !input.Type.IsValid():
		return nil, invalid("type must be PERCENTAGE or FIXED")
	case input.Value <= 0:
		return nil, invalid("value must be positive")
	case input.Type == entity.CouponTypePercentage && input.Value > 100:
		return nil, invalid("percentage must not exceed 100")
	case input.MinOrderValue != nil && *input.MinOrderValue < 0:
		return nil, invalid("minOrderValue must not be negative")
	case input.MaxDiscount != nil && *input.MaxDiscount <= 0:
		return nil, invalid("maxDiscount must be positive")
	case input.UsageLimit != nil && *input.UsageLimit <= 0:
		return nil, invalid("usageLimit must be positive")
	}

	validFrom := now
	if input.ValidFrom != nil {
		validFrom = *input.ValidFrom
	}
	if input.ValidUntil != nil && input.ValidUntil.Before(validFrom) {
		return nil, invalid("validUntil must be after validFrom")
	}

	return &entity.Coupon{
		Code:          code,
		Description:   input.Description,
		Type:          input.Type,
		Value:         input.Value,
		MinOrderValue: input.MinOrderValue,
		MaxDiscount:   input.MaxDiscount,
		UsageLimit:    input.UsageLimit,
		ValidFrom:     validFrom,
		ValidUntil:    input.ValidUntil,
		IsActive:      true,
	}, nil
}
