package impl

import (
	"context"
	"testing"
	"time"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	mockRepo "morgenstar/internal/mocks/repository"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type couponServiceFixtures struct {
	service    usecase.CouponUsecase
	couponRepo *mockRepo.MockCouponRepository
}

func createTestCouponService(t *testing.T) couponServiceFixtures {
	couponRepo := mockRepo.NewMockCouponRepository(t)

	svc := NewCouponService(CouponServiceParams{
		CouponRepo: couponRepo,
		Logger:     newDiscardLogger(),
	})
	svc.(*couponService).now = func() time.Time { return fixedNow }

	return couponServiceFixtures{service: svc, couponRepo: couponRepo}
}

func newActiveCoupon(code string, couponType entity.CouponType, value int64) *entity.Coupon {
	return &entity.Coupon{
		ID:        uuid.New(),
		Code:      code,
		Type:      couponType,
		Value:     value,
		ValidFrom: fixedNow.AddDate(0, -1, 0),
		IsActive:  true,
	}
}

func TestCouponService_Validate(t *testing.T) {
	ctx := context.Background()
	past := fixedNow.Add(-time.Minute)
	limit := 5
	maxDiscount := int64(1500)
	minOrder := int64(3000)

	tests := []struct {
		name         string
		coupon       *entity.Coupon
		orderValue   int64
		wantDiscount int64
		wantErr      error
	}{
		{
			name:         "percentage",
			coupon:       newActiveCoupon("SOMMER20", entity.CouponTypePercentage, 20),
			orderValue:   4995,
			wantDiscount: 999,
		},
		{
			name: "percentage capped by max discount",
			coupon: func() *entity.Coupon {
				c := newActiveCoupon("SOMMER20", entity.CouponTypePercentage, 20)
				c.MaxDiscount = &maxDiscount

				return c
			}(),
			orderValue:   10000,
			wantDiscount: 1500,
		},
		{
			name:         "fixed never exceeds order value",
			coupon:       newActiveCoupon("FIX10", entity.CouponTypeFixed, 1000),
			orderValue:   800,
			wantDiscount: 800,
		},
		{
			name: "inactive",
			coupon: func() *entity.Coupon {
				c := newActiveCoupon("OLD", entity.CouponTypeFixed, 500)
				c.IsActive = false

				return c
			}(),
			orderValue: 5000,
			wantErr:    domainerrors.ErrCouponInactive,
		},
		{
			name: "expired",
			coupon: func() *entity.Coupon {
				c := newActiveCoupon("OLD", entity.CouponTypeFixed, 500)
				c.ValidUntil = &past

				return c
			}(),
			orderValue: 5000,
			wantErr:    domainerrors.ErrCouponExpired,
		},
		{
			name: "exhausted",
			coupon: func() *entity.Coupon {
				c := newActiveCoupon("LIMITED", entity.CouponTypeFixed, 500)
				c.UsageLimit = &limit
				c.UsedCount = 5

				return c
			}(),
			orderValue: 5000,
			wantErr:    domainerrors.ErrCouponExhausted,
		},
		{
			name: "minimum order value",
			coupon: func() *entity.Coupon {
				c := newActiveCoupon("BIG", entity.CouponTypeFixed, 500)
				c.MinOrderValue = &minOrder

				return c
			}(),
			orderValue: 2999,
			wantErr:    domainerrors.ErrCouponMinOrderValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestCouponService(t)
			fx.couponRepo.EXPECT().FindByCode(ctx, tt.coupon.Code).Return(tt.coupon, nil)

			out, err := fx.service.Validate(ctx, " "+tt.coupon.Code+" ", tt.orderValue)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantDiscount, out.DiscountAmount)
			assert.Equal(t, tt.orderValue-tt.wantDiscount, out.FinalAmount)
		})
	}
}

func TestCouponService_Validate_NormalizesCode(t *testing.T) {
	fx := createTestCouponService(t)
	ctx := context.Background()
	coupon := newActiveCoupon("WELCOME10", entity.CouponTypePercentage, 10)

	fx.couponRepo.EXPECT().FindByCode(ctx, "WELCOME10").Return(coupon, nil)

	out, err := fx.service.Validate(ctx, "welcome10", 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(200), out.DiscountAmount)
}

func TestCouponService_Validate_InputErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing code", func(t *testing.T) {
		fx := createTestCouponService(t)
		_, err := fx.service.Validate(ctx, "  ", 1000)
		assert.ErrorIs(t, err, domainerrors.ErrCouponCodeRequired)
	})

	t.Run("negative order value", func(t *testing.T) {
		fx := createTestCouponService(t)
		_, err := fx.service.Validate(ctx, "X", -1)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
	})

	t.Run("unknown code", func(t *testing.T) {
		fx := createTestCouponService(t)
		fx.couponRepo.EXPECT().FindByCode(ctx, "NOPE").Return(nil, repository.ErrCouponNotFound)

		_, err := fx.service.Validate(ctx, "nope", 1000)
		assert.ErrorIs(t, err, domainerrors.ErrCouponNotFound)
	})
}

func TestCouponService_ListActive(t *testing.T) {
	fx := createTestCouponService(t)
	ctx := context.Background()
	coupons := []*entity.Coupon{newActiveCoupon("A", entity.CouponTypeFixed, 100)}

	fx.couponRepo.EXPECT().ListActive(ctx, fixedNow).Return(coupons, nil)

	got, err := fx.service.ListActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, coupons, got)
}

func TestCouponService_CreateCoupon(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults valid from to now", func(t *testing.T) {
		fx := createTestCouponService(t)
		fx.couponRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Coupon")).Return(nil)

		coupon, err := fx.service.CreateCoupon(ctx, &usecase.CreateCouponInput{
			Code:  "herbst15",
			Type:  entity.CouponTypePercentage,
			Value: 15,
		})
		require.NoError(t, err)
		assert.Equal(t, "HERBST15", coupon.Code)
		assert.Equal(t, fixedNow, coupon.ValidFrom)
		assert.True(t, coupon.IsActive)
		assert.Zero(t, coupon.UsedCount)
	})

	t.Run("duplicate code", func(t *testing.T) {
		fx := createTestCouponService(t)
		fx.couponRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Coupon")).Return(repository.ErrDuplicateCoupon)

		_, err := fx.service.CreateCoupon(ctx, &usecase.CreateCouponInput{
			Code:  "HERBST15",
			Type:  entity.CouponTypeFixed,
			Value: 500,
		})
		assert.ErrorIs(t, err, domainerrors.ErrCouponAlreadyExists)
	})

	invalid := []struct {
		name  string
		input *usecase.CreateCouponInput
	}{
		{"unknown type", &usecase.CreateCouponInput{Code: "X", Type: "BOGO", Value: 1}},
		{"zero value", &usecase.CreateCouponInput{Code: "X", Type: entity.CouponTypeFixed}},
		{"percentage above 100", &usecase.CreateCouponInput{Code: "X", Type: entity.CouponTypePercentage, Value: 101}},
		{"window reversed", &usecase.CreateCouponInput{
			Code:       "X",
			Type:       entity.CouponTypeFixed,
			Value:      100,
			ValidUntil: func() *time.Time { v := fixedNow.Add(-time.Hour); return &v }(),
		}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestCouponService(t)

			_, err := fx.service.CreateCoupon(ctx, tt.input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}
