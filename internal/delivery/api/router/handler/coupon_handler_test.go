package handler

import (
	"net/http"
	"testing"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	mockUsecase "morgenstar/internal/mocks/usecase"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestCouponHandler(t *testing.T) (*CouponHandler, *mockUsecase.MockCouponUsecase) {
	couponUC := mockUsecase.NewMockCouponUsecase(t)

	return NewCouponHandler(CouponHandlerParams{CouponUC: couponUC, Logger: testLogger}), couponUC
}

func TestCouponHandler_Validate(t *testing.T) {
	h, couponUC := createTestCouponHandler(t)

	coupon := &entity.Coupon{
		ID:          uuid.New(),
		Code:        "WILLKOMMEN10",
		Description: "10% Rabatt",
		Type:        entity.CouponTypePercentage,
		Value:       10,
		UsedCount:   3,
	}
	couponUC.EXPECT().Validate(mock.Anything, "willkommen10", int64(5000)).
		Return(&usecase.ValidateCouponOutput{Coupon: coupon, DiscountAmount: 500, FinalAmount: 4500}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/coupons", `{"code":"willkommen10","orderValue":5000}`)

	require.NoError(t, h.Validate(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "usedCount")

	got := decodeData[ValidateCouponResponse](t, rec)
	assert.True(t, got.Valid)
	require.NotNil(t, got.Coupon)
	assert.Equal(t, "WILLKOMMEN10", got.Coupon.Code)
	assert.Equal(t, entity.CouponTypePercentage, got.Coupon.Type)
	assert.Equal(t, int64(500), got.DiscountAmount)
	assert.Equal(t, int64(4500), got.FinalAmount)
}

func TestCouponHandler_Validate_MinOrderValue(t *testing.T) {
	h, couponUC := createTestCouponHandler(t)

	minErr := domainerrors.ErrCouponMinOrderValue.WithMessage("Mindestbestellwert von 30,00 € nicht erreicht")
	couponUC.EXPECT().Validate(mock.Anything, "KAFFEE5", int64(1000)).Return(nil, minErr)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/coupons", `{"code":"KAFFEE5","orderValue":1000}`)

	require.NoError(t, h.Validate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, domainerrors.ErrCouponMinOrderValue.ErrorCode(), env.Code)
	assert.Equal(t, "Mindestbestellwert von 30,00 € nicht erreicht", env.Error)
}

func TestCouponHandler_CreateCoupon(t *testing.T) {
	h, couponUC := createTestCouponHandler(t)

	couponUC.EXPECT().
		CreateCoupon(mock.Anything, mock.MatchedBy(func(in *usecase.CreateCouponInput) bool {
			return in.Code == "SOMMER" && in.Type == entity.CouponTypeFixed && in.Value == 300 &&
				in.MinOrderValue != nil && *in.MinOrderValue == 2000
		})).
		Return(&entity.Coupon{ID: uuid.New(), Code: "SOMMER"}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/admin/coupons",
		`{"code":"SOMMER","type":"FIXED","value":300,"minOrderValue":2000}`)

	require.NoError(t, h.CreateCoupon(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCouponHandler_CreateCoupon_InvalidType(t *testing.T) {
	h, _ := createTestCouponHandler(t)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/admin/coupons", `{"code":"SOMMER","type":"GRATIS","value":300}`)

	require.NoError(t, h.CreateCoupon(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Details, "type")
}
