package handler

import (
	"log/slog"
	"net/http"
	"time"

	"morgenstar/internal/delivery/api/response"
	"morgenstar/internal/domain/entity"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CouponHandlerParams holds dependencies for CouponHandler, injected by Fx.
type CouponHandlerParams struct {
	fx.In

	CouponUC usecase.CouponUsecase
	Logger   *slog.Logger
}

// CouponHandler serves coupon previews and the admin coupon form.
type CouponHandler struct {
	couponUC usecase.CouponUsecase
	logger   *slog.Logger
}

// NewCouponHandler is the constructor for CouponHandler
func NewCouponHandler(params CouponHandlerParams) *CouponHandler {
	return &CouponHandler{
		couponUC: params.CouponUC,
		logger:   params.Logger,
	}
}

// ValidateCouponRequest represents the request body of a coupon preview
type ValidateCouponRequest struct {
	Code       string `json:"code"`
	OrderValue int64  `json:"orderValue" validate:"min=0"`
}

// CouponSummary is the part of a coupon shown to customers.
type CouponSummary struct {
	ID          uuid.UUID         `json:"id"`
	Code        string            `json:"code"`
	Description string            `json:"description,omitempty"`
	Type        entity.CouponType `json:"type"`
	Value       int64             `json:"value"`
}

// ValidateCouponResponse is the preview of a discount.
type ValidateCouponResponse struct {
	Valid          bool           `json:"valid"`
	Coupon         *CouponSummary `json:"coupon"`
	DiscountAmount int64          `json:"discountAmount"`
	FinalAmount    int64          `json:"finalAmount"`
}

// CreateCouponRequest represents the admin request body for a new coupon
type CreateCouponRequest struct {
	Code          string            `json:"code" validate:"required"`
	Description   string            `json:"description"`
	Type          entity.CouponType `json:"type" validate:"required,oneof=PERCENTAGE FIXED"`
	Value         int64             `json:"value" validate:"gt=0"`
	MinOrderValue *int64            `json:"minOrderValue" validate:"omitempty,min=0"`
	MaxDiscount   *int64            `json:"maxDiscount" validate:"omitempty,min=0"`
	UsageLimit    *int              `json:"usageLimit" validate:"omitempty,min=1"`
	ValidFrom     *time.Time        `json:"validFrom"`
	ValidUntil    *time.Time        `json:"validUntil"`
}

// ListActive returns the coupons currently valid.
func (h *CouponHandler) ListActive(c echo.Context) error {
	coupons, err := h.couponUC.ListActive(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, coupons)
}

// Validate previews a coupon against an order value without redeeming it.
func (h *CouponHandler) Validate(c echo.Context) error {
	var req ValidateCouponRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	output, err := h.couponUC.Validate(c.Request().Context(), req.Code, req.OrderValue)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, &ValidateCouponResponse{
		Valid: true,
		Coupon: &CouponSummary{
			ID:          output.Coupon.ID,
			Code:        output.Coupon.Code,
			Description: output.Coupon.Description,
			Type:        output.Coupon.Type,
			Value:       output.Coupon.Value,
		},
		DiscountAmount: output.DiscountAmount,
		FinalAmount:    output.FinalAmount,
	})
}

// CreateCoupon stores a new coupon.
func (h *CouponHandler) CreateCoupon(c echo.Context) error {
	var req CreateCouponRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c)
	}

	if err := c.Validate(&req); err != nil {
		return response.ValidationError(c, err)
	}

	coupon, err := h.couponUC.CreateCoupon(c.Request().Context(), &usecase.CreateCouponInput{
		Code:          req.Code,
		Description:   req.Description,
		Type:          req.Type,
		Value:         req.Value,
		MinOrderValue: req.MinOrderValue,
		MaxDiscount:   req.MaxDiscount,
		UsageLimit:    req.UsageLimit,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, coupon)
}
