package postgres

import (
	"context"
	"time"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// couponRepository implements the repository.CouponRepository interface.
type couponRepository struct {
	db *gorm.DB
}

// NewCouponRepository is the constructor for couponRepository.
func NewCouponRepository(db *gorm.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

// FindByCode retrieves a coupon by its upper case code.
func (repo *couponRepository) FindByCode(ctx context.Context, code string) (*entity.Coupon, error) {
	var couponM model.CouponModel

	if err := repo.db.WithContext(ctx).Where("code = ?", code).First(&couponM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCouponNotFound
		}

		return nil, errors.Wrap(err, "failed to find coupon by code")
	}

	return toCouponDomain(&couponM), nil
}

// ListActive returns active coupons that are valid at now.
func (repo *couponRepository) ListActive(ctx context.Context, now time.Time) ([]*entity.Coupon, error) {
	var couponModels []*model.CouponModel

	if err := repo.db.WithContext(ctx).
		Where("is_active = ? AND valid_from <= ?", true, now).
		Where("valid_until IS NULL OR valid_until >= ?", now).
		Order("created_at DESC").
		Find(&couponModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list active coupons")
	}

	coupons := make([]*entity.Coupon, 0, len(couponModels))
	for _, couponM := range couponModels {
		coupons = append(coupons, toCouponDomain(couponM))
	}

	return coupons, nil
}

// Create persists a new coupon.
func (repo *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	couponM := fromCouponDomain(coupon)

	if err := repo.db.WithContext(ctx).Create(couponM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateCoupon
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("coupon value must be positive")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create coupon")
	}

	coupon.ID = couponM.ID
	coupon.CreatedAt = couponM.CreatedAt

	return nil
}

// Redeem increments used_count while the usage limit allows it.
func (repo *couponRepository) Redeem(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CouponModel{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", id).
		Update("used_count", gorm.Expr("used_count + 1"))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to redeem coupon")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCouponExhausted
	}

	return nil
}

// --- Mapper Functions ---

func toCouponDomain(data *model.CouponModel) *entity.Coupon {
	return &entity.Coupon{
		ID:            data.ID,
		Code:          data.Code,
		Description:   data.Description,
		Type:          entity.CouponType(data.Type),
		Value:         data.Value,
		MinOrderValue: data.MinOrderValue,
		MaxDiscount:   data.MaxDiscount,
		UsageLimit:    data.UsageLimit,
		UsedCount:     data.UsedCount,
		ValidFrom:     data.ValidFrom,
		ValidUntil:    data.ValidUntil,
		IsActive:      data.IsActive,
		CreatedAt:     data.CreatedAt,
	}
}

func fromCouponDomain(data *entity.Coupon) *model.CouponModel {
	return &model.CouponModel{
		ID:            data.ID,
		Code:          data.Code,
		Description:   data.Description,
		Type:          string(data.Type),
		Value:         data.Value,
		MinOrderValue: data.MinOrderValue,
		MaxDiscount:   data.MaxDiscount,
		UsageLimit:    data.UsageLimit,
		UsedCount:     data.UsedCount,
		ValidFrom:     data.ValidFrom,
		ValidUntil:    data.ValidUntil,
		IsActive:      data.IsActive,
	}
}
