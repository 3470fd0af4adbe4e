package postgres

import (
	"context"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// variantRepository implements the repository.VariantRepository interface.
type variantRepository struct {
	db *gorm.DB
}

// NewVariantRepository is the constructor for variantRepository.
func NewVariantRepository(db *gorm.DB) repository.VariantRepository {
	return &variantRepository{db: db}
}

// FindByID retrieves a variant with its product and brand.
func (repo *variantRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ProductVariant, error) {
	var variantM model.ProductVariantModel

	if err := repo.db.WithContext(ctx).
		Preload("Product.Brand").
		Where("id = ?", id).
		First(&variantM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVariantNotFound
		}

		return nil, errors.Wrap(err, "failed to find variant by id")
	}

	return toVariantDomain(&variantM, true), nil
}

// FindByIDs retrieves variants with their product. Unknown ids are omitted.
func (repo *variantRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.ProductVariant, error) {
	if len(ids) == 0 {
		return []*entity.ProductVariant{}, nil
	}

	var variantModels []*model.ProductVariantModel
	if err := repo.db.WithContext(ctx).
		Preload("Product").
		Where("id IN ?", ids).
		Find(&variantModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find variants by ids")
	}

	variants := make([]*entity.ProductVariant, 0, len(variantModels))
	for _, variantM := range variantModels {
		variants = append(variants, toVariantDomain(variantM, true))
	}

	return variants, nil
}

// DecrementStock lowers in_stock by qty only while enough stock is left.
func (repo *variantRepository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductVariantModel{}).
		Where("id = ? AND in_stock >= ?", id, qty).
		Update("in_stock", gorm.Expr("in_stock - ?", qty))

	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return repository.ErrInsufficientStock
		}

		return errors.Wrap(result.Error, "failed to decrement stock")
	}

	if result.RowsAffected == 0 {
		return repository.ErrInsufficientStock
	}

	return nil
}

// Update applies admin edits and returns the updated variant.
func (repo *variantRepository) Update(ctx context.Context, id uuid.UUID, update repository.VariantUpdate) (*entity.ProductVariant, error) {
	changes := map[string]any{}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.PriceCents != nil {
		changes["price_cents"] = *update.PriceCents
	}
	if update.InStock != nil {
		changes["in_stock"] = *update.InStock
	}

	if len(changes) > 0 {
		result := repo.db.WithContext(ctx).
			Model(&model.ProductVariantModel{}).
			Where("id = ?", id).
			Updates(changes)

		if result.Error != nil {
			if isCheckConstraintViolation(result.Error) {
				return nil, domainerrors.ErrValidationFailed.WrapMessage("price and stock must not be negative")
			}

			return nil, errors.Wrap(result.Error, "failed to update variant")
		}

		if result.RowsAffected == 0 {
			return nil, repository.ErrVariantNotFound
		}
	}

	return repo.FindByID(ctx, id)
}

// --- Mapper Functions ---

// toVariantDomain maps a variant; withProduct controls whether the parent product is attached.
func toVariantDomain(data *model.ProductVariantModel, withProduct bool) *entity.ProductVariant {
	if data == nil {
		return nil
	}

	variant := &entity.ProductVariant{
		ID:         data.ID,
		ProductID:  data.ProductID,
		SKU:        data.SKU,
		Name:       data.Name,
		PriceCents: data.PriceCents,
		InStock:    data.InStock,
		WeightGr:   data.WeightGr,
	}
	if withProduct && data.Product != nil {
		variant.Product = toProductDomain(data.Product)
	}

	return variant
}

func fromVariantDomain(data *entity.ProductVariant) *model.ProductVariantModel {
	if data == nil {
		return nil
	}

	return &model.ProductVariantModel{
		ID:         data.ID,
		ProductID:  data.ProductID,
		SKU:        data.SKU,
		Name:       data.Name,
		PriceCents: data.PriceCents,
		InStock:    data.InStock,
		WeightGr:   data.WeightGr,
	}
}
