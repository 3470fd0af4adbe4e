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

// wishlistRepository implements the repository.WishlistRepository interface.
type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository is the constructor for wishlistRepository.
func NewWishlistRepository(db *gorm.DB) repository.WishlistRepository {
	return &wishlistRepository{db: db}
}

// ListByUser returns entries with product, variants and brand, newest first.
func (repo *wishlistRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.WishlistItem, error) {
	var itemModels []*model.WishlistItemModel

	if err := repo.db.WithContext(ctx).
		Preload("Product.Brand").
		Preload("Product.Variants", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("price_cents ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list wishlist")
	}

	items := make([]*entity.WishlistItem, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, &entity.WishlistItem{
			ID:        itemM.ID,
			UserID:    itemM.UserID,
			ProductID: itemM.ProductID,
			CreatedAt: itemM.CreatedAt,
			Product:   toProductDomain(itemM.Product),
		})
	}

	return items, nil
}

// Create adds a product to the wishlist.
func (repo *wishlistRepository) Create(ctx context.Context, item *entity.WishlistItem) error {
	itemM := &model.WishlistItemModel{
		UserID:    item.UserID,
		ProductID: item.ProductID,
	}

	if err := repo.db.WithContext(ctx).Omit("Product").Create(itemM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateWishlistItem
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to add wishlist item")
	}

	item.ID = itemM.ID
	item.CreatedAt = itemM.CreatedAt

	return nil
}

// Delete removes a product from the wishlist.
func (repo *wishlistRepository) Delete(ctx context.Context, userID, productID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.WishlistItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete wishlist item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrWishlistItemNotFound
	}

	return nil
}
