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
	"gorm.io/gorm/clause"
)

// cartRepository implements the repository.CartRepository interface.
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

// FindByID loads a cart with items, variants, products and brands.
func (repo *cartRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cart, error) {
	var cartM model.CartModel

	if err := repo.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at ASC")
		}).
		Preload("Items.Variant.Product.Brand").
		Where("id = ?", id).
		First(&cartM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}

	return toCartDomain(&cartM), nil
}

// Create persists an empty cart.
func (repo *cartRepository) Create(ctx context.Context) (*entity.Cart, error) {
	cartM := &model.CartModel{}
	if err := repo.db.WithContext(ctx).Omit("Items").Create(cartM).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create cart")
	}

	return &entity.Cart{ID: cartM.ID, Items: []*entity.CartItem{}}, nil
}

// AddItem inserts a line or increments the quantity of an existing one in a single upsert.
func (repo *cartRepository) AddItem(ctx context.Context, cartID, variantID uuid.UUID, qty int) (*entity.CartItem, error) {
	db := repo.db.WithContext(ctx)
	itemM := &model.CartItemModel{
		CartID:    cartID,
		VariantID: variantID,
		Qty:       qty,
	}

	if err := db.Omit("Variant").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "variant_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"qty":        gorm.Expr("cart_items.qty + EXCLUDED.qty"),
			"updated_at": time.Now(),
		}),
	}).Create(itemM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			if violatesConstraintOn(err, "variant") {
				return nil, repository.ErrVariantNotFound
			}

			return nil, repository.ErrCartNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to add cart item")
	}

	var stored model.CartItemModel
	if err := db.Where("cart_id = ? AND variant_id = ?", cartID, variantID).First(&stored).Error; err != nil {
		return nil, errors.Wrap(err, "failed to reload cart item")
	}

	return toCartItemDomain(&stored), nil
}

// UpdateItemQty sets the absolute quantity of a line that belongs to the cart.
func (repo *cartRepository) UpdateItemQty(ctx context.Context, cartID, itemID uuid.UUID, qty int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CartItemModel{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("qty", qty)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update cart item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// RemoveItem deletes a line that belongs to the cart.
func (repo *cartRepository) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&model.CartItemModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to remove cart item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

// Delete removes the cart and its lines.
func (repo *cartRepository) Delete(ctx context.Context, cartID uuid.UUID) error {
	db := repo.db.WithContext(ctx)

	if err := db.Where("cart_id = ?", cartID).Delete(&model.CartItemModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete cart items")
	}
	if err := db.Where("id = ?", cartID).Delete(&model.CartModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete cart")
	}

	return nil
}

// --- Mapper Functions ---

func toCartDomain(data *model.CartModel) *entity.Cart {
	cart := &entity.Cart{
		ID:    data.ID,
		Items: make([]*entity.CartItem, 0, len(data.Items)),
	}
	for _, itemM := range data.Items {
		cart.Items = append(cart.Items, toCartItemDomain(itemM))
	}

	return cart
}

func toCartItemDomain(data *model.CartItemModel) *entity.CartItem {
	return &entity.CartItem{
		ID:        data.ID,
		CartID:    data.CartID,
		VariantID: data.VariantID,
		Qty:       data.Qty,
		Variant:   toVariantDomain(data.Variant, true),
	}
}
