package impl

import (
	"context"
	"testing"

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

type wishlistServiceFixtures struct {
	service      usecase.WishlistUsecase
	wishlistRepo *mockRepo.MockWishlistRepository
	productRepo  *mockRepo.MockProductRepository
}

func createTestWishlistService(t *testing.T) wishlistServiceFixtures {
	wishlistRepo := mockRepo.NewMockWishlistRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)

	return wishlistServiceFixtures{
		service: NewWishlistService(WishlistServiceParams{
			WishlistRepo: wishlistRepo,
			ProductRepo:  productRepo,
			Logger:       newDiscardLogger(),
		}),
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func TestWishlistService_Add(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	product := &entity.Product{ID: uuid.New(), Title: "Guatemala Antigua"}

	t.Run("success returns entry with product", func(t *testing.T) {
		fx := createTestWishlistService(t)
		entry := &entity.WishlistItem{ID: uuid.New(), UserID: userID, ProductID: product.ID, Product: product}

		fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
		fx.wishlistRepo.EXPECT().
			Create(ctx, mock.MatchedBy(func(item *entity.WishlistItem) bool {
				return item.UserID == userID && item.ProductID == product.ID
			})).
			Return(nil)
		fx.wishlistRepo.EXPECT().ListByUser(ctx, userID).Return([]*entity.WishlistItem{entry}, nil)

		got, err := fx.service.Add(ctx, userID, product.ID)
		require.NoError(t, err)
		assert.Equal(t, entry, got)
	})

	t.Run("duplicate", func(t *testing.T) {
		fx := createTestWishlistService(t)
		fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
		fx.wishlistRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrDuplicateWishlistItem)

		_, err := fx.service.Add(ctx, userID, product.ID)
		assert.ErrorIs(t, err, domainerrors.ErrWishlistDuplicate)
	})

	t.Run("unknown product", func(t *testing.T) {
		fx := createTestWishlistService(t)
		fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(nil, repository.ErrProductNotFound)

		_, err := fx.service.Add(ctx, userID, product.ID)
		assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
	})
}

func TestWishlistService_Remove(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	productID := uuid.New()

	fx := createTestWishlistService(t)
	fx.wishlistRepo.EXPECT().Delete(ctx, userID, productID).Return(nil).Once()
	require.NoError(t, fx.service.Remove(ctx, userID, productID))

	fx.wishlistRepo.EXPECT().Delete(ctx, userID, productID).Return(repository.ErrWishlistItemNotFound).Once()
	assert.ErrorIs(t, fx.service.Remove(ctx, userID, productID), domainerrors.ErrWishlistItemNotFound)
}

func TestWishlistService_List(t *testing.T) {
	fx := createTestWishlistService(t)
	ctx := context.Background()
	userID := uuid.New()
	items := []*entity.WishlistItem{{ID: uuid.New(), UserID: userID}}

	fx.wishlistRepo.EXPECT().ListByUser(ctx, userID).Return(items, nil)

	got, err := fx.service.List(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}
