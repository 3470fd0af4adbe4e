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
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cartServiceFixtures holds all test dependencies for cart service tests.
type cartServiceFixtures struct {
	service     usecase.CartUsecase
	cartRepo    *mockRepo.MockCartRepository
	variantRepo *mockRepo.MockVariantRepository
}

func createTestCartService(t *testing.T) cartServiceFixtures {
	cartRepo := mockRepo.NewMockCartRepository(t)
	variantRepo := mockRepo.NewMockVariantRepository(t)

	service := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		VariantRepo: variantRepo,
		Logger:      newDiscardLogger(),
	})

	return cartServiceFixtures{
		service:     service,
		cartRepo:    cartRepo,
		variantRepo: variantRepo,
	}
}

func TestCartService_GetCart_WithoutCookie(t *testing.T) {
	fx := createTestCartService(t)

	view, err := fx.service.GetCart(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.NotNil(t, view.Items)
	assert.Zero(t, view.Total)
	assert.Zero(t, view.ItemCount)
}

func TestCartService_GetCart_StaleCookie(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	cartID := uuid.New()

	fx.cartRepo.EXPECT().FindByID(ctx, cartID).Return(nil, repository.ErrCartNotFound)

	view, err := fx.service.GetCart(ctx, &cartID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestCartService_GetCart_Totals(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	cartID := uuid.New()

	small := newTestVariant(1290, 10)
	large := newTestVariant(3990, 10)
	cart := &entity.Cart{
		ID: cartID,
		Items: []*entity.CartItem{
			{ID: uuid.New(), CartID: cartID, VariantID: small.ID, Qty: 2, Variant: small},
			{ID: uuid.New(), CartID: cartID, VariantID: large.ID, Qty: 1, Variant: large},
		},
	}

	fx.cartRepo.EXPECT().FindByID(ctx, cartID).Return(cart, nil)

	view, err := fx.service.GetCart(ctx, &cartID)
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, int64(2*1290+3990), view.Total)
	assert.Equal(t, 3, view.ItemCount)
}

func TestCartService_GetCart_RepositoryError(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	cartID := uuid.New()

	fx.cartRepo.EXPECT().FindByID(ctx, cartID).Return(nil, errors.New("connection reset"))

	_, err := fx.service.GetCart(ctx, &cartID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestCartService_AddItem_CreatesCartWithoutCookie(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	variant := newTestVariant(1290, 10)
	newCart := &entity.Cart{ID: uuid.New()}
	item := &entity.CartItem{ID: uuid.New(), CartID: newCart.ID, VariantID: variant.ID, Qty: 1}

	fx.variantRepo.EXPECT().FindByID(ctx, variant.ID).Return(variant, nil)
	fx.cartRepo.EXPECT().Create(ctx).Return(newCart, nil)
	fx.cartRepo.EXPECT().AddItem(ctx, newCart.ID, variant.ID, 1).Return(item, nil)

	// Zero quantity defaults to one.
	out, err := fx.service.AddItem(ctx, nil, &usecase.AddCartItemInput{VariantID: variant.ID})
	require.NoError(t, err)
	assert.Equal(t, newCart.ID, out.CartID)
	assert.Equal(t, item, out.Item)
}

func TestCartService_AddItem_ExistingCart(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	cartID := uuid.New()
	variant := newTestVariant(1290, 10)
	item := &entity.CartItem{ID: uuid.New(), CartID: cartID, VariantID: variant.ID, Qty: 5}

	fx.variantRepo.EXPECT().FindByID(ctx, variant.ID).Return(variant, nil)
	fx.cartRepo.EXPECT().AddItem(ctx, cartID, variant.ID, 3).Return(item, nil)

	out, err := fx.service.AddItem(ctx, &cartID, &usecase.AddCartItemInput{VariantID: variant.ID, Qty: 3})
	require.NoError(t, err)
	assert.Equal(t, cartID, out.CartID)
	assert.Equal(t, 5, out.Item.Qty)
}

func TestCartService_AddItem_StaleCookieCreatesNewCart(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	staleID := uuid.New()
	variant := newTestVariant(1290, 10)
	newCart := &entity.Cart{ID: uuid.New()}
	item := &entity.CartItem{ID: uuid.New(), CartID: newCart.ID, VariantID: variant.ID, Qty: 2}

	fx.variantRepo.EXPECT().FindByID(ctx, variant.ID).Return(variant, nil)
	fx.cartRepo.EXPECT().AddItem(ctx, staleID, variant.ID, 2).Return(nil, repository.ErrCartNotFound)
	fx.cartRepo.EXPECT().Create(ctx).Return(newCart, nil)
	fx.cartRepo.EXPECT().AddItem(ctx, newCart.ID, variant.ID, 2).Return(item, nil)

	out, err := fx.service.AddItem(ctx, &staleID, &usecase.AddCartItemInput{VariantID: variant.ID, Qty: 2})
	require.NoError(t, err)
	assert.Equal(t, newCart.ID, out.CartID)
}

func TestCartService_AddItem_UnknownVariant(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	variantID := uuid.New()

	fx.variantRepo.EXPECT().FindByID(ctx, variantID).Return(nil, repository.ErrVariantNotFound)

	_, err := fx.service.AddItem(ctx, nil, &usecase.AddCartItemInput{VariantID: variantID, Qty: 1})
	assert.ErrorIs(t, err, domainerrors.ErrVariantNotFound)
}

func TestCartService_AddItem_NegativeQuantity(t *testing.T) {
	fx := createTestCartService(t)

	_, err := fx.service.AddItem(context.Background(), nil, &usecase.AddCartItemInput{VariantID: uuid.New(), Qty: -1})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
}

func TestCartService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	cartID := uuid.New()
	itemID := uuid.New()

	t.Run("sets quantity", func(t *testing.T) {
		fx := createTestCartService(t)
		fx.cartRepo.EXPECT().UpdateItemQty(ctx, cartID, itemID, 4).Return(nil)

		require.NoError(t, fx.service.UpdateItem(ctx, &cartID, itemID, 4))
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		fx := createTestCartService(t)

		err := fx.service.UpdateItem(ctx, &cartID, itemID, 0)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidQuantity)
	})

	t.Run("item of another cart", func(t *testing.T) {
		fx := createTestCartService(t)
		fx.cartRepo.EXPECT().UpdateItemQty(ctx, cartID, itemID, 2).Return(repository.ErrCartItemNotFound)

		err := fx.service.UpdateItem(ctx, &cartID, itemID, 2)
		assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
	})

	t.Run("no cart cookie", func(t *testing.T) {
		fx := createTestCartService(t)

		err := fx.service.UpdateItem(ctx, nil, itemID, 2)
		assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	cartID := uuid.New()
	itemID := uuid.New()

	fx := createTestCartService(t)
	fx.cartRepo.EXPECT().RemoveItem(ctx, cartID, itemID).Return(nil).Once()
	require.NoError(t, fx.service.RemoveItem(ctx, &cartID, itemID))

	fx.cartRepo.EXPECT().RemoveItem(ctx, cartID, itemID).Return(repository.ErrCartItemNotFound).Once()
	assert.ErrorIs(t, fx.service.RemoveItem(ctx, &cartID, itemID), domainerrors.ErrCartItemNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	ctx := context.Background()
	cartID := uuid.New()

	fx := createTestCartService(t)
	require.NoError(t, fx.service.ClearCart(ctx, nil))

	fx.cartRepo.EXPECT().Delete(ctx, cartID).Return(nil)
	require.NoError(t, fx.service.ClearCart(ctx, &cartID))
}
