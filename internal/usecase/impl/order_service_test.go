package impl

import (
	"context"
	"testing"
	"time"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/domain/service"
	mockRepo "morgenstar/internal/mocks/repository"
	mockSvc "morgenstar/internal/mocks/service"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service     usecase.OrderUsecase
	txManager   *mockRepo.MockTransactionManager
	factory     *mockRepo.MockRepositoryFactory
	orderRepo   *mockRepo.MockOrderRepository
	cartRepo    *mockRepo.MockCartRepository
	txOrderRepo *mockRepo.MockOrderRepository
	variantRepo *mockRepo.MockVariantRepository
	couponRepo  *mockRepo.MockCouponRepository
	publisher   *mockSvc.MockEventPublisher
	qrCode      *mockSvc.MockQRCodeService
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	fixtures := orderServiceFixtures{
		txManager:   mockRepo.NewMockTransactionManager(t),
		factory:     mockRepo.NewMockRepositoryFactory(t),
		orderRepo:   mockRepo.NewMockOrderRepository(t),
		cartRepo:    mockRepo.NewMockCartRepository(t),
		txOrderRepo: mockRepo.NewMockOrderRepository(t),
		variantRepo: mockRepo.NewMockVariantRepository(t),
		couponRepo:  mockRepo.NewMockCouponRepository(t),
		publisher:   mockSvc.NewMockEventPublisher(t),
		qrCode:      mockSvc.NewMockQRCodeService(t),
	}

	svc := NewOrderService(OrderServiceParams{
		TxManager: fixtures.txManager,
		OrderRepo: fixtures.orderRepo,
		CartRepo:  fixtures.cartRepo,
		Publisher: fixtures.publisher,
		QRCode:    fixtures.qrCode,
		Logger:    newDiscardLogger(),
	})
	svc.(*orderService).now = func() time.Time { return fixedNow }
	fixtures.service = svc

	return fixtures
}

// expectCheckoutTx wires the transactional repositories used by a checkout.
func (f orderServiceFixtures) expectCheckoutTx() {
	expectTx(f.txManager, f.factory)
	f.factory.EXPECT().VariantRepo().Return(f.variantRepo).Maybe()
	f.factory.EXPECT().CouponRepo().Return(f.couponRepo).Maybe()
	f.factory.EXPECT().OrderRepo().Return(f.txOrderRepo).Maybe()
}

func newPlaceOrderInput(lines ...usecase.OrderLineInput) *usecase.PlaceOrderInput {
	return &usecase.PlaceOrderInput{
		UserID:          uuid.New(),
		Items:           lines,
		ShippingAddress: newTestAddress(),
		BillingAddress:  newTestAddress(),
		PaymentMethod:   " Card ",
	}
}

func TestOrderService_PlaceOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	small := newTestVariant(1290, 10)
	large := newTestVariant(3990, 3)
	cartID := uuid.New()
	input := newPlaceOrderInput(
		usecase.OrderLineInput{VariantID: small.ID, Qty: 2},
		usecase.OrderLineInput{VariantID: large.ID, Qty: 1},
	)
	input.CartID = &cartID

	fx.expectCheckoutTx()
	fx.variantRepo.EXPECT().
		FindByIDs(ctx, []uuid.UUID{small.ID, large.ID}).
		Return([]*entity.ProductVariant{large, small}, nil)

	var created *entity.Order
	fx.txOrderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Run(func(_ context.Context, order *entity.Order) {
			order.ID = uuid.New()
			created = order
		}).
		Return(nil)
	fx.variantRepo.EXPECT().DecrementStock(ctx, small.ID, 2).Return(nil)
	fx.variantRepo.EXPECT().DecrementStock(ctx, large.ID, 1).Return(nil)

	fx.cartRepo.EXPECT().Delete(ctx, cartID).Return(nil)
	fx.orderRepo.EXPECT().
		FindByID(ctx, mock.AnythingOfType("uuid.UUID")).
		RunAndReturn(func(_ context.Context, id uuid.UUID) (*entity.Order, error) {
			loaded := *created
			loaded.User = &entity.User{ID: input.UserID, Email: "erika@example.de", Name: "Erika"}

			return &loaded, nil
		})
	fx.publisher.EXPECT().
		PublishShopEvent(ctx, mock.MatchedBy(func(event *service.ShopEvent) bool {
			return event.Type == service.ShopEventOrderCreated &&
				event.Email == "erika@example.de" &&
				event.OrderID == created.ID.String()
		})).
		Return(nil)

	out, err := fx.service.PlaceOrder(ctx, input)
	require.NoError(t, err)

	order := out.Order
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, entity.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "card", order.PaymentMethod)
	assert.Equal(t, "EUR", order.Currency)
	assert.Equal(t, int64(2*1290+3990), order.SubtotalCents)
	assert.Zero(t, order.DiscountCents)
	assert.Equal(t, order.SubtotalCents, order.TotalCents)
	require.Len(t, order.Items, 2)
	assert.Equal(t, small.ID, order.Items[0].VariantID)
	assert.Equal(t, int64(1290), order.Items[0].PriceCents)
	assert.Equal(t, "Äthiopien Yirgacheffe", order.Items[0].ProductTitle)
	assert.Equal(t, "250g", order.Items[0].VariantName)
}

func TestOrderService_PlaceOrder_WithCoupon(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	variant := newTestVariant(5000, 10)
	input := newPlaceOrderInput(usecase.OrderLineInput{VariantID: variant.ID, Qty: 2})
	input.CouponCode = " welcome10 "
	coupon := &entity.Coupon{
		ID:        uuid.New(),
		Code:      "WELCOME10",
		Type:      entity.CouponTypePercentage,
		Value:     10,
		ValidFrom: fixedNow.Add(-time.Hour),
		IsActive:  true,
	}

	fx.expectCheckoutTx()
	fx.variantRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{variant.ID}).Return([]*entity.ProductVariant{variant}, nil)
	fx.couponRepo.EXPECT().FindByCode(ctx, "WELCOME10").Return(coupon, nil)
	fx.couponRepo.EXPECT().Redeem(ctx, coupon.ID).Return(nil)
	fx.txOrderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.variantRepo.EXPECT().DecrementStock(ctx, variant.ID, 2).Return(nil)
	fx.orderRepo.EXPECT().FindByID(ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, repository.ErrOrderNotFound)
	fx.publisher.EXPECT().PublishShopEvent(ctx, mock.Anything).Return(errors.New("broker down"))

	out, err := fx.service.PlaceOrder(ctx, input)
	require.NoError(t, err, "publishing failures must not fail checkout")
	assert.Equal(t, int64(10000), out.Order.SubtotalCents)
	assert.Equal(t, int64(1000), out.Order.DiscountCents)
	assert.Equal(t, int64(9000), out.Order.TotalCents)
	assert.Equal(t, "WELCOME10", out.Order.CouponCode)
}

func TestOrderService_PlaceOrder_MergesDuplicateLines(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	variant := newTestVariant(1000, 10)
	input := newPlaceOrderInput(
		usecase.OrderLineInput{VariantID: variant.ID, Qty: 1},
		usecase.OrderLineInput{VariantID: variant.ID, Qty: 2},
	)

	fx.expectCheckoutTx()
	fx.variantRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{variant.ID}).Return([]*entity.ProductVariant{variant}, nil)
	fx.txOrderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.variantRepo.EXPECT().DecrementStock(ctx, variant.ID, 3).Return(nil)
	fx.orderRepo.EXPECT().FindByID(ctx, mock.AnythingOfType("uuid.UUID")).Return(nil, repository.ErrOrderNotFound)
	fx.publisher.EXPECT().PublishShopEvent(ctx, mock.Anything).Return(nil)

	out, err := fx.service.PlaceOrder(ctx, input)
	require.NoError(t, err)
	require.Len(t, out.Order.Items, 1)
	assert.Equal(t, 3, out.Order.Items[0].Qty)
	assert.Equal(t, int64(3000), out.Order.TotalCents)
}

func TestOrderService_PlaceOrder_InsufficientStock(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	variant := newTestVariant(1290, 1)
	input := newPlaceOrderInput(usecase.OrderLineInput{VariantID: variant.ID, Qty: 2})

	fx.expectCheckoutTx()
	fx.variantRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{variant.ID}).Return([]*entity.ProductVariant{variant}, nil)
	fx.txOrderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	fx.variantRepo.EXPECT().DecrementStock(ctx, variant.ID, 2).Return(repository.ErrInsufficientStock)

	_, err := fx.service.PlaceOrder(ctx, input)
	require.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	appErr, ok := errors.Cause(err).(domainerrors.AppError)
	require.True(t, ok)
	assert.Equal(t, "ETH-250", appErr.Details())
}

func TestOrderService_PlaceOrder_UnknownVariant(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	variantID := uuid.New()
	input := newPlaceOrderInput(usecase.OrderLineInput{VariantID: variantID, Qty: 1})

	fx.expectCheckoutTx()
	fx.variantRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{variantID}).Return([]*entity.ProductVariant{}, nil)

	_, err := fx.service.PlaceOrder(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrVariantNotFound)
}

func TestOrderService_PlaceOrder_CouponMinimumNotReached(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	variant := newTestVariant(1000, 10)
	input := newPlaceOrderInput(usecase.OrderLineInput{VariantID: variant.ID, Qty: 1})
	input.CouponCode = "BIG"
	minimum := int64(5000)
	coupon := &entity.Coupon{
		ID:            uuid.New(),
		Code:          "BIG",
		Type:          entity.CouponTypeFixed,
		Value:         500,
		MinOrderValue: &minimum,
		ValidFrom:     fixedNow.Add(-time.Hour),
		IsActive:      true,
	}

	fx.expectCheckoutTx()
	fx.variantRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{variant.ID}).Return([]*entity.ProductVariant{variant}, nil)
	fx.couponRepo.EXPECT().FindByCode(ctx, "BIG").Return(coupon, nil)

	_, err := fx.service.PlaceOrder(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrCouponMinOrderValue)
}

func TestOrderService_PlaceOrder_UnexpectedFailure(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	variant := newTestVariant(1000, 10)
	input := newPlaceOrderInput(usecase.OrderLineInput{VariantID: variant.ID, Qty: 1})

	fx.expectCheckoutTx()
	fx.variantRepo.EXPECT().FindByIDs(ctx, []uuid.UUID{variant.ID}).Return(nil, errors.New("deadlock detected"))

	_, err := fx.service.PlaceOrder(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrOrderCreationFailed)
}

func TestOrderService_PlaceOrder_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*usecase.PlaceOrderInput)
		wantErr error
	}{
		{
			name:    "empty cart",
			mutate:  func(in *usecase.PlaceOrderInput) { in.Items = nil },
			wantErr: domainerrors.ErrEmptyCart,
		},
		{
			name:    "missing shipping address",
			mutate:  func(in *usecase.PlaceOrderInput) { in.ShippingAddress = nil },
			wantErr: domainerrors.ErrAddressMissing,
		},
		{
			name:    "missing billing address",
			mutate:  func(in *usecase.PlaceOrderInput) { in.BillingAddress = nil },
			wantErr: domainerrors.ErrAddressMissing,
		},
		{
			name:    "zero quantity",
			mutate:  func(in *usecase.PlaceOrderInput) { in.Items[0].Qty = 0 },
			wantErr: domainerrors.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestOrderService(t)
			input := newPlaceOrderInput(usecase.OrderLineInput{VariantID: uuid.New(), Qty: 1})
			tt.mutate(input)

			_, err := fx.service.PlaceOrder(context.Background(), input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOrderService_GetOrder(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: userID, Status: entity.OrderStatusPending}

	t.Run("owner", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

		got, err := fx.service.GetOrder(ctx, userID, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order, got)
	})

	t.Run("other user sees not found", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

		_, err := fx.service.GetOrder(ctx, uuid.New(), order.ID)
		assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		fx := createTestOrderService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(nil, repository.ErrOrderNotFound)

		_, err := fx.service.GetOrder(ctx, userID, order.ID)
		assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	})
}

func TestOrderService_ListOrders(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	orders := []*entity.Order{{ID: uuid.New(), UserID: userID}}

	fx.orderRepo.EXPECT().ListByUser(ctx, userID).Return(orders, nil)

	got, err := fx.service.ListOrders(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, orders, got)
}

func TestOrderService_OrderQRCode(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	userID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: userID}
	png := []byte{0x89, 'P', 'N', 'G'}

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.qrCode.EXPECT().GenerateOrderQR(order.ID).Return(png, nil)

	got, err := fx.service.OrderQRCode(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, png, got)
}
