package impl

import (
	"context"
	"testing"

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

type paymentServiceFixtures struct {
	service          usecase.PaymentUsecase
	txManager        *mockRepo.MockTransactionManager
	factory          *mockRepo.MockRepositoryFactory
	orderRepo        *mockRepo.MockOrderRepository
	txOrderRepo      *mockRepo.MockOrderRepository
	paymentEventRepo *mockRepo.MockPaymentEventRepository
	gateway          *mockSvc.MockPaymentGateway
	publisher        *mockSvc.MockEventPublisher
}

func createTestPaymentService(t *testing.T) paymentServiceFixtures {
	fixtures := paymentServiceFixtures{
		txManager:        mockRepo.NewMockTransactionManager(t),
		factory:          mockRepo.NewMockRepositoryFactory(t),
		orderRepo:        mockRepo.NewMockOrderRepository(t),
		txOrderRepo:      mockRepo.NewMockOrderRepository(t),
		paymentEventRepo: mockRepo.NewMockPaymentEventRepository(t),
		gateway:          mockSvc.NewMockPaymentGateway(t),
		publisher:        mockSvc.NewMockEventPublisher(t),
	}

	fixtures.service = NewPaymentService(PaymentServiceParams{
		TxManager: fixtures.txManager,
		OrderRepo: fixtures.orderRepo,
		Gateway:   fixtures.gateway,
		Publisher: fixtures.publisher,
		Logger:    newDiscardLogger(),
	})

	return fixtures
}

func TestPaymentService_CreatePaymentIntent_Success(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	userID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: userID, TotalCents: 2580}

	fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.gateway.EXPECT().
		CreatePaymentIntent(ctx, &service.PaymentIntentInput{
			AmountCents: 2580,
			Currency:    "eur",
			Metadata:    map[string]string{"orderId": order.ID.String(), "userId": userID.String()},
		}).
		Return(&service.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil)
	fx.orderRepo.EXPECT().SetPaymentIntent(ctx, order.ID, "pi_123").Return(nil)

	out, err := fx.service.CreatePaymentIntent(ctx, &usecase.CreatePaymentIntentInput{
		UserID:   userID,
		OrderID:  order.ID.String(),
		Amount:   2580,
		Currency: "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret", out.ClientSecret)
	assert.Equal(t, "pi_123", out.PaymentIntentID)
}

func TestPaymentService_CreatePaymentIntent_Rejections(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	order := &entity.Order{ID: uuid.New(), UserID: userID, TotalCents: 2580}

	t.Run("non positive amount", func(t *testing.T) {
		fx := createTestPaymentService(t)
		_, err := fx.service.CreatePaymentIntent(ctx, &usecase.CreatePaymentIntentInput{UserID: userID, OrderID: order.ID.String()})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
	})

	t.Run("missing order id", func(t *testing.T) {
		fx := createTestPaymentService(t)
		_, err := fx.service.CreatePaymentIntent(ctx, &usecase.CreatePaymentIntentInput{UserID: userID, Amount: 100})
		assert.ErrorIs(t, err, domainerrors.ErrOrderIDRequired)
	})

	t.Run("foreign currency", func(t *testing.T) {
		fx := createTestPaymentService(t)
		_, err := fx.service.CreatePaymentIntent(ctx, &usecase.CreatePaymentIntentInput{
			UserID: userID, OrderID: order.ID.String(), Amount: 2580, Currency: "usd",
		})
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("amount differs from order total", func(t *testing.T) {
		fx := createTestPaymentService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

		_, err := fx.service.CreatePaymentIntent(ctx, &usecase.CreatePaymentIntentInput{
			UserID: userID, OrderID: order.ID.String(), Amount: 100,
		})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidAmount)
	})

	t.Run("order of another user", func(t *testing.T) {
		fx := createTestPaymentService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

		_, err := fx.service.CreatePaymentIntent(ctx, &usecase.CreatePaymentIntentInput{
			UserID: uuid.New(), OrderID: order.ID.String(), Amount: 2580,
		})
		assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	})

	t.Run("processor failure", func(t *testing.T) {
		fx := createTestPaymentService(t)
		fx.orderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
		fx.gateway.EXPECT().CreatePaymentIntent(ctx, mock.Anything).Return(nil, domainerrors.ErrPaymentFailed)

		_, err := fx.service.CreatePaymentIntent(ctx, &usecase.CreatePaymentIntentInput{
			UserID: userID, OrderID: order.ID.String(), Amount: 2580,
		})
		assert.ErrorIs(t, err, domainerrors.ErrPaymentFailed)
	})
}

func newWebhookEvent(eventType string, orderID uuid.UUID) *service.PaymentWebhookEvent {
	return &service.PaymentWebhookEvent{
		ID:              "evt_" + uuid.NewString()[:8],
		Type:            eventType,
		PaymentIntentID: "pi_123",
		Metadata:        map[string]string{"orderId": orderID.String()},
	}
}

func (f paymentServiceFixtures) expectWebhookTx() {
	expectTx(f.txManager, f.factory)
	f.factory.EXPECT().PaymentEventRepo().Return(f.paymentEventRepo)
	f.factory.EXPECT().OrderRepo().Return(f.txOrderRepo).Maybe()
}

func TestPaymentService_HandleWebhook_SucceededConfirmsPendingOrder(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	order := &entity.Order{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
	}
	event := newWebhookEvent(EventPaymentIntentSucceeded, order.ID)
	confirmed := entity.OrderStatusConfirmed

	fx.gateway.EXPECT().ParseWebhook([]byte("{}"), "sig").Return(event, nil)
	fx.expectWebhookTx()
	fx.paymentEventRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(pe *entity.PaymentEvent) bool {
			return pe.ID == event.ID && pe.OrderID != nil && *pe.OrderID == order.ID
		})).
		Return(nil)
	fx.txOrderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.txOrderRepo.EXPECT().
		UpdatePayment(ctx, order.ID, repository.OrderPaymentUpdate{
			ExpectedStatus:  entity.OrderStatusPending,
			Status:          &confirmed,
			PaymentStatus:   entity.PaymentStatusPaid,
			PaymentIntentID: "pi_123",
		}).
		Return(nil)
	fx.publisher.EXPECT().
		PublishShopEvent(ctx, mock.MatchedBy(func(e *service.ShopEvent) bool {
			return e.Type == service.ShopEventOrderStatusChanged && e.Status == "CONFIRMED"
		})).
		Return(nil)

	require.NoError(t, fx.service.HandleWebhook(ctx, []byte("{}"), "sig"))
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)
	assert.Equal(t, entity.PaymentStatusPaid, order.PaymentStatus)
}

func TestPaymentService_HandleWebhook_FailedCancelsWithoutNotification(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	order := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusPending}
	event := newWebhookEvent(EventPaymentIntentFailed, order.ID)
	cancelled := entity.OrderStatusCancelled

	fx.gateway.EXPECT().ParseWebhook(mock.Anything, mock.Anything).Return(event, nil)
	fx.expectWebhookTx()
	fx.paymentEventRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.txOrderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.txOrderRepo.EXPECT().
		UpdatePayment(ctx, order.ID, repository.OrderPaymentUpdate{
			ExpectedStatus:  entity.OrderStatusPending,
			Status:          &cancelled,
			PaymentStatus:   entity.PaymentStatusFailed,
			PaymentIntentID: "pi_123",
		}).
		Return(nil)

	require.NoError(t, fx.service.HandleWebhook(ctx, []byte("{}"), "sig"))
	fx.publisher.AssertNotCalled(t, "PublishShopEvent", mock.Anything, mock.Anything)
}

func TestPaymentService_HandleWebhook_ShippedOrderKeepsStatus(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	order := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusShipped}
	event := newWebhookEvent(EventPaymentIntentSucceeded, order.ID)

	fx.gateway.EXPECT().ParseWebhook(mock.Anything, mock.Anything).Return(event, nil)
	fx.expectWebhookTx()
	fx.paymentEventRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.txOrderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.txOrderRepo.EXPECT().
		UpdatePayment(ctx, order.ID, repository.OrderPaymentUpdate{
			ExpectedStatus:  entity.OrderStatusShipped,
			PaymentStatus:   entity.PaymentStatusPaid,
			PaymentIntentID: "pi_123",
		}).
		Return(nil)

	require.NoError(t, fx.service.HandleWebhook(ctx, []byte("{}"), "sig"))
	assert.Equal(t, entity.OrderStatusShipped, order.Status)
}

func TestPaymentService_HandleWebhook_LateFailureKeepsPaidOrder(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	order := &entity.Order{
		ID:              uuid.New(),
		Status:          entity.OrderStatusConfirmed,
		PaymentStatus:   entity.PaymentStatusPaid,
		PaymentIntentID: "pi_paid",
	}
	event := newWebhookEvent(EventPaymentIntentFailed, order.ID)

	fx.gateway.EXPECT().ParseWebhook(mock.Anything, mock.Anything).Return(event, nil)
	fx.expectWebhookTx()
	fx.paymentEventRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.txOrderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)

	require.NoError(t, fx.service.HandleWebhook(ctx, []byte("{}"), "sig"))
	assert.Equal(t, entity.OrderStatusConfirmed, order.Status)
	assert.Equal(t, entity.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "pi_paid", order.PaymentIntentID)
	fx.txOrderRepo.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "PublishShopEvent", mock.Anything, mock.Anything)
}

func TestPaymentService_HandleWebhook_ConcurrentStatusChangeIsRetried(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	order := &entity.Order{ID: uuid.New(), Status: entity.OrderStatusPending}
	event := newWebhookEvent(EventPaymentIntentSucceeded, order.ID)

	fx.gateway.EXPECT().ParseWebhook(mock.Anything, mock.Anything).Return(event, nil)
	fx.expectWebhookTx()
	fx.paymentEventRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.txOrderRepo.EXPECT().FindByID(ctx, order.ID).Return(order, nil)
	fx.txOrderRepo.EXPECT().
		UpdatePayment(ctx, order.ID, mock.MatchedBy(func(u repository.OrderPaymentUpdate) bool {
			return u.ExpectedStatus == entity.OrderStatusPending
		})).
		Return(repository.ErrOrderStatusChanged)

	err := fx.service.HandleWebhook(ctx, []byte("{}"), "sig")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrOrderStatusChanged)
	fx.publisher.AssertNotCalled(t, "PublishShopEvent", mock.Anything, mock.Anything)
}

func TestPaymentService_HandleWebhook_ReplayIsAcknowledged(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	event := newWebhookEvent(EventPaymentIntentSucceeded, uuid.New())

	fx.gateway.EXPECT().ParseWebhook(mock.Anything, mock.Anything).Return(event, nil)
	fx.expectWebhookTx()
	fx.paymentEventRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrDuplicatePaymentEvent)

	require.NoError(t, fx.service.HandleWebhook(ctx, []byte("{}"), "sig"))
	fx.txOrderRepo.AssertNotCalled(t, "UpdatePayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_HandleWebhook_UnknownOrderIsAcknowledged(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	orderID := uuid.New()
	event := newWebhookEvent(EventPaymentIntentSucceeded, orderID)

	fx.gateway.EXPECT().ParseWebhook(mock.Anything, mock.Anything).Return(event, nil)
	fx.expectWebhookTx()
	fx.paymentEventRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.txOrderRepo.EXPECT().FindByID(ctx, orderID).Return(nil, repository.ErrOrderNotFound)

	require.NoError(t, fx.service.HandleWebhook(ctx, []byte("{}"), "sig"))
}

func TestPaymentService_HandleWebhook_DatabaseFailureIsReported(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	event := newWebhookEvent(EventPaymentIntentSucceeded, uuid.New())

	fx.gateway.EXPECT().ParseWebhook(mock.Anything, mock.Anything).Return(event, nil)
	fx.expectWebhookTx()
	fx.paymentEventRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.New("connection refused"))

	err := fx.service.HandleWebhook(ctx, []byte("{}"), "sig")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestPaymentService_HandleWebhook_IgnoresOtherEvents(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()

	fx.gateway.EXPECT().ParseWebhook(mock.Anything, mock.Anything).
		Return(&service.PaymentWebhookEvent{ID: "evt_1", Type: "charge.refunded"}, nil)

	require.NoError(t, fx.service.HandleWebhook(ctx, []byte("{}"), "sig"))
}

func TestPaymentService_HandleWebhook_MissingOrderMetadata(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()

	fx.gateway.EXPECT().ParseWebhook(mock.Anything, mock.Anything).
		Return(&service.PaymentWebhookEvent{ID: "evt_1", Type: EventPaymentIntentSucceeded}, nil)

	require.NoError(t, fx.service.HandleWebhook(ctx, []byte("{}"), "sig"))
}

func TestPaymentService_HandleWebhook_InvalidSignature(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()

	fx.gateway.EXPECT().ParseWebhook(mock.Anything, "bad").Return(nil, domainerrors.ErrInvalidSignature)

	err := fx.service.HandleWebhook(ctx, []byte("{}"), "bad")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidSignature)
}
