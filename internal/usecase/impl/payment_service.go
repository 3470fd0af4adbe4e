package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/constants"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Processor event types the shop reacts to.
const (
	EventPaymentIntentSucceeded = "payment_intent.succeeded"
	EventPaymentIntentFailed    = "payment_intent.payment_failed"
)

var (
	errWebhookReplayed = errors.New("payment event already processed")
	errWebhookNoOrder  = errors.New("payment event references unknown order")
)

type paymentService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	gateway   service.PaymentGateway
	publisher service.EventPublisher
	logger    *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Gateway   service.PaymentGateway
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewPaymentService creates the payment service
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	return &paymentService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		gateway:   params.Gateway,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreatePaymentIntent registers the payment of one of the user's orders.
func (srv *paymentService) CreatePaymentIntent(ctx context.Context, input *usecase.CreatePaymentIntentInput) (*usecase.CreatePaymentIntentOutput, error) {
	if input.Amount <= 0 {
		return nil, errors.WithStack(domainerrors.ErrInvalidAmount)
	}
	if strings.TrimSpace(input.OrderID) == "" {
		return nil, errors.WithStack(domainerrors.ErrOrderIDRequired)
	}

	currency := strings.ToLower(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = strings.ToLower(constants.CurrencyEUR)
	}
	if currency != strings.ToLower(constants.CurrencyEUR) {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("only EUR payments are supported"))
	}

	orderID, err := uuid.Parse(strings.TrimSpace(input.OrderID))
	if err != nil {
		return nil, domainerrors.ErrOrderNotFound.WrapMessage("malformed order id")
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to load order")
	}
	if order.UserID != input.UserID {
		return nil, domainerrors.ErrOrderNotFound.WrapMessage("order belongs to another user")
	}
	if order.TotalCents != input.Amount {
		return nil, errors.WithStack(domainerrors.ErrInvalidAmount.WithDetails("amount does not match the order total"))
	}

	intent, err := srv.gateway.CreatePaymentIntent(ctx, &service.PaymentIntentInput{
		AmountCents: order.TotalCents,
		Currency:    currency,
		Metadata: map[string]string{
			"orderId": order.ID.String(),
			"userId":  input.UserID.String(),
		},
	})
	if err != nil {
		srv.log(ctx).Error("Payment intent creation failed", slog.String("order_id", orderID.String()), slog.Any("error", err))

		return nil, err
	}

	if err := srv.orderRepo.SetPaymentIntent(ctx, order.ID, intent.ID); err != nil {
		return nil, errors.Wrap(err, "failed to store payment intent on order")
	}

	srv.log(ctx).Info("Payment intent created",
		slog.String("order_id", orderID.String()),
		slog.String("payment_intent_id", intent.ID),
	)

	return &usecase.CreatePaymentIntentOutput{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// HandleWebhook verifies the delivery and applies payment results exactly once.
func (srv *paymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := srv.gateway.ParseWebhook(payload, signatureHeader)
	if err != nil {
		srv.log(ctx).Warn("Rejected payment webhook", slog.Any("error", err))

		return err
	}

	logger := srv.log(ctx).With(slog.String("event_id", event.ID), slog.String("event_type", event.Type))

	switch event.Type {
	case EventPaymentIntentSucceeded, EventPaymentIntentFailed:
		return srv.applyPaymentResult(ctx, logger, event)
	default:
		logger.Info("Unhandled payment event type")

		return nil
	}
}

func (srv *paymentService) applyPaymentResult(ctx context.Context, logger *slog.Logger, event *service.PaymentWebhookEvent) error {
	rawOrderID := event.Metadata["orderId"]
	if rawOrderID == "" {
		logger.Warn("Payment event without orderId metadata", slog.String("payment_intent_id", event.PaymentIntentID))

		return nil
	}

	orderID, err := uuid.Parse(rawOrderID)
	if err != nil {
		logger.Warn("Payment event with malformed orderId", slog.String("order_id", rawOrderID))

		return nil
	}

	succeeded := event.Type == EventPaymentIntentSucceeded

	var (
		order       *entity.Order
		changed     bool
		lateFailure bool
	)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		// The event row shares the transaction with the order update, so a replay
		// fails here and nothing is applied twice.
		if txErr := repoFactory.PaymentEventRepo().Create(ctx, &entity.PaymentEvent{
			ID:      event.ID,
			Type:    event.Type,
			OrderID: &orderID,
		}); txErr != nil {
			if errors.Is(txErr, repository.ErrDuplicatePaymentEvent) {
				return errWebhookReplayed
			}

			return errors.Wrap(txErr, "failed to record payment event")
		}

		orderRepo := repoFactory.OrderRepo()
		loaded, txErr := orderRepo.FindByID(ctx, orderID)
		if txErr != nil {
			if errors.Is(txErr, repository.ErrOrderNotFound) {
				return errWebhookNoOrder
			}

			return errors.Wrap(txErr, "failed to load order for payment event")
		}

		if !succeeded && loaded.PaymentStatus == entity.PaymentStatusPaid {
			// A failure that arrives after the success must not undo the payment.
			order = loaded
			lateFailure = true

			return nil
		}

		update := paymentUpdateFor(loaded, succeeded, event.PaymentIntentID)
		if txErr := orderRepo.UpdatePayment(ctx, orderID, update); txErr != nil {
			return errors.Wrap(txErr, "failed to apply payment result")
		}

		if update.Status != nil {
			loaded.Status = *update.Status
			changed = true
		}
		loaded.PaymentStatus = update.PaymentStatus
		if update.PaymentIntentID != "" {
			loaded.PaymentIntentID = update.PaymentIntentID
		}
		order = loaded

		return nil
	})

	switch {
	case errors.Is(err, errWebhookReplayed):
		logger.Info("Payment event replayed, ignoring")

		return nil
	case errors.Is(err, errWebhookNoOrder):
		logger.Warn("Payment event for unknown order", slog.String("order_id", orderID.String()))

		return nil
	case err != nil:
		return errors.Wrap(err, "failed to process payment event")
	}

	if lateFailure {
		logger.Warn("Late payment failure for paid order, keeping payment",
			slog.String("order_id", orderID.String()),
			slog.String("status", string(order.Status)),
		)

		return nil
	}

	logger.Info("Payment result applied",
		slog.String("order_id", orderID.String()),
		slog.String("status", string(order.Status)),
		slog.String("payment_status", string(order.PaymentStatus)),
	)

	if succeeded && changed {
		publishShopEvent(ctx, srv.publisher, logger, newOrderEvent(ctx, service.ShopEventOrderStatusChanged, order))
	}

	return nil
}

// paymentUpdateFor moves a pending order to CONFIRMED or CANCELLED. Orders past PENDING
// keep their status and only record the payment state. The update only applies while the
// order is still in the status it was loaded with.
func paymentUpdateFor(order *entity.Order, succeeded bool, paymentIntentID string) repository.OrderPaymentUpdate {
	update := repository.OrderPaymentUpdate{
		ExpectedStatus:  order.Status,
		PaymentStatus:   entity.PaymentStatusFailed,
		PaymentIntentID: paymentIntentID,
	}
	target := entity.OrderStatusCancelled
	if succeeded {
		update.PaymentStatus = entity.PaymentStatusPaid
		target = entity.OrderStatusConfirmed
	}

	if order.Status == entity.OrderStatusPending {
		update.Status = &target
	}

	return update
}
