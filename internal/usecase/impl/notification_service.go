package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"
	"morgenstar/internal/usecase"
	"morgenstar/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	// Firebase batch size limit
	firebaseBatchSize = 500
)

type notificationService struct {
	userRepo        repository.UserRepository
	orderRepo       repository.OrderRepository
	deviceRepo      repository.DeviceRepository
	composer        service.MailComposer
	mailer          service.Mailer
	notificationSvc service.NotificationService
	logger          *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	UserRepo        repository.UserRepository
	OrderRepo       repository.OrderRepository
	DeviceRepo      repository.DeviceRepository
	Composer        service.MailComposer
	Mailer          service.Mailer
	NotificationSvc service.NotificationService
	Logger          *slog.Logger
}

// NewNotificationService creates the shop event dispatcher that sends customer mails and pushes.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		userRepo:        params.UserRepo,
		orderRepo:       params.OrderRepo,
		deviceRepo:      params.DeviceRepo,
		composer:        params.Composer,
		mailer:          params.Mailer,
		notificationSvc: params.NotificationSvc,
		logger:          params.Logger,
	}
}

func (s *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// HandleShopEvent delivers the customer side effects of one event. Transient failures
// are returned as retryable errors; malformed events are rejected with a plain error.
func (s *notificationService) HandleShopEvent(ctx context.Context, event *service.ShopEvent) error {
	if event == nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("empty event"))
	}

	logger := s.log(ctx).With(
		slog.String("event_id", event.EventID),
		slog.String("event_type", string(event.Type)),
	)

	switch event.Type {
	case service.ShopEventUserRegistered:
		return s.sendWelcome(ctx, logger, event)
	case service.ShopEventOrderCreated:
		return s.sendOrderConfirmation(ctx, logger, event)
	case service.ShopEventOrderStatusChanged:
		return s.sendStatusUpdate(ctx, logger, event)
	default:
		logger.Warn("Dropping event of unknown type")

		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("unknown event type " + string(event.Type)))
	}
}

// recipient returns the mail address and name of the event's customer, loading the
// account when the event does not carry them.
func (s *notificationService) recipient(ctx context.Context, event *service.ShopEvent) (email, name string, err error) {
	if event.Email != "" {
		return event.Email, event.Name, nil
	}

	userID, err := uuid.Parse(event.UserID)
	if err != nil {
		return "", "", errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("event has neither email nor a valid userId"))
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", "", errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return "", "", usecase.NewRetryableError(errors.Wrap(err, "failed to load event recipient"))
	}

	return user.Email, user.Name, nil
}

func (s *notificationService) deliver(ctx context.Context, logger *slog.Logger, msg *service.MailMessage) error {
	if err := s.mailer.Send(ctx, msg); err != nil {
		logger.Error("Failed to send mail", slog.String("subject", msg.Subject), slog.Any("error", err))

		return usecase.NewRetryableError(errors.Wrap(err, "failed to send mail"))
	}

	logger.Info("Mail sent", slog.String("subject", msg.Subject))

	return nil
}

func (s *notificationService) sendWelcome(ctx context.Context, logger *slog.Logger, event *service.ShopEvent) error {
	email, name, err := s.recipient(ctx, event)
	if err != nil {
		return err
	}

	msg, err := s.composer.Welcome(email, name)
	if err != nil {
		return errors.Wrap(err, "failed to render welcome mail")
	}

	return s.deliver(ctx, logger, msg)
}

func (s *notificationService) sendOrderConfirmation(ctx context.Context, logger *slog.Logger, event *service.ShopEvent) error {
	order := event.Order
	if order == nil {
		loaded, err := s.loadOrder(ctx, event.OrderID)
		if err != nil {
			return err
		}
		order = loaded
	}

	email, name, err := s.recipient(ctx, event)
	if err != nil {
		return err
	}

	msg, err := s.composer.OrderConfirmation(email, name, order)
	if err != nil {
		return errors.Wrap(err, "failed to render order confirmation")
	}

	return s.deliver(ctx, logger, msg)
}

func (s *notificationService) loadOrder(ctx context.Context, rawID string) (*entity.Order, error) {
	orderID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("event has no valid orderId"))
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.WithStack(domainerrors.ErrOrderNotFound)
		}

		return nil, usecase.NewRetryableError(errors.Wrap(err, "failed to load order"))
	}

	return order, nil
}

// sendStatusUpdate mails the customer first; the push only goes out once the mail
// is delivered so a redelivered event does not repeat it.
func (s *notificationService) sendStatusUpdate(ctx context.Context, logger *slog.Logger, event *service.ShopEvent) error {
	status := entity.OrderStatus(event.Status)
	if !status.IsValid() || event.OrderID == "" {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("status event needs orderId and a valid status"))
	}

	email, name, err := s.recipient(ctx, event)
	if err != nil {
		return err
	}

	msg, err := s.composer.OrderStatusUpdate(email, name, &service.OrderStatusMail{
		OrderID:        event.OrderID,
		Status:         status,
		TrackingNumber: event.TrackingNumber,
	})
	if err != nil {
		return errors.Wrap(err, "failed to render status update")
	}

	if err := s.deliver(ctx, logger, msg); err != nil {
		return err
	}

	if userID, err := uuid.Parse(event.UserID); err == nil {
		s.pushStatus(ctx, logger, userID, event.OrderID, status, event.TrackingNumber)
	}

	return nil
}

// pushStatus notifies the customer's active devices. Failures are logged only;
// tokens FCM reports as invalid are deactivated.
func (s *notificationService) pushStatus(ctx context.Context, logger *slog.Logger, userID uuid.UUID, orderID string, status entity.OrderStatus, tracking string) {
	devices, err := s.deviceRepo.FindActiveDevicesByUser(ctx, userID)
	if err != nil {
		logger.Warn("Failed to fetch devices for push", slog.Any("error", err))

		return
	}
	if len(devices) == 0 {
		return
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	shortID := util.ShortOrderID(orderID)
	title := "Bestellung #" + shortID
	body := "Ihre Bestellung wurde " + status.GermanLabel() + "."
	if status == entity.OrderStatusPending {
		body = "Ihre Bestellung ist in Bearbeitung."
	}
	if tracking = strings.TrimSpace(tracking); tracking != "" {
		body += " Sendungsnummer: " + tracking
	}

	data := map[string]string{
		"type":     string(service.ShopEventOrderStatusChanged),
		"order_id": orderID,
		"status":   string(status),
	}

	var (
		totalSent     int
		totalFailed   int
		invalidTokens []string
	)

	for i := 0; i < len(tokens); i += firebaseBatchSize {
		batch := tokens[i:min(i+firebaseBatchSize, len(tokens))]

		successCount, failureCount, batchInvalidTokens, err := s.notificationSvc.SendBatchNotification(ctx, batch, title, body, data)
		if err != nil {
			logger.Warn("Push batch failed", slog.Int("tokens", len(batch)), slog.Any("error", err))
			totalFailed += len(batch)

			continue
		}

		totalSent += successCount
		totalFailed += failureCount
		invalidTokens = append(invalidTokens, batchInvalidTokens...)
	}

	if len(invalidTokens) > 0 {
		if err := s.deviceRepo.DeactivateByTokens(ctx, invalidTokens); err != nil {
			logger.Warn("Failed to deactivate invalid devices", slog.Any("error", err))
		}
	}

	logger.Info("Order push sent",
		slog.Int("sent", totalSent),
		slog.Int("failed", totalFailed),
		slog.Int("deactivated", len(invalidTokens)),
	)
}
