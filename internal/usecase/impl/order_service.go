package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

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

type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	publisher service.EventPublisher
	qrCode    service.QRCodeService
	logger    *slog.Logger
	now       func() time.Time
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	CartRepo  repository.CartRepository
	Publisher service.EventPublisher
	QRCode    service.QRCodeService
	Logger    *slog.Logger
}

// NewOrderService creates the checkout and order history service
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		cartRepo:  params.CartRepo,
		publisher: params.Publisher,
		qrCode:    params.QRCode,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder runs the whole checkout in one transaction: price lookup, coupon redemption,
// order creation and guarded stock decrement. Any failure rolls everything back.
func (srv *orderService) PlaceOrder(ctx context.Context, input *usecase.PlaceOrderInput) (*usecase.PlaceOrderOutput, error) {
	lines, err := validateOrderInput(input)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Placing order",
		slog.String("user_id", input.UserID.String()),
		slog.Int("lines", len(lines)),
		slog.String("coupon", input.CouponCode),
	)

	var order *entity.Order
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		created, txErr := srv.placeOrderTx(ctx, repoFactory, input, lines)
		if txErr != nil {
			return txErr
		}
		order = created

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Order placement failed", slog.String("user_id", input.UserID.String()), slog.Any("error", err))

		return nil, asOrderCreationError(err)
	}

	srv.log(ctx).Info("Order placed",
		slog.String("order_id", order.ID.String()),
		slog.Int64("total_cents", order.TotalCents),
		slog.Int64("discount_cents", order.DiscountCents),
	)

	srv.afterCheckout(ctx, input.CartID, order)

	return &usecase.PlaceOrderOutput{Order: order}, nil
}

// validateOrderInput checks the request shape and merges lines of the same variant,
// keeping the first-seen order.
func validateOrderInput(input *usecase.PlaceOrderInput) ([]usecase.OrderLineInput, error) {
	if len(input.Items) == 0 {
		return nil, errors.WithStack(domainerrors.ErrEmptyCart)
	}
	if input.ShippingAddress == nil || input.BillingAddress == nil {
		return nil, errors.WithStack(domainerrors.ErrAddressMissing)
	}

	index := make(map[uuid.UUID]int, len(input.Items))
	lines := make([]usecase.OrderLineInput, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Qty < 1 {
			return nil, errors.WithStack(domainerrors.ErrInvalidQuantity)
		}
		if pos, ok := index[item.VariantID]; ok {
			lines[pos].Qty += item.Qty

			continue
		}
		index[item.VariantID] = len(lines)
		lines = append(lines, item)
	}

	return lines, nil
}

func (srv *orderService) placeOrderTx(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	input *usecase.PlaceOrderInput,
	lines []usecase.OrderLineInput,
) (*entity.Order, error) {
	variantRepo := repoFactory.VariantRepo()

	ids := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		ids[i] = line.VariantID
	}

	variants, err := variantRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order variants")
	}

	byID := make(map[uuid.UUID]*entity.ProductVariant, len(variants))
	for _, variant := range variants {
		byID[variant.ID] = variant
	}

	items := make([]*entity.OrderItem, 0, len(lines))
	var subtotal int64
	for _, line := range lines {
		variant, ok := byID[line.VariantID]
		if !ok {
			return nil, domainerrors.ErrVariantNotFound.WithDetails(line.VariantID.String())
		}

		item := &entity.OrderItem{
			VariantID:   variant.ID,
			Qty:         line.Qty,
			PriceCents:  variant.PriceCents,
			VariantName: variant.Name,
		}
		if variant.Product != nil {
			item.ProductTitle = variant.Product.Title
		}
		items = append(items, item)
		subtotal += item.LineTotalCents()
	}

	discount, couponCode, err := srv.redeemCoupon(ctx, repoFactory.CouponRepo(), input.CouponCode, subtotal)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		UserID:          input.UserID,
		Status:          entity.OrderStatusPending,
		PaymentStatus:   entity.PaymentStatusPending,
		PaymentMethod:   normalizePaymentMethod(input.PaymentMethod),
		SubtotalCents:   subtotal,
		DiscountCents:   discount,
		TotalCents:      subtotal - discount,
		CouponCode:      couponCode,
		Currency:        constants.CurrencyEUR,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		Items:           items,
	}

	if err := repoFactory.OrderRepo().Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	for _, line := range lines {
		if err := variantRepo.DecrementStock(ctx, line.VariantID, line.Qty); err != nil {
			if errors.Is(err, repository.ErrInsufficientStock) {
				return nil, domainerrors.ErrInsufficientStock.WithDetails(byID[line.VariantID].SKU)
			}

			return nil, errors.Wrap(err, "failed to decrement stock")
		}
	}

	return order, nil
}

// redeemCoupon validates the code against the subtotal and commits a usage slot.
func (srv *orderService) redeemCoupon(ctx context.Context, couponRepo repository.CouponRepository, rawCode string, subtotal int64) (int64, string, error) {
	code := entity.NormalizeCouponCode(rawCode)
	if code == "" {
		return 0, "", nil
	}

	coupon, err := couponRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return 0, "", domainerrors.ErrCouponNotFound.WrapMessage("coupon not found at checkout")
		}

		return 0, "", errors.Wrap(err, "failed to load coupon")
	}

	discount, err := coupon.Evaluate(subtotal, srv.now())
	if err != nil {
		return 0, "", errors.WithStack(err)
	}

	if err := couponRepo.Redeem(ctx, coupon.ID); err != nil {
		if errors.Is(err, repository.ErrCouponExhausted) {
			return 0, "", domainerrors.ErrCouponExhausted.WrapMessage("coupon usage limit reached concurrently")
		}

		return 0, "", errors.Wrap(err, "failed to redeem coupon")
	}

	return discount, coupon.Code, nil
}

// asOrderCreationError keeps client errors and hides everything else behind ErrOrderCreationFailed.
func asOrderCreationError(err error) error {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok && appErr.HTTPCode() < 500 {
		return err
	}

	return domainerrors.ErrOrderCreationFailed.WrapMessage(err.Error())
}

// afterCheckout clears the cart and announces the order. Both steps are best effort.
func (srv *orderService) afterCheckout(ctx context.Context, cartID *uuid.UUID, order *entity.Order) {
	if cartID != nil {
		if err := srv.cartRepo.Delete(ctx, *cartID); err != nil {
			srv.log(ctx).Warn("Failed to clear cart after checkout", slog.String("cart_id", cartID.String()), slog.Any("error", err))
		}
	}

	snapshot := order
	if loaded, err := srv.orderRepo.FindByID(ctx, order.ID); err == nil {
		snapshot = loaded
	} else {
		srv.log(ctx).Warn("Failed to reload order for confirmation", slog.String("order_id", order.ID.String()), slog.Any("error", err))
	}

	publishShopEvent(ctx, srv.publisher, srv.log(ctx), newOrderEvent(ctx, service.ShopEventOrderCreated, snapshot))
}

// ListOrders returns the user's orders newest first.
func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns an order of the user. Orders of other users look like missing ones.
func (srv *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	if order.UserID != userID {
		srv.log(ctx).Warn("Order requested by another user",
			slog.String("order_id", orderID.String()),
			slog.String("user_id", userID.String()),
		)

		return nil, domainerrors.ErrOrderNotFound.WrapMessage("order belongs to another user")
	}

	return order, nil
}

// OrderQRCode renders the tracking QR code of an order of the user.
func (srv *orderService) OrderQRCode(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrCode.GenerateOrderQR(order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate order qr code")
	}

	return png, nil
}

// normalizePaymentMethod lower-cases the method label sent by the checkout page.
func normalizePaymentMethod(method string) string {
	return strings.ToLower(strings.TrimSpace(method))
}
