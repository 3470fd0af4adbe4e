package postgres

import (
	"context"
	"encoding/json"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func withOrderItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items").Preload("Items.Variant.Product.Brand")
}

// Create persists an order with its items.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM, err := fromOrderDomain(order)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Omit("User").Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order references unknown user or variant")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("order amounts and quantities must be positive")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt
	for i, itemM := range orderM.Items {
		order.Items[i].ID = itemM.ID
		order.Items[i].OrderID = orderM.ID
	}

	return nil
}

// FindByID loads an order with items and its user.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := withOrderItems(repo.db.WithContext(ctx)).
		Preload("User").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM)
}

// ListByUser returns a user's orders newest first.
func (repo *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := withOrderItems(repo.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return toOrderDomainList(orderModels)
}

// List returns all orders newest first, optionally filtered by status.
func (repo *orderRepository) List(ctx context.Context, status *entity.OrderStatus) ([]*entity.Order, error) {
	query := withOrderItems(repo.db.WithContext(ctx)).Preload("User")
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var orderModels []*model.OrderModel
	if err := query.Order("created_at DESC").Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomainList(orderModels)
}

// UpdateStatus moves the order from one status to another. The status condition makes
// concurrent transitions serialise on the row: the later writer sees ErrOrderStatusChanged.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus, trackingNumber string) error {
	changes := map[string]any{"status": string(to)}
	if trackingNumber != "" {
		changes["tracking_number"] = trackingNumber
	}

	return repo.updateOrder(ctx, id, from, changes, "failed to update order status")
}

// SetPaymentIntent stores the processor intent id.
func (repo *orderRepository) SetPaymentIntent(ctx context.Context, id uuid.UUID, paymentIntentID string) error {
	return repo.updateOrder(ctx, id, "", map[string]any{"payment_intent_id": paymentIntentID}, "failed to store payment intent")
}

// UpdatePayment applies a payment webhook result while the order is still in update.ExpectedStatus.
func (repo *orderRepository) UpdatePayment(ctx context.Context, id uuid.UUID, update repository.OrderPaymentUpdate) error {
	changes := map[string]any{"payment_status": string(update.PaymentStatus)}
	if update.Status != nil {
		changes["status"] = string(*update.Status)
	}
	if update.PaymentIntentID != "" {
		changes["payment_intent_id"] = update.PaymentIntentID
	}

	return repo.updateOrder(ctx, id, update.ExpectedStatus, changes, "failed to update order payment")
}

// updateOrder applies changes to one order; a non-empty expected status guards the write.
func (repo *orderRepository) updateOrder(ctx context.Context, id uuid.UUID, expected entity.OrderStatus, changes map[string]any, msg string) error {
	query := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Where("id = ?", id)
	if expected != "" {
		query = query.Where("status = ?", string(expected))
	}

	result := query.Updates(changes)
	if result.Error != nil {
		return errors.Wrap(result.Error, msg)
	}
	if result.RowsAffected > 0 {
		return nil
	}
	if expected == "" {
		return repository.ErrOrderNotFound
	}

	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, msg)
	}
	if count == 0 {
		return repository.ErrOrderNotFound
	}

	return repository.ErrOrderStatusChanged
}

// Summary aggregates counts and revenue in one query.
func (repo *orderRepository) Summary(ctx context.Context) (*repository.OrderSummary, error) {
	var row struct {
		TotalOrders   int64
		PendingOrders int64
		RevenueCents  int64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Select(
			"COUNT(*) AS total_orders, "+
				"COUNT(*) FILTER (WHERE status = ?) AS pending_orders, "+
				"COALESCE(SUM(total_cents) FILTER (WHERE payment_status = ? OR status IN ?), 0) AS revenue_cents",
			string(entity.OrderStatusPending),
			string(entity.PaymentStatusPaid),
			[]string{
				string(entity.OrderStatusConfirmed),
				string(entity.OrderStatusShipped),
				string(entity.OrderStatusDelivered),
			},
		).
		Scan(&row).Error; err != nil {
		return nil, errors.Wrap(err, "failed to summarise orders")
	}

	return &repository.OrderSummary{
		TotalOrders:   row.TotalOrders,
		PendingOrders: row.PendingOrders,
		RevenueCents:  row.RevenueCents,
	}, nil
}

// --- Mapper Functions ---

func toOrderDomainList(data []*model.OrderModel) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0, len(data))
	for _, orderM := range data {
		order, err := toOrderDomain(orderM)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func toOrderDomain(data *model.OrderModel) (*entity.Order, error) {
	order := &entity.Order{
		ID:              data.ID,
		UserID:          data.UserID,
		Status:          entity.OrderStatus(data.Status),
		PaymentStatus:   entity.PaymentStatus(data.PaymentStatus),
		PaymentIntentID: data.PaymentIntentID,
		PaymentMethod:   data.PaymentMethod,
		SubtotalCents:   data.SubtotalCents,
		DiscountCents:   data.DiscountCents,
		TotalCents:      data.TotalCents,
		CouponCode:      data.CouponCode,
		Currency:        data.Currency,
		TrackingNumber:  data.TrackingNumber,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		User:            toUserDomain(data.User),
	}

	var err error
	if order.ShippingAddress, err = decodeAddress(data.ShippingAddress); err != nil {
		return nil, err
	}
	if order.BillingAddress, err = decodeAddress(data.BillingAddress); err != nil {
		return nil, err
	}

	for _, itemM := range data.Items {
		order.Items = append(order.Items, &entity.OrderItem{
			ID:           itemM.ID,
			OrderID:      itemM.OrderID,
			VariantID:    itemM.VariantID,
			Qty:          itemM.Qty,
			PriceCents:   itemM.PriceCents,
			ProductTitle: itemM.ProductTitle,
			VariantName:  itemM.VariantName,
			Variant:      toVariantDomain(itemM.Variant, true),
		})
	}

	return order, nil
}

func fromOrderDomain(data *entity.Order) (*model.OrderModel, error) {
	shipping, err := encodeAddress(data.ShippingAddress)
	if err != nil {
		return nil, err
	}
	billing, err := encodeAddress(data.BillingAddress)
	if err != nil {
		return nil, err
	}

	orderM := &model.OrderModel{
		ID:              data.ID,
		UserID:          data.UserID,
		Status:          string(data.Status),
		PaymentStatus:   string(data.PaymentStatus),
		PaymentIntentID: data.PaymentIntentID,
		PaymentMethod:   data.PaymentMethod,
		SubtotalCents:   data.SubtotalCents,
		DiscountCents:   data.DiscountCents,
		TotalCents:      data.TotalCents,
		CouponCode:      data.CouponCode,
		Currency:        data.Currency,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		TrackingNumber:  data.TrackingNumber,
	}
	for _, item := range data.Items {
		orderM.Items = append(orderM.Items, &model.OrderItemModel{
			VariantID:    item.VariantID,
			Qty:          item.Qty,
			PriceCents:   item.PriceCents,
			ProductTitle: item.ProductTitle,
			VariantName:  item.VariantName,
		})
	}

	return orderM, nil
}

func encodeAddress(address *entity.Address) (datatypes.JSON, error) {
	if address == nil {
		return nil, nil
	}

	raw, err := json.Marshal(address)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode address")
	}

	return datatypes.JSON(raw), nil
}

func decodeAddress(raw datatypes.JSON) (*entity.Address, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var address entity.Address
	if err := json.Unmarshal(raw, &address); err != nil {
		return nil, errors.Wrap(err, "failed to decode address")
	}

	return &address, nil
}
