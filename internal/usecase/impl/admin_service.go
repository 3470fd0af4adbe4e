package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
)

type adminService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	variantRepo    repository.VariantRepository
	newsletterRepo repository.NewsletterRepository
	publisher      service.EventPublisher
	logger         *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	OrderRepo      repository.OrderRepository
	ProductRepo    repository.ProductRepository
	VariantRepo    repository.VariantRepository
	NewsletterRepo repository.NewsletterRepository
	Publisher      service.EventPublisher
	Logger         *slog.Logger
}

// NewAdminService creates the back office service
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		productRepo:    params.ProductRepo,
		variantRepo:    params.VariantRepo,
		newsletterRepo: params.NewsletterRepo,
		publisher:      params.Publisher,
		logger:         params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateOrderStatus moves an order along the state machine. Setting the current status
// again only stores the tracking number and does not notify the customer.
func (srv *adminService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, input *usecase.UpdateOrderStatusInput) (*entity.Order, error) {
	status, err := entity.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	order, err := srv.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	changed, err := order.TransitionTo(status)
	if err != nil {
		srv.log(ctx).Warn("Rejected order status transition",
			slog.String("order_id", orderID.String()),
			slog.String("from", string(from)),
			slog.String("to", string(status)),
		)

		return nil, errors.WithStack(err)
	}

	trackingNumber := strings.TrimSpace(input.TrackingNumber)
	if err := srv.orderRepo.UpdateStatus(ctx, orderID, from, status, trackingNumber); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order vanished during status update")
		}
		if errors.Is(err, repository.ErrOrderStatusChanged) {
			srv.log(ctx).Warn("Order status changed concurrently",
				slog.String("order_id", orderID.String()),
				slog.String("from", string(from)),
				slog.String("to", string(status)),
			)

			return nil, errors.WithStack(domainerrors.ErrInvalidStatusTransition.WithMessage(
				fmt.Sprintf("Ungültiger Statusübergang von %s nach %s", from, status),
			))
		}

		return nil, errors.Wrap(err, "failed to update order status")
	}
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}

	srv.log(ctx).Info("Order status updated",
		slog.String("order_id", orderID.String()),
		slog.String("from", string(from)),
		slog.String("to", string(status)),
		slog.Bool("changed", changed),
	)

	if changed {
		publishShopEvent(ctx, srv.publisher, srv.log(ctx), newOrderEvent(ctx, service.ShopEventOrderStatusChanged, order))
	}

	return order, nil
}

// GetOrder returns any order with user and items.
func (srv *adminService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to load order")
	}

	return order, nil
}

// ListOrders returns all orders, optionally only those in one status.
func (srv *adminService) ListOrders(ctx context.Context, status string) ([]*entity.Order, error) {
	var filter *entity.OrderStatus
	if strings.TrimSpace(status) != "" {
		parsed, err := entity.ParseOrderStatus(status)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		filter = &parsed
	}

	orders, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// ListProducts returns the full catalogue.
func (srv *adminService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// CreateProduct stores a product with its variants and category links atomically.
func (srv *adminService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	product, err := buildProduct(input)
	if err != nil {
		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.ProductRepo().Create(ctx, product, input.CategoryIDs)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateSKU):
			return nil, domainerrors.ErrSKUAlreadyExists.WrapMessage("variant sku taken")
		case errors.Is(err, repository.ErrDuplicateProduct):
			return nil, domainerrors.ErrProductAlreadyExists.WrapMessage("product slug taken")
		}

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created",
		slog.String("product_id", product.ID.String()),
		slog.String("slug", product.Slug),
		slog.Int("variants", len(product.Variants)),
	)

	return product, nil
}

func buildProduct(input *usecase.CreateProductInput) (*entity.Product, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || len(input.Variants) == 0 {
		return nil, errors.WithStack(domainerrors.ErrProductInputInvalid)
	}

	productSlug := slug.Make(title)
	if productSlug == "" {
		return nil, errors.WithStack(domainerrors.ErrProductInputInvalid.WithDetails("title yields an empty slug"))
	}

	variants := make([]*entity.ProductVariant, 0, len(input.Variants))
	for _, v := range input.Variants {
		sku := strings.TrimSpace(v.SKU)
		name := strings.TrimSpace(v.Name)
		if sku == "" || name == "" {
			return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("variant sku and name are required"))
		}
		if v.PriceCents <= 0 || v.InStock < 0 || v.WeightGr < 0 {
			return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("variant price must be positive, stock and weight not negative"))
		}

		variants = append(variants, &entity.ProductVariant{
			SKU:        strings.ToUpper(sku),
			Name:       name,
			PriceCents: v.PriceCents,
			InStock:    v.InStock,
			WeightGr:   v.WeightGr,
		})
	}

	return &entity.Product{
		Slug:        productSlug,
		Title:       title,
		Subtitle:    strings.TrimSpace(input.Subtitle),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		BrandID:     input.BrandID,
		Variants:    variants,
	}, nil
}

// UpdateVariant applies admin price, stock or name edits.
func (srv *adminService) UpdateVariant(ctx context.Context, variantID uuid.UUID, update repository.VariantUpdate) (*entity.ProductVariant, error) {
	if update.Name == nil && update.PriceCents == nil && update.InStock == nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("nothing to update"))
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("name must not be empty"))
	}
	if (update.PriceCents != nil && *update.PriceCents <= 0) || (update.InStock != nil && *update.InStock < 0) {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("price must be positive and stock not negative"))
	}

	variant, err := srv.variantRepo.Update(ctx, variantID, update)
	if err != nil {
		if errors.Is(err, repository.ErrVariantNotFound) {
			return nil, domainerrors.ErrVariantNotFound.WrapMessage("variant not found")
		}

		return nil, errors.Wrap(err, "failed to update variant")
	}

	srv.log(ctx).Info("Variant updated", slog.String("variant_id", variantID.String()), slog.String("sku", variant.SKU))

	return variant, nil
}

// Stats returns the dashboard figures.
func (srv *adminService) Stats(ctx context.Context) (*entity.ShopStats, error) {
	products, err := srv.productRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}

	summary, err := srv.orderRepo.Summary(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to summarise orders")
	}

	return &entity.ShopStats{
		TotalProducts: products,
		TotalOrders:   summary.TotalOrders,
		TotalRevenue:  summary.RevenueCents,
		PendingOrders: summary.PendingOrders,
	}, nil
}

// ListNewsletterSubscribers returns active subscribers.
func (srv *adminService) ListNewsletterSubscribers(ctx context.Context) ([]*entity.NewsletterSubscriber, error) {
	subscribers, err := srv.newsletterRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list newsletter subscribers")
	}

	return subscribers, nil
}
