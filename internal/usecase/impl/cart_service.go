package impl

import (
	"context"
	"log/slog"

	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/errors"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type cartService struct {
	cartRepo    repository.CartRepository
	variantRepo repository.VariantRepository
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	VariantRepo repository.VariantRepository
	Logger      *slog.Logger
}

// NewCartService creates the anonymous cart service
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		variantRepo: params.VariantRepo,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the cart with totals at current prices.
func (srv *cartService) GetCart(ctx context.Context, cartID *uuid.UUID) (*usecase.CartView, error) {
	empty := &usecase.CartView{Items: []*entity.CartItem{}}
	if cartID == nil {
		return empty, nil
	}

	cart, err := srv.cartRepo.FindByID(ctx, *cartID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return empty, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}

	items := cart.Items
	if items == nil {
		items = []*entity.CartItem{}
	}

	return &usecase.CartView{
		Items:     items,
		Total:     cart.TotalCents(),
		ItemCount: cart.ItemCount(),
	}, nil
}

// AddItem adds qty of a variant, creating the cart when the cookie is missing or stale.
func (srv *cartService) AddItem(ctx context.Context, cartID *uuid.UUID, input *usecase.AddCartItemInput) (*usecase.AddCartItemOutput, error) {
	qty := input.Qty
	if qty < 0 {
		return nil, errors.WithStack(domainerrors.ErrInvalidQuantity)
	}
	if qty == 0 {
		qty = 1
	}

	// Check the variant first so an unknown variant never leaves an empty cart behind.
	if _, err := srv.variantRepo.FindByID(ctx, input.VariantID); err != nil {
		if errors.Is(err, repository.ErrVariantNotFound) {
			return nil, domainerrors.ErrVariantNotFound.WrapMessage("cannot add unknown variant to cart")
		}

		return nil, errors.Wrap(err, "failed to load variant")
	}

	if cartID != nil {
		item, err := srv.cartRepo.AddItem(ctx, *cartID, input.VariantID, qty)
		if err == nil {
			return &usecase.AddCartItemOutput{CartID: *cartID, Item: item}, nil
		}
		if !errors.Is(err, repository.ErrCartNotFound) {
			return nil, srv.translateAddError(err)
		}

		srv.log(ctx).Debug("Cart from cookie no longer exists, creating a new one", slog.String("cart_id", cartID.String()))
	}

	cart, err := srv.cartRepo.Create(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cart")
	}

	item, err := srv.cartRepo.AddItem(ctx, cart.ID, input.VariantID, qty)
	if err != nil {
		return nil, srv.translateAddError(err)
	}

	srv.log(ctx).Info("Cart created", slog.String("cart_id", cart.ID.String()))

	return &usecase.AddCartItemOutput{CartID: cart.ID, Item: item}, nil
}

func (srv *cartService) translateAddError(err error) error {
	if errors.Is(err, repository.ErrVariantNotFound) {
		return domainerrors.ErrVariantNotFound.WrapMessage("variant vanished while adding to cart")
	}

	return errors.Wrap(err, "failed to add cart item")
}

// UpdateItem sets the absolute quantity of a line of the cart.
func (srv *cartService) UpdateItem(ctx context.Context, cartID *uuid.UUID, itemID uuid.UUID, qty int) error {
	if qty < 1 {
		return errors.WithStack(domainerrors.ErrInvalidQuantity)
	}
	if cartID == nil {
		return errors.WithStack(domainerrors.ErrCartItemNotFound)
	}

	if err := srv.cartRepo.UpdateItemQty(ctx, *cartID, itemID, qty); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return domainerrors.ErrCartItemNotFound.WrapMessage("cart item not in cart")
		}

		return errors.Wrap(err, "failed to update cart item")
	}

	return nil
}

// RemoveItem deletes a line of the cart.
func (srv *cartService) RemoveItem(ctx context.Context, cartID *uuid.UUID, itemID uuid.UUID) error {
	if cartID == nil {
		return errors.WithStack(domainerrors.ErrCartItemNotFound)
	}

	if err := srv.cartRepo.RemoveItem(ctx, *cartID, itemID); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return domainerrors.ErrCartItemNotFound.WrapMessage("cart item not in cart")
		}

		return errors.Wrap(err, "failed to remove cart item")
	}

	return nil
}

// ClearCart deletes the cart. A missing cart is already clear.
func (srv *cartService) ClearCart(ctx context.Context, cartID *uuid.UUID) error {
	if cartID == nil {
		return nil
	}

	if err := srv.cartRepo.Delete(ctx, *cartID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}
