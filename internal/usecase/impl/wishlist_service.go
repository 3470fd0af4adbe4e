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

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
	logger       *slog.Logger
}

// WishlistServiceParams holds dependencies for WishlistService, injected by Fx.
type WishlistServiceParams struct {
	fx.In

	WishlistRepo repository.WishlistRepository
	ProductRepo  repository.ProductRepository
	Logger       *slog.Logger
}

// NewWishlistService creates the wishlist service
func NewWishlistService(params WishlistServiceParams) usecase.WishlistUsecase {
	return &wishlistService{
		wishlistRepo: params.WishlistRepo,
		productRepo:  params.ProductRepo,
		logger:       params.Logger,
	}
}

func (srv *wishlistService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *wishlistService) List(ctx context.Context, userID uuid.UUID) ([]*entity.WishlistItem, error) {
	items, err := srv.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list wishlist")
	}

	return items, nil
}

// Add puts a product on the wishlist and returns the entry with the product loaded.
func (srv *wishlistService) Add(ctx context.Context, userID, productID uuid.UUID) (*entity.WishlistItem, error) {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("cannot wishlist unknown product")
		}

		return nil, errors.Wrap(err, "failed to load product")
	}

	item := &entity.WishlistItem{UserID: userID, ProductID: productID}
	if err := srv.wishlistRepo.Create(ctx, item); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateWishlistItem):
			return nil, domainerrors.ErrWishlistDuplicate.WrapMessage("product already wishlisted")
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, domainerrors.ErrProductNotFound.WrapMessage("product vanished while wishlisting")
		}

		return nil, errors.Wrap(err, "failed to add wishlist item")
	}

	srv.log(ctx).Debug("Product wishlisted", slog.String("product_id", productID.String()))

	// Return the entry as List shows it.
	items, err := srv.wishlistRepo.ListByUser(ctx, userID)
	if err != nil {
		return item, nil
	}
	for _, entry := range items {
		if entry.ProductID == productID {
			return entry, nil
		}
	}

	return item, nil
}

func (srv *wishlistService) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if err := srv.wishlistRepo.Delete(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrWishlistItemNotFound) {
			return domainerrors.ErrWishlistItemNotFound.WrapMessage("product not wishlisted")
		}

		return errors.Wrap(err, "failed to remove wishlist item")
	}

	return nil
}
