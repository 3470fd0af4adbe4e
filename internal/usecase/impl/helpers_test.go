package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"morgenstar/internal/domain/entity"
	"morgenstar/internal/domain/repository"
	mockRepo "morgenstar/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

const txFuncType = "func(repository.RepositoryFactory) error"

var fixedNow = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// expectTx makes txManager run the transaction body against factory and
// return whatever the body returns.
func expectTx(txManager *mockRepo.MockTransactionManager, factory *mockRepo.MockRepositoryFactory) {
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType(txFuncType)).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func newTestVariant(priceCents int64, inStock int) *entity.ProductVariant {
	productID := uuid.New()

	return &entity.ProductVariant{
		ID:         uuid.New(),
		ProductID:  productID,
		SKU:        "ETH-250",
		Name:       "250g",
		PriceCents: priceCents,
		InStock:    inStock,
		WeightGr:   250,
		Product:    &entity.Product{ID: productID, Title: "Äthiopien Yirgacheffe", Slug: "aethiopien-yirgacheffe"},
	}
}

func newTestAddress() *entity.Address {
	return &entity.Address{
		FirstName:   "Erika",
		LastName:    "Mustermann",
		Street:      "Kaffeestraße",
		HouseNumber: "12",
		PostalCode:  "20095",
		City:        "Hamburg",
		Country:     "DE",
	}
}
