package handler

import (
	"net/http"
	"testing"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	mockUsecase "morgenstar/internal/mocks/usecase"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestAdminHandler(t *testing.T) (*AdminHandler, *mockUsecase.MockAdminUsecase) {
	adminUC := mockUsecase.NewMockAdminUsecase(t)

	return NewAdminHandler(AdminHandlerParams{AdminUC: adminUC, Logger: testLogger}), adminUC
}

func TestAdminHandler_UpdateOrderStatus(t *testing.T) {
	h, adminUC := createTestAdminHandler(t)

	orderID := uuid.New()
	adminUC.EXPECT().
		UpdateOrderStatus(mock.Anything, orderID, &usecase.UpdateOrderStatusInput{Status: "SHIPPED", TrackingNumber: "DHL123"}).
		Return(&entity.Order{ID: orderID, Status: entity.OrderStatusShipped, TrackingNumber: "DHL123"}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPut, "/api/admin/orders/"+orderID.String(),
		`{"status":"SHIPPED","trackingNumber":"DHL123"}`)
	c.SetParamNames("id")
	c.SetParamValues(orderID.String())

	require.NoError(t, h.UpdateOrderStatus(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	got := decodeData[UpdateOrderStatusResponse](t, rec)
	assert.Equal(t, "Bestellstatus erfolgreich aktualisiert", got.Message)
	require.NotNil(t, got.Order)
	assert.Equal(t, entity.OrderStatusShipped, got.Order.Status)
}

func TestAdminHandler_UpdateOrderStatus_InvalidTransition(t *testing.T) {
	h, adminUC := createTestAdminHandler(t)

	orderID := uuid.New()
	transitionErr := domainerrors.ErrInvalidStatusTransition.WithMessage("Ungültiger Statusübergang von DELIVERED zu PENDING")
	adminUC.EXPECT().UpdateOrderStatus(mock.Anything, orderID, mock.Anything).Return(nil, transitionErr)

	c, rec := newJSONContext(newTestEcho(), http.MethodPut, "/api/admin/orders/"+orderID.String(), `{"status":"PENDING"}`)
	c.SetParamNames("id")
	c.SetParamValues(orderID.String())

	require.NoError(t, h.UpdateOrderStatus(c))
	assert.Equal(t, http.StatusConflict, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, domainerrors.ErrInvalidStatusTransition.ErrorCode(), env.Code)
	assert.Equal(t, "Ungültiger Statusübergang von DELIVERED zu PENDING", env.Error)
}

func TestAdminHandler_CreateProduct(t *testing.T) {
	h, adminUC := createTestAdminHandler(t)

	productID := uuid.New()
	adminUC.EXPECT().
		CreateProduct(mock.Anything, mock.MatchedBy(func(in *usecase.CreateProductInput) bool {
			return in.Title == "Brasil Santos" && len(in.Variants) == 1 &&
				in.Variants[0].SKU == "BS-250" && in.Variants[0].PriceCents == 1199
		})).
		Return(&entity.Product{ID: productID, Slug: "brasil-santos", Title: "Brasil Santos"}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/admin/products",
		`{"title":"Brasil Santos","variants":[{"sku":"BS-250","name":"250g","priceCents":1199,"inStock":10,"weightGr":250}]}`)

	require.NoError(t, h.CreateProduct(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "brasil-santos", decodeData[entity.Product](t, rec).Slug)
}

func TestAdminHandler_CreateProduct_InvalidVariant(t *testing.T) {
	h, _ := createTestAdminHandler(t)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/admin/products",
		`{"title":"Brasil Santos","variants":[{"sku":"BS-250","name":"250g","priceCents":0}]}`)

	require.NoError(t, h.CreateProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), env.Code)
	assert.Contains(t, env.Details, "priceCents")
}

func TestAdminHandler_UpdateVariant(t *testing.T) {
	h, adminUC := createTestAdminHandler(t)

	variantID := uuid.New()
	adminUC.EXPECT().
		UpdateVariant(mock.Anything, variantID, mock.MatchedBy(func(update repository.VariantUpdate) bool {
			return update.Name == nil && update.PriceCents != nil && *update.PriceCents == 1399 &&
				update.InStock != nil && *update.InStock == 0
		})).
		Return(&entity.ProductVariant{ID: variantID, PriceCents: 1399}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPut, "/api/admin/variants/"+variantID.String(),
		`{"priceCents":1399,"inStock":0}`)
	c.SetParamNames("id")
	c.SetParamValues(variantID.String())

	require.NoError(t, h.UpdateVariant(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1399), decodeData[entity.ProductVariant](t, rec).PriceCents)
}

func TestAdminHandler_UpdateVariant_NegativePrice(t *testing.T) {
	h, _ := createTestAdminHandler(t)

	variantID := uuid.New()
	c, rec := newJSONContext(newTestEcho(), http.MethodPut, "/api/admin/variants/"+variantID.String(), `{"priceCents":-5}`)
	c.SetParamNames("id")
	c.SetParamValues(variantID.String())

	require.NoError(t, h.UpdateVariant(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminHandler_ListOrders_StatusFilter(t *testing.T) {
	h, adminUC := createTestAdminHandler(t)

	adminUC.EXPECT().ListOrders(mock.Anything, "PENDING").Return([]*entity.Order{{ID: uuid.New()}}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodGet, "/api/admin/orders?status=PENDING", "")

	require.NoError(t, h.ListOrders(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]entity.Order](t, rec), 1)
}
