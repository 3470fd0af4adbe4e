package handler

import (
	"net/http"
	"testing"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	mockUsecase "morgenstar/internal/mocks/usecase"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const validAddressJSON = `{"firstName":"Erika","lastName":"Mustermann","street":"Hauptstraße","houseNumber":"1",` +
	`"postalCode":"10115","city":"Berlin","country":"DE"}`

func createTestOrderHandler(t *testing.T) (*OrderHandler, *mockUsecase.MockOrderUsecase) {
	orderUC := mockUsecase.NewMockOrderUsecase(t)
	h := NewOrderHandler(OrderHandlerParams{
		OrderUC: orderUC,
		Config:  newTestConfig(),
		Logger:  testLogger,
	})

	return h, orderUC
}

func TestOrderHandler_PlaceOrder(t *testing.T) {
	h, orderUC := createTestOrderHandler(t)

	userID := uuid.New()
	cartID := uuid.New()
	variantID := uuid.New()
	orderID := uuid.New()

	orderUC.EXPECT().
		PlaceOrder(mock.Anything, mock.MatchedBy(func(in *usecase.PlaceOrderInput) bool {
			return in.UserID == userID &&
				in.CartID != nil && *in.CartID == cartID &&
				len(in.Items) == 1 && in.Items[0].VariantID == variantID && in.Items[0].Qty == 2 &&
				in.ShippingAddress != nil && in.ShippingAddress.City == "Berlin" &&
				in.CouponCode == "WILLKOMMEN10"
		})).
		Return(&usecase.PlaceOrderOutput{Order: &entity.Order{ID: orderID, TotalCents: 2338, DiscountCents: 260}}, nil)

	body := `{"items":[{"variantId":"` + variantID.String() + `","qty":2}],` +
		`"shippingAddress":` + validAddressJSON + `,"paymentMethod":"card","couponCode":"WILLKOMMEN10"}`
	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/orders", body)
	c.Request().AddCookie(&http.Cookie{Name: "cart_id", Value: cartID.String()})
	signIn(c, userID)

	require.NoError(t, h.PlaceOrder(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	got := decodeData[PlaceOrderResponse](t, rec)
	assert.Equal(t, orderID, got.OrderID)
	assert.Equal(t, "Bestellung erfolgreich erstellt", got.Message)
	assert.Equal(t, int64(2338), got.TotalCents)
	assert.Equal(t, int64(260), got.DiscountCents)
}

func TestOrderHandler_PlaceOrder_RequiresSignIn(t *testing.T) {
	h, _ := createTestOrderHandler(t)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/orders", `{"items":[]}`)

	require.NoError(t, h.PlaceOrder(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderHandler_PlaceOrder_IncompleteAddress(t *testing.T) {
	h, _ := createTestOrderHandler(t)

	body := `{"items":[{"variantId":"` + uuid.NewString() + `","qty":1}],` +
		`"shippingAddress":{"firstName":"Erika","lastName":"Mustermann"}}`
	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/orders", body)
	signIn(c, uuid.New())

	require.NoError(t, h.PlaceOrder(c))
	assert.Equal(t, domainerrors.ErrAddressMissing.HTTPCode(), rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, domainerrors.ErrAddressMissing.ErrorCode(), env.Code)
	assert.NotNil(t, env.Details)
}

func TestOrderHandler_PlaceOrder_PropagatesDomainError(t *testing.T) {
	h, orderUC := createTestOrderHandler(t)

	orderUC.EXPECT().PlaceOrder(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrInsufficientStock.WithDetails("MSE-250"))

	body := `{"items":[{"variantId":"` + uuid.NewString() + `","qty":99}],"shippingAddress":` + validAddressJSON + `}`
	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/orders", body)
	signIn(c, uuid.New())

	require.NoError(t, h.PlaceOrder(c))
	assert.Equal(t, domainerrors.ErrInsufficientStock.HTTPCode(), rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, domainerrors.ErrInsufficientStock.ErrorCode(), env.Code)
	assert.Equal(t, domainerrors.ErrInsufficientStock.Message(), env.Error)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	h, orderUC := createTestOrderHandler(t)

	userID := uuid.New()
	orderID := uuid.New()
	orderUC.EXPECT().GetOrder(mock.Anything, userID, orderID).
		Return(&entity.Order{ID: orderID, Status: entity.OrderStatusPending}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodGet, "/api/orders/"+orderID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(orderID.String())
	signIn(c, userID)

	require.NoError(t, h.GetOrder(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, orderID, decodeData[entity.Order](t, rec).ID)
}

func TestOrderHandler_GetOrder_MalformedID(t *testing.T) {
	h, _ := createTestOrderHandler(t)

	c, rec := newJSONContext(newTestEcho(), http.MethodGet, "/api/orders/x", "")
	c.SetParamNames("id")
	c.SetParamValues("x")
	signIn(c, uuid.New())

	require.NoError(t, h.GetOrder(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domainerrors.ErrOrderNotFound.ErrorCode(), decodeEnvelope(t, rec).Code)
}

func TestOrderHandler_ListOrders(t *testing.T) {
	h, orderUC := createTestOrderHandler(t)

	userID := uuid.New()
	orderUC.EXPECT().ListOrders(mock.Anything, userID).
		Return([]*entity.Order{{ID: uuid.New()}, {ID: uuid.New()}}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodGet, "/api/orders", "")
	signIn(c, userID)

	require.NoError(t, h.ListOrders(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeData[[]entity.Order](t, rec), 2)
}

func TestOrderHandler_OrderQRCode(t *testing.T) {
	h, orderUC := createTestOrderHandler(t)

	userID := uuid.New()
	orderID := uuid.New()
	png := []byte{0x89, 'P', 'N', 'G'}
	orderUC.EXPECT().OrderQRCode(mock.Anything, userID, orderID).Return(png, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodGet, "/api/orders/"+orderID.String()+"/qr", "")
	c.SetParamNames("id")
	c.SetParamValues(orderID.String())
	signIn(c, userID)

	require.NoError(t, h.OrderQRCode(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, png, rec.Body.Bytes())
}
