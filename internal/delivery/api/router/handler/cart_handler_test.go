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

func createTestCartHandler(t *testing.T) (*CartHandler, *mockUsecase.MockCartUsecase) {
	cartUC := mockUsecase.NewMockCartUsecase(t)
	h := NewCartHandler(CartHandlerParams{
		CartUC: cartUC,
		Config: newTestConfig(),
		Logger: testLogger,
	})

	return h, cartUC
}

func TestCartHandler_AddItem_NewCartSetsCookie(t *testing.T) {
	h, cartUC := createTestCartHandler(t)
	e := newTestEcho()

	variantID := uuid.New()
	cartID := uuid.New()
	item := &entity.CartItem{ID: uuid.New(), CartID: cartID, VariantID: variantID, Qty: 2}

	cartUC.EXPECT().
		AddItem(mock.Anything, (*uuid.UUID)(nil), &usecase.AddCartItemInput{VariantID: variantID, Qty: 2}).
		Return(&usecase.AddCartItemOutput{CartID: cartID, Item: item}, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/cart", `{"variantId":"`+variantID.String()+`","qty":2}`)

	require.NoError(t, h.AddItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := findCookie(rec, "cart_id")
	require.NotNil(t, cookie)
	assert.Equal(t, cartID.String(), cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure, "cookies are not secure in development")
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 30*24*60*60, cookie.MaxAge)

	got := decodeData[entity.CartItem](t, rec)
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, 2, got.Qty)
}

func TestCartHandler_AddItem_ExistingCartKeepsCookie(t *testing.T) {
	h, cartUC := createTestCartHandler(t)
	e := newTestEcho()

	variantID := uuid.New()
	cartID := uuid.New()

	cartUC.EXPECT().
		AddItem(mock.Anything, &cartID, &usecase.AddCartItemInput{VariantID: variantID, Qty: 0}).
		Return(&usecase.AddCartItemOutput{CartID: cartID, Item: &entity.CartItem{Qty: 1}}, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/cart", `{"variantId":"`+variantID.String()+`"}`)
	c.Request().AddCookie(&http.Cookie{Name: "cart_id", Value: cartID.String()})

	require.NoError(t, h.AddItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, findCookie(rec, "cart_id"))
}

func TestCartHandler_AddItem_SecureCookieOutsideDevelopment(t *testing.T) {
	cartUC := mockUsecase.NewMockCartUsecase(t)
	cfg := newTestConfig()
	cfg.Env.Env = "production"
	h := NewCartHandler(CartHandlerParams{CartUC: cartUC, Config: cfg, Logger: testLogger})
	e := newTestEcho()

	cartID := uuid.New()
	cartUC.EXPECT().AddItem(mock.Anything, mock.Anything, mock.Anything).
		Return(&usecase.AddCartItemOutput{CartID: cartID, Item: &entity.CartItem{Qty: 1}}, nil)

	c, rec := newJSONContext(e, http.MethodPost, "/api/cart", `{"variantId":"`+uuid.NewString()+`","qty":1}`)

	require.NoError(t, h.AddItem(c))
	cookie := findCookie(rec, "cart_id")
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestCartHandler_AddItem_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "negative quantity",
			body:       `{"variantId":"` + uuid.NewString() + `","qty":-1}`,
			wantStatus: domainerrors.ErrInvalidQuantity.HTTPCode(),
			wantCode:   domainerrors.ErrInvalidQuantity.ErrorCode(),
		},
		{
			name:       "negative quantity without variant",
			body:       `{"qty":-3}`,
			wantStatus: domainerrors.ErrInvalidQuantity.HTTPCode(),
			wantCode:   domainerrors.ErrInvalidQuantity.ErrorCode(),
		},
		{
			name:       "missing variant",
			body:       `{"qty":1}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   domainerrors.ErrValidationFailed.ErrorCode(),
		},
		{
			name:       "malformed body",
			body:       `{"variantId":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   domainerrors.ErrValidationFailed.ErrorCode(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := createTestCartHandler(t)
			c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/cart", tt.body)

			require.NoError(t, h.AddItem(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeEnvelope(t, rec).Code)
		})
	}
}

func TestCartHandler_GetCart(t *testing.T) {
	h, cartUC := createTestCartHandler(t)

	cartUC.EXPECT().GetCart(mock.Anything, (*uuid.UUID)(nil)).
		Return(&usecase.CartView{Items: []*entity.CartItem{}}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodGet, "/api/cart", "")
	// A malformed cookie counts as no cart
	c.Request().AddCookie(&http.Cookie{Name: "cart_id", Value: "not-a-uuid"})

	require.NoError(t, h.GetCart(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	view := decodeData[usecase.CartView](t, rec)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Total)
}

func TestCartHandler_UpdateItem(t *testing.T) {
	h, cartUC := createTestCartHandler(t)

	cartID := uuid.New()
	itemID := uuid.New()
	cartUC.EXPECT().UpdateItem(mock.Anything, &cartID, itemID, 0).Return(nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPut, "/api/cart", `{"itemId":"`+itemID.String()+`","qty":0}`)
	c.Request().AddCookie(&http.Cookie{Name: "cart_id", Value: cartID.String()})

	require.NoError(t, h.UpdateItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, string(decodeEnvelope(t, rec).Data))
}

func TestCartHandler_UpdateItem_UnknownLine(t *testing.T) {
	h, cartUC := createTestCartHandler(t)

	cartUC.EXPECT().UpdateItem(mock.Anything, (*uuid.UUID)(nil), mock.Anything, 3).
		Return(domainerrors.ErrCartItemNotFound)

	c, rec := newJSONContext(newTestEcho(), http.MethodPut, "/api/cart", `{"itemId":"`+uuid.NewString()+`","qty":3}`)

	require.NoError(t, h.UpdateItem(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domainerrors.ErrCartItemNotFound.ErrorCode(), decodeEnvelope(t, rec).Code)
}

func TestCartHandler_DeleteItem_ClearsCartAndCookie(t *testing.T) {
	h, cartUC := createTestCartHandler(t)

	cartID := uuid.New()
	cartUC.EXPECT().ClearCart(mock.Anything, &cartID).Return(nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodDelete, "/api/cart", "")
	c.Request().AddCookie(&http.Cookie{Name: "cart_id", Value: cartID.String()})

	require.NoError(t, h.DeleteItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := findCookie(rec, "cart_id")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestCartHandler_DeleteItem_SingleLine(t *testing.T) {
	h, cartUC := createTestCartHandler(t)

	cartID := uuid.New()
	itemID := uuid.New()
	cartUC.EXPECT().RemoveItem(mock.Anything, &cartID, itemID).Return(nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodDelete, "/api/cart?itemId="+itemID.String(), "")
	c.Request().AddCookie(&http.Cookie{Name: "cart_id", Value: cartID.String()})

	require.NoError(t, h.DeleteItem(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, findCookie(rec, "cart_id"))
}

func TestCartHandler_DeleteItem_MalformedItemID(t *testing.T) {
	h, _ := createTestCartHandler(t)

	c, rec := newJSONContext(newTestEcho(), http.MethodDelete, "/api/cart?itemId=abc", "")

	require.NoError(t, h.DeleteItem(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
