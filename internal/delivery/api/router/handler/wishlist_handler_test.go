package handler

import (
	"net/http"
	"testing"

	"morgenstar/internal/delivery/api/response"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	mockUsecase "morgenstar/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestWishlistHandler(t *testing.T) (*WishlistHandler, *mockUsecase.MockWishlistUsecase) {
	wishlistUC := mockUsecase.NewMockWishlistUsecase(t)

	return NewWishlistHandler(WishlistHandlerParams{WishlistUC: wishlistUC, Logger: testLogger}), wishlistUC
}

func TestWishlistHandler_Add(t *testing.T) {
	h, wishlistUC := createTestWishlistHandler(t)

	userID := uuid.New()
	productID := uuid.New()
	wishlistUC.EXPECT().Add(mock.Anything, userID, productID).
		Return(&entity.WishlistItem{ID: uuid.New(), UserID: userID, ProductID: productID}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/wishlist", `{"productId":"`+productID.String()+`"}`)
	signIn(c, userID)

	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, productID, decodeData[entity.WishlistItem](t, rec).ProductID)
}

func TestWishlistHandler_Add_Duplicate(t *testing.T) {
	h, wishlistUC := createTestWishlistHandler(t)

	wishlistUC.EXPECT().Add(mock.Anything, mock.Anything, mock.Anything).Return(nil, domainerrors.ErrWishlistDuplicate)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/wishlist", `{"productId":"`+uuid.NewString()+`"}`)
	signIn(c, uuid.New())

	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domainerrors.ErrWishlistDuplicate.ErrorCode(), decodeEnvelope(t, rec).Code)
}

func TestWishlistHandler_Add_RequiresSignIn(t *testing.T) {
	h, _ := createTestWishlistHandler(t)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/wishlist", `{"productId":"`+uuid.NewString()+`"}`)

	require.NoError(t, h.Add(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWishlistHandler_Remove(t *testing.T) {
	h, wishlistUC := createTestWishlistHandler(t)

	userID := uuid.New()
	productID := uuid.New()
	wishlistUC.EXPECT().Remove(mock.Anything, userID, productID).Return(nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodDelete, "/api/wishlist?productId="+productID.String(), "")
	signIn(c, userID)

	require.NoError(t, h.Remove(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Produkt von der Wunschliste entfernt", decodeData[response.MessageData](t, rec).Message)
}

func TestWishlistHandler_Remove_MissingProduct(t *testing.T) {
	h, _ := createTestWishlistHandler(t)

	c, rec := newJSONContext(newTestEcho(), http.MethodDelete, "/api/wishlist", "")
	signIn(c, uuid.New())

	require.NoError(t, h.Remove(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "productId is required", decodeEnvelope(t, rec).Details)
}
