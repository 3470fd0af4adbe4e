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

func createTestUserHandler(t *testing.T) (*UserHandler, *mockUsecase.MockUserUsecase) {
	userUC := mockUsecase.NewMockUserUsecase(t)

	return NewUserHandler(UserHandlerParams{UserUC: userUC, Logger: testLogger}), userUC
}

func TestUserHandler_Register(t *testing.T) {
	h, userUC := createTestUserHandler(t)

	user := &entity.User{ID: uuid.New(), Email: "erika@example.de", Name: "Erika", PasswordHash: "$2a$hash", Role: entity.RoleCustomer}
	userUC.EXPECT().
		Register(mock.Anything, &usecase.RegisterUserInput{Name: "Erika", Email: "erika@example.de", Password: "geheim123"}).
		Return(&usecase.RegisterOutput{User: user}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/auth/register",
		`{"name":"Erika","email":"erika@example.de","password":"geheim123"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "$2a$hash")

	got := decodeData[RegisterResponse](t, rec)
	assert.Equal(t, "Benutzer erfolgreich registriert", got.Message)
	require.NotNil(t, got.User)
	assert.Equal(t, user.ID, got.User.ID)
}

func TestUserHandler_Register_Duplicate(t *testing.T) {
	h, userUC := createTestUserHandler(t)

	userUC.EXPECT().Register(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrUserAlreadyExists)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/auth/register",
		`{"name":"Erika","email":"erika@example.de","password":"geheim123"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, domainerrors.ErrUserAlreadyExists.Message(), decodeEnvelope(t, rec).Error)
}

func TestUserHandler_Login(t *testing.T) {
	h, userUC := createTestUserHandler(t)

	userUC.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Email: "erika@example.de", Password: "geheim123"}).
		Return(&usecase.LoginOutput{AccessToken: "access", RefreshToken: "refresh", User: &entity.User{Email: "erika@example.de"}}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/auth/login",
		`{"email":"erika@example.de","password":"geheim123"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	got := decodeData[TokenResponse](t, rec)
	assert.Equal(t, "access", got.AccessToken)
	assert.Equal(t, "refresh", got.RefreshToken)
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	h, userUC := createTestUserHandler(t)

	userUC.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/auth/login", `{"email":"x@example.de","password":"falsch"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, domainerrors.ErrInvalidCredentials.ErrorCode(), env.Code)
	assert.Nil(t, env.Details)
}

func TestUserHandler_Refresh_MissingToken(t *testing.T) {
	h, _ := createTestUserHandler(t)

	c, rec := newJSONContext(newTestEcho(), http.MethodPost, "/api/auth/refresh", `{}`)

	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Details, "refreshToken")
}

func TestUserHandler_Me(t *testing.T) {
	h, userUC := createTestUserHandler(t)

	userID := uuid.New()
	userUC.EXPECT().Profile(mock.Anything, userID).Return(&entity.User{ID: userID, Name: "Erika"}, nil)

	c, rec := newJSONContext(newTestEcho(), http.MethodGet, "/api/auth/me", "")
	signIn(c, userID)

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Erika", decodeData[entity.User](t, rec).Name)
}
