package impl

import (
	"context"
	"testing"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/domain/service"
	mockRepo "morgenstar/internal/mocks/repository"
	mockSvc "morgenstar/internal/mocks/service"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service      usecase.UserUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	publisher    *mockSvc.MockEventPublisher
}

func createTestUserService(t *testing.T) userServiceFixtures {
	fixtures := userServiceFixtures{
		userRepo:     mockRepo.NewMockUserRepository(t),
		hasher:       mockSvc.NewMockPasswordHasher(t),
		tokenService: mockSvc.NewMockTokenService(t),
		publisher:    mockSvc.NewMockEventPublisher(t),
	}

	fixtures.service = NewUserService(UserServiceParams{
		UserRepo:     fixtures.userRepo,
		Hasher:       fixtures.hasher,
		TokenService: fixtures.tokenService,
		Publisher:    fixtures.publisher,
		Logger:       newDiscardLogger(),
	})

	return fixtures
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("geheim123").Return("$2a$12$hash", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(user *entity.User) bool {
			return user.Email == "max@example.de" &&
				user.Name == "Max Mustermann" &&
				user.PasswordHash == "$2a$12$hash" &&
				user.Role == entity.RoleCustomer
		})).
		Run(func(_ context.Context, user *entity.User) { user.ID = uuid.New() }).
		Return(nil)
	fx.publisher.EXPECT().
		PublishShopEvent(ctx, mock.MatchedBy(func(event *service.ShopEvent) bool {
			return event.Type == service.ShopEventUserRegistered &&
				event.Email == "max@example.de" &&
				event.Name == "Max Mustermann" &&
				event.EventID != ""
		})).
		Return(nil)

	out, err := fx.service.Register(ctx, &usecase.RegisterUserInput{
		Name:     " Max Mustermann ",
		Email:    "Max@Example.de",
		Password: "geheim123",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, out.User.ID)
	assert.Equal(t, "max@example.de", out.User.Email)
}

func TestUserService_Register_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		input   *usecase.RegisterUserInput
		wantErr error
	}{
		{"missing name", &usecase.RegisterUserInput{Email: "a@b.de", Password: "geheim123"}, domainerrors.ErrRegistrationFieldsMissing},
		{"missing email", &usecase.RegisterUserInput{Name: "A", Password: "geheim123"}, domainerrors.ErrRegistrationFieldsMissing},
		{"missing password", &usecase.RegisterUserInput{Name: "A", Email: "a@b.de"}, domainerrors.ErrRegistrationFieldsMissing},
		{"malformed email", &usecase.RegisterUserInput{Name: "A", Email: "a-at-b", Password: "geheim123"}, domainerrors.ErrInvalidEmail},
		{"short password", &usecase.RegisterUserInput{Name: "A", Email: "a@b.de", Password: "12345"}, domainerrors.ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestUserService(t)

			_, err := fx.service.Register(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("geheim123").Return("hash", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(repository.ErrDuplicateUser)

	_, err := fx.service.Register(ctx, &usecase.RegisterUserInput{Name: "A", Email: "a@b.de", Password: "geheim123"})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	fx.publisher.AssertNotCalled(t, "PublishShopEvent", mock.Anything, mock.Anything)
}

func TestUserService_Register_PublishFailureIsIgnored(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("geheim123").Return("hash", nil)
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	fx.publisher.EXPECT().PublishShopEvent(ctx, mock.Anything).Return(errors.New("pubsub unavailable"))

	_, err := fx.service.Register(ctx, &usecase.RegisterUserInput{Name: "A", Email: "a@b.de", Password: "geheim123"})
	require.NoError(t, err)
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "admin@morgenstar.de", PasswordHash: "hash", Role: entity.RoleAdmin}

	t.Run("success", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.userRepo.EXPECT().FindByEmail(ctx, "admin@morgenstar.de").Return(user, nil)
		fx.hasher.EXPECT().Check("geheim123", "hash").Return(true)
		fx.tokenService.EXPECT().
			GenerateTokens(user.ID, []string{"customer", "admin"}).
			Return("access", "refresh", nil)

		out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: " ADMIN@morgenstar.de", Password: "geheim123"})
		require.NoError(t, err)
		assert.Equal(t, "access", out.AccessToken)
		assert.Equal(t, "refresh", out.RefreshToken)
		assert.Equal(t, user, out.User)
	})

	t.Run("wrong password", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.userRepo.EXPECT().FindByEmail(ctx, "admin@morgenstar.de").Return(user, nil)
		fx.hasher.EXPECT().Check("falsch", "hash").Return(false)

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "admin@morgenstar.de", Password: "falsch"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.userRepo.EXPECT().FindByEmail(ctx, "wer@example.de").Return(nil, repository.ErrUserNotFound)

		_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "wer@example.de", Password: "geheim123"})
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	})
}

func TestUserService_Refresh(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "kunde@example.de", Role: entity.RoleCustomer}

	t.Run("issues new pair", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.tokenService.EXPECT().ValidateRefreshToken("refresh-token").
			Return(&service.Claims{UserID: user.ID, Type: service.TokenTypeRefresh}, nil)
		fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
		fx.tokenService.EXPECT().GenerateTokens(user.ID, []string{"customer"}).Return("a2", "r2", nil)

		out, err := fx.service.Refresh(ctx, "refresh-token")
		require.NoError(t, err)
		assert.Equal(t, "a2", out.AccessToken)
		assert.Equal(t, "r2", out.RefreshToken)
	})

	t.Run("invalid token", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.tokenService.EXPECT().ValidateRefreshToken("access-token").Return(nil, errors.New("wrong token type"))

		_, err := fx.service.Refresh(ctx, "access-token")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	})

	t.Run("deleted account", func(t *testing.T) {
		fx := createTestUserService(t)
		fx.tokenService.EXPECT().ValidateRefreshToken("refresh-token").
			Return(&service.Claims{UserID: user.ID, Type: service.TokenTypeRefresh}, nil)
		fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(nil, repository.ErrUserNotFound)

		_, err := fx.service.Refresh(ctx, "refresh-token")
		assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	})
}

func TestUserService_Profile(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: uuid.New()}

	fx := createTestUserService(t)
	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil).Once()
	got, err := fx.service.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)

	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(nil, repository.ErrUserNotFound).Once()
	_, err = fx.service.Profile(ctx, user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
