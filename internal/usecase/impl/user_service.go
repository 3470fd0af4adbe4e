// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const minPasswordLength = 6

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a customer account and announces it so the welcome mail goes out.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	name := strings.TrimSpace(input.Name)
	email := normalizeEmail(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, errors.WithStack(domainerrors.ErrRegistrationFieldsMissing)
	}
	if !newsletterEmailPattern.MatchString(email) {
		return nil, errors.WithStack(domainerrors.ErrInvalidEmail)
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return nil, errors.WithStack(domainerrors.ErrPasswordTooShort)
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
		Role:         entity.RoleCustomer,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			srv.log(ctx).Warn("Registration for existing email", slog.String("email", email))

			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	event := newShopEvent(ctx, service.ShopEventUserRegistered)
	event.UserID = newUser.ID.String()
	event.Email = newUser.Email
	event.Name = newUser.Name
	publishShopEvent(ctx, srv.publisher, srv.log(ctx), event)

	srv.log(ctx).Debug("Registration completed", slog.String("user_id", newUser.ID.String()))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login checks the credentials and issues a token pair. Unknown emails and wrong
// passwords fail the same way.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown email", slog.String("email", email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login attempt with wrong password", slog.String("user_id", user.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	return srv.issueTokens(ctx, user)
}

// Refresh trades a valid refresh token for a new token pair.
func (srv *userService) Refresh(ctx context.Context, refreshToken string) (*usecase.LoginOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(strings.TrimSpace(refreshToken))
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("refresh token rejected")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidToken.WrapMessage("refresh token for deleted account")
		}

		return nil, errors.Wrap(err, "failed to load user for refresh")
	}

	return srv.issueTokens(ctx, user)
}

func (srv *userService) issueTokens(ctx context.Context, user *entity.User) (*usecase.LoginOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Roles().ToStrings())
	if err != nil {
		srv.log(ctx).Error("Failed to generate tokens", slog.String("user_id", user.ID.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (srv *userService) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}
