package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	deliverycontext "morgenstar/internal/delivery/context"
	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/errors"
	"morgenstar/internal/usecase"

	"go.uber.org/fx"
)

var newsletterEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type newsletterService struct {
	newsletterRepo repository.NewsletterRepository
	logger         *slog.Logger
}

// NewsletterServiceParams holds dependencies for NewsletterService, injected by Fx.
type NewsletterServiceParams struct {
	fx.In

	NewsletterRepo repository.NewsletterRepository
	Logger         *slog.Logger
}

// NewNewsletterService creates the newsletter signup service
func NewNewsletterService(params NewsletterServiceParams) usecase.NewsletterUsecase {
	return &newsletterService{
		newsletterRepo: params.NewsletterRepo,
		logger:         params.Logger,
	}
}

func (srv *newsletterService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func normalizeNewsletterEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errors.WithStack(domainerrors.ErrEmailRequired)
	}
	if !newsletterEmailPattern.MatchString(email) {
		return "", errors.WithStack(domainerrors.ErrInvalidEmail)
	}

	return email, nil
}

// Subscribe signs up an address or reactivates a previous signup.
func (srv *newsletterService) Subscribe(ctx context.Context, email, name string) (usecase.SubscribeResult, error) {
	email, err := normalizeNewsletterEmail(email)
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)

	existing, err := srv.newsletterRepo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.IsActive:
		return "", errors.WithStack(domainerrors.ErrAlreadySubscribed)
	case err == nil:
		if err := srv.newsletterRepo.SetActive(ctx, existing.ID, true, name); err != nil {
			return "", errors.Wrap(err, "failed to reactivate subscriber")
		}
		srv.log(ctx).Info("Newsletter subscription reactivated", slog.String("subscriber_id", existing.ID.String()))

		return usecase.SubscribeResultReactivated, nil
	case !errors.Is(err, repository.ErrSubscriberNotFound):
		return "", errors.Wrap(err, "failed to look up subscriber")
	}

	subscriber := &entity.NewsletterSubscriber{Email: email, Name: name, IsActive: true}
	if err := srv.newsletterRepo.Create(ctx, subscriber); err != nil {
		if errors.Is(err, repository.ErrDuplicateSubscriber) {
			return "", errors.WithStack(domainerrors.ErrAlreadySubscribed)
		}

		return "", errors.Wrap(err, "failed to create subscriber")
	}

	srv.log(ctx).Info("Newsletter subscription created", slog.String("subscriber_id", subscriber.ID.String()))

	return usecase.SubscribeResultCreated, nil
}

// Unsubscribe deactivates a signup. The row is kept so the address can be reactivated.
func (srv *newsletterService) Unsubscribe(ctx context.Context, email string) error {
	email, err := normalizeNewsletterEmail(email)
	if err != nil {
		return err
	}

	existing, err := srv.newsletterRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrSubscriberNotFound) {
			return domainerrors.ErrSubscriberNotFound.WrapMessage("unsubscribe for unknown address")
		}

		return errors.Wrap(err, "failed to look up subscriber")
	}
	if !existing.IsActive {
		return errors.WithStack(domainerrors.ErrSubscriberNotFound)
	}

	if err := srv.newsletterRepo.SetActive(ctx, existing.ID, false, ""); err != nil {
		return errors.Wrap(err, "failed to deactivate subscriber")
	}

	srv.log(ctx).Info("Newsletter subscription deactivated", slog.String("subscriber_id", existing.ID.String()))

	return nil
}
