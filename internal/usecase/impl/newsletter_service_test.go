package impl

import (
	"context"
	"testing"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	mockRepo "morgenstar/internal/mocks/repository"
	"morgenstar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type newsletterServiceFixtures struct {
	service        usecase.NewsletterUsecase
	newsletterRepo *mockRepo.MockNewsletterRepository
}

func createTestNewsletterService(t *testing.T) newsletterServiceFixtures {
	newsletterRepo := mockRepo.NewMockNewsletterRepository(t)

	return newsletterServiceFixtures{
		service: NewNewsletterService(NewsletterServiceParams{
			NewsletterRepo: newsletterRepo,
			Logger:         newDiscardLogger(),
		}),
		newsletterRepo: newsletterRepo,
	}
}

func TestNewsletterService_Subscribe_New(t *testing.T) {
	fx := createTestNewsletterService(t)
	ctx := context.Background()

	fx.newsletterRepo.EXPECT().FindByEmail(ctx, "kaffee@example.de").Return(nil, repository.ErrSubscriberNotFound)
	fx.newsletterRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(s *entity.NewsletterSubscriber) bool {
			return s.Email == "kaffee@example.de" && s.Name == "Anna" && s.IsActive
		})).
		Return(nil)

	result, err := fx.service.Subscribe(ctx, "  Kaffee@Example.DE ", " Anna ")
	require.NoError(t, err)
	assert.Equal(t, usecase.SubscribeResultCreated, result)
}

func TestNewsletterService_Subscribe_Reactivates(t *testing.T) {
	fx := createTestNewsletterService(t)
	ctx := context.Background()
	existing := &entity.NewsletterSubscriber{ID: uuid.New(), Email: "kaffee@example.de", IsActive: false}

	fx.newsletterRepo.EXPECT().FindByEmail(ctx, "kaffee@example.de").Return(existing, nil)
	fx.newsletterRepo.EXPECT().SetActive(ctx, existing.ID, true, "").Return(nil)

	result, err := fx.service.Subscribe(ctx, "kaffee@example.de", "")
	require.NoError(t, err)
	assert.Equal(t, usecase.SubscribeResultReactivated, result)
}

func TestNewsletterService_Subscribe_AlreadyActive(t *testing.T) {
	fx := createTestNewsletterService(t)
	ctx := context.Background()
	existing := &entity.NewsletterSubscriber{ID: uuid.New(), Email: "kaffee@example.de", IsActive: true}

	fx.newsletterRepo.EXPECT().FindByEmail(ctx, "kaffee@example.de").Return(existing, nil)

	_, err := fx.service.Subscribe(ctx, "kaffee@example.de", "")
	assert.ErrorIs(t, err, domainerrors.ErrAlreadySubscribed)
}

func TestNewsletterService_Subscribe_InvalidEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr error
	}{
		{"", domainerrors.ErrEmailRequired},
		{"   ", domainerrors.ErrEmailRequired},
		{"kein-at-zeichen", domainerrors.ErrInvalidEmail},
		{"a@b", domainerrors.ErrInvalidEmail},
		{"mit leer@zeichen.de", domainerrors.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			fx := createTestNewsletterService(t)

			_, err := fx.service.Subscribe(context.Background(), tt.email, "")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewsletterService_Unsubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates", func(t *testing.T) {
		fx := createTestNewsletterService(t)
		existing := &entity.NewsletterSubscriber{ID: uuid.New(), Email: "kaffee@example.de", IsActive: true}
		fx.newsletterRepo.EXPECT().FindByEmail(ctx, "kaffee@example.de").Return(existing, nil)
		fx.newsletterRepo.EXPECT().SetActive(ctx, existing.ID, false, "").Return(nil)

		require.NoError(t, fx.service.Unsubscribe(ctx, "KAFFEE@example.de"))
	})

	t.Run("unknown address", func(t *testing.T) {
		fx := createTestNewsletterService(t)
		fx.newsletterRepo.EXPECT().FindByEmail(ctx, "niemand@example.de").Return(nil, repository.ErrSubscriberNotFound)

		assert.ErrorIs(t, fx.service.Unsubscribe(ctx, "niemand@example.de"), domainerrors.ErrSubscriberNotFound)
	})

	t.Run("already inactive", func(t *testing.T) {
		fx := createTestNewsletterService(t)
		existing := &entity.NewsletterSubscriber{ID: uuid.New(), Email: "kaffee@example.de"}
		fx.newsletterRepo.EXPECT().FindByEmail(ctx, "kaffee@example.de").Return(existing, nil)

		assert.ErrorIs(t, fx.service.Unsubscribe(ctx, "kaffee@example.de"), domainerrors.ErrSubscriberNotFound)
	})
}
