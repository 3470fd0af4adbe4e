package postgres

import (
	"context"
	"strings"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// newsletterRepository implements the repository.NewsletterRepository interface.
type newsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository is the constructor for newsletterRepository.
func NewNewsletterRepository(db *gorm.DB) repository.NewsletterRepository {
	return &newsletterRepository{db: db}
}

// FindByEmail retrieves a subscriber by lower case email.
func (repo *newsletterRepository) FindByEmail(ctx context.Context, email string) (*entity.NewsletterSubscriber, error) {
	var subscriberM model.NewsletterSubscriberModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&subscriberM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSubscriberNotFound
		}

		return nil, errors.Wrap(err, "failed to find newsletter subscriber")
	}

	return toSubscriberDomain(&subscriberM), nil
}

// Create persists a new subscriber.
func (repo *newsletterRepository) Create(ctx context.Context, subscriber *entity.NewsletterSubscriber) error {
	subscriberM := &model.NewsletterSubscriberModel{
		Email:    strings.ToLower(subscriber.Email),
		Name:     subscriber.Name,
		IsActive: true,
	}

	if err := repo.db.WithContext(ctx).Create(subscriberM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSubscriber
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create newsletter subscriber")
	}

	*subscriber = *toSubscriberDomain(subscriberM)

	return nil
}

// SetActive (de)activates a subscriber; a non-empty name replaces the stored one.
func (repo *newsletterRepository) SetActive(ctx context.Context, id uuid.UUID, active bool, name string) error {
	changes := map[string]any{"is_active": active}
	if name != "" {
		changes["name"] = name
	}

	result := repo.db.WithContext(ctx).
		Model(&model.NewsletterSubscriberModel{}).
		Where("id = ?", id).
		Updates(changes)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update newsletter subscriber")
	}

	if result.RowsAffected == 0 {
		return repository.ErrSubscriberNotFound
	}

	return nil
}

// ListActive returns active subscribers newest first.
func (repo *newsletterRepository) ListActive(ctx context.Context) ([]*entity.NewsletterSubscriber, error) {
	var subscriberModels []*model.NewsletterSubscriberModel

	if err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&subscriberModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list newsletter subscribers")
	}

	subscribers := make([]*entity.NewsletterSubscriber, 0, len(subscriberModels))
	for _, subscriberM := range subscriberModels {
		subscribers = append(subscribers, toSubscriberDomain(subscriberM))
	}

	return subscribers, nil
}

func toSubscriberDomain(data *model.NewsletterSubscriberModel) *entity.NewsletterSubscriber {
	return &entity.NewsletterSubscriber{
		ID:        data.ID,
		Email:     data.Email,
		Name:      data.Name,
		IsActive:  data.IsActive,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
