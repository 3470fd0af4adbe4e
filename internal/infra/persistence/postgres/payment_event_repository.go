package postgres

import (
	"context"
	"time"

	"morgenstar/internal/domain/entity"
	domainerrors "morgenstar/internal/domain/errors"
	"morgenstar/internal/domain/repository"
	"morgenstar/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// paymentEventRepository implements the repository.PaymentEventRepository interface.
type paymentEventRepository struct {
	db *gorm.DB
}

// NewPaymentEventRepository is the constructor for paymentEventRepository.
func NewPaymentEventRepository(db *gorm.DB) repository.PaymentEventRepository {
	return &paymentEventRepository{db: db}
}

// Create stores the event; the primary key on the processor event id rejects replays.
func (repo *paymentEventRepository) Create(ctx context.Context, event *entity.PaymentEvent) error {
	processedAt := event.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now()
	}

	eventM := &model.PaymentEventModel{
		ID:          event.ID,
		Type:        event.Type,
		OrderID:     event.OrderID,
		ProcessedAt: processedAt,
	}

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicatePaymentEvent
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record payment event")
	}

	return nil
}
