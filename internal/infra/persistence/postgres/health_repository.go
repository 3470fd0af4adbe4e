package postgres

import (
	"context"

	"morgenstar/internal/domain/repository"
	"morgenstar/internal/errors"

	"gorm.io/gorm"
)

type healthRepository struct {
	db *gorm.DB
}

// NewHealthRepository creates the database health check.
func NewHealthRepository(db *gorm.DB) repository.HealthRepository {
	return &healthRepository{db: db}
}

// Ping runs SELECT 1 on the primary.
func (r *healthRepository) Ping(ctx context.Context) error {
	var one int
	if err := r.db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return errors.Wrap(err, "database ping failed")
	}

	return nil
}
