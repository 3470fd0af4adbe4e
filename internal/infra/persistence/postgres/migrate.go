package postgres

import (
	"context"

	"morgenstar/internal/errors"
	"morgenstar/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Migrate creates the uuid_generate_v7 prerequisites and migrates all shop tables.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	// uuid_generate_v7() is provided by the pg_uuidv7 extension on older servers.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pg_uuidv7`).Error; err != nil {
		return errors.Wrap(err, "failed to enable pg_uuidv7")
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

// Ping checks database connectivity with SELECT 1.
func Ping(ctx context.Context, db *gorm.DB) error {
	var one int
	if err := db.WithContext(ctx).Raw("SELECT 1").Scan(&one).Error; err != nil {
		return errors.Wrap(err, "database ping failed")
	}

	return nil
}
