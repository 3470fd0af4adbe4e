package main

import (
	"context"
	"log/slog"
	"os"

	"morgenstar/config"
	"morgenstar/internal/domain/lifecycle"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/infra/auth"
	logs "morgenstar/internal/infra/log"
	"morgenstar/internal/infra/persistence/postgres"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	var (
		db     *gorm.DB
		logger *slog.Logger
		hasher service.PasswordHasher
	)

	app := fx.New(
		fx.NopLogger,
		fx.Provide(
			config.New,
			logs.New,
			postgres.New,
			auth.NewBcryptHasher,
		),
		fx.Populate(&db, &logger, &hasher),
	)

	startCtx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		slog.Error("Failed to start seed", slog.Any("error", err))
		os.Exit(1)
	}

	err := run(context.Background(), db, hasher, logger)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer stopCancel()
	if stopErr := app.Stop(stopCtx); stopErr != nil {
		logger.Error("Failed to stop seed", slog.Any("error", stopErr))
	}

	if err != nil {
		logger.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, db *gorm.DB, hasher service.PasswordHasher, logger *slog.Logger) error {
	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	logger.Info("Schema migrated")

	if err := seedCatalog(ctx, db); err != nil {
		return err
	}
	logger.Info("Demo catalogue loaded")

	if err := seedUsers(ctx, db, hasher); err != nil {
		return err
	}
	logger.Info("Demo accounts created")

	return nil
}
