package main

import (
	"context"
	"log/slog"

	"morgenstar/config"
	"morgenstar/internal/delivery"
	"morgenstar/internal/delivery/worker"
	"morgenstar/internal/delivery/worker/handler"
	logs "morgenstar/internal/infra/log"
	"morgenstar/internal/infra/mail"
	"morgenstar/internal/infra/notification"
	"morgenstar/internal/infra/persistence/postgres"
	"morgenstar/internal/infra/telemetry"
	"morgenstar/internal/usecase/impl"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	_ = godotenv.Load()

	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		telemetry.NewTracerProvider,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewOrderRepository,
			postgres.NewDeviceRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			mail.NewMailer,
			mail.NewComposer,
			notification.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewNotificationService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				params.Logger.Error("Failed to start worker server", slog.Any("error", err))
				if shutdownErr := params.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
					params.Logger.Error("Failed to shut down", slog.Any("error", shutdownErr))
				}
			}
		}()
	}
}
