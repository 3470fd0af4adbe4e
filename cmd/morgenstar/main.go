package main

import (
	"context"
	"log/slog"

	"morgenstar/config"
	"morgenstar/internal/delivery"
	"morgenstar/internal/delivery/api"
	"morgenstar/internal/delivery/api/middleware"
	"morgenstar/internal/delivery/api/router/handler"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/infra/auth"
	logs "morgenstar/internal/infra/log"
	"morgenstar/internal/infra/mail"
	"morgenstar/internal/infra/notification"
	"morgenstar/internal/infra/payment"
	"morgenstar/internal/infra/persistence/postgres"
	"morgenstar/internal/infra/pubsub"
	"morgenstar/internal/infra/qrcode"
	"morgenstar/internal/infra/ratelimit"
	"morgenstar/internal/infra/storage"
	"morgenstar/internal/infra/telemetry"
	"morgenstar/internal/usecase"
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
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
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
			postgres.NewProductRepository,
			postgres.NewVariantRepository,
			postgres.NewCartRepository,
			postgres.NewOrderRepository,
			postgres.NewCouponRepository,
			postgres.NewPaymentEventRepository,
			postgres.NewWishlistRepository,
			postgres.NewNewsletterRepository,
			postgres.NewDeviceRepository,
			postgres.NewHealthRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			payment.NewStripeGateway,
			mail.NewMailer,
			mail.NewComposer,
			notification.New,
			newQRCodeService,
			storage.New,
			ratelimit.New,
			pubsub.NewEventPublisher,
			newInlineEventHandler,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService("", 256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.BaseURL, cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// newInlineEventHandler lets the inline publisher dispatch shop events in process.
func newInlineEventHandler(uc usecase.NotificationUsecase) service.EventHandler {
	return uc
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewCatalogService,
			impl.NewCartService,
			impl.NewCouponService,
			impl.NewOrderService,
			impl.NewPaymentService,
			impl.NewAdminService,
			impl.NewWishlistService,
			impl.NewNewsletterService,
			impl.NewDeviceService,
			impl.NewUploadService,
			impl.NewNotificationService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewRateLimitMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewHealthHandler,
			handler.NewCartHandler,
			handler.NewCatalogHandler,
			handler.NewCouponHandler,
			handler.NewNewsletterHandler,
			handler.NewUserHandler,
			handler.NewOrderHandler,
			handler.NewWishlistHandler,
			handler.NewDeviceHandler,
			handler.NewPaymentHandler,
			handler.NewAdminHandler,
			handler.NewUploadHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				params.Logger.Error("Failed to start server", slog.Any("error", err))
				if shutdownErr := params.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
					params.Logger.Error("Failed to shut down", slog.Any("error", shutdownErr))
				}
			}
		}()
	}
}
