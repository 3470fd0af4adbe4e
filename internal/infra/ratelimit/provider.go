// Package ratelimit counts API requests per client and path.
package ratelimit

import (
	"context"
	"log/slog"

	"morgenstar/config"
	"morgenstar/internal/domain/constants"
	"morgenstar/internal/domain/lifecycle"
	"morgenstar/internal/domain/service"
	"morgenstar/internal/errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

// Params defines the dependencies of the rate limiter
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New returns the store selected by rateLimit.store; memory is the default.
func New(params Params) (service.RateLimiter, error) {
	store := constants.RateLimitStoreMemory
	if params.Config.RateLimit != nil && params.Config.RateLimit.Store != "" {
		store = params.Config.RateLimit.Store
	}

	switch store {
	case constants.RateLimitStoreMemory:
		limiter := NewMemoryLimiter()
		params.Logger.Info("Using in-memory rate limiter")

		return limiter, nil

	case constants.RateLimitStoreRedis:
		redisCfg := params.Config.Redis
		if redisCfg == nil || redisCfg.Addr == "" {
			return nil, errors.New("redis address is required for redis rate limit store")
		}

		client := redis.NewClient(&redis.Options{
			Addr:     redisCfg.Addr,
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		})

		params.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
				defer cancel()

				// The limiter fails open, so an unreachable Redis is only reported.
				if err := client.Ping(ctx).Err(); err != nil {
					params.Logger.Warn("Redis not reachable, rate limiting fails open", slog.Any("error", err))
				}

				return nil
			},
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})

		params.Logger.Info("Using Redis rate limiter", slog.String("addr", redisCfg.Addr))

		return NewRedisLimiter(client), nil

	default:
		return nil, errors.Errorf("unknown rate limit store: %s", store)
	}
}
