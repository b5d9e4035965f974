package components

import (
	"context"
	"log/slog"

	"dorm-services/internal/infra/queue"
	"dorm-services/internal/infra/tokenstore"
	"dorm-services/internal/pkg/clock"
	"dorm-services/internal/pkg/config"
	"dorm-services/internal/usecase/commands"
	"dorm-services/internal/usecase/shared"

	"go.uber.org/fx"
)

// IntegrationModule wires the optional external services; each has an in-process fallback.
var IntegrationModule = fx.Module("integration",
	fx.Provide(
		NewTokenDenylist,
		NewEventPublisher,
	),
)

func NewTokenDenylist(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) (shared.TokenDenylist, error) {
	if cfg.Redis.URL == "" {
		slog.Info("REDIS_URL not set, token revocations are kept in memory")
		return tokenstore.NewMemoryDenylist(clk), nil
	}

	client, err := tokenstore.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return tokenstore.NewRedisDenylist(client, cfg.Redis.KeyPrefix, clk), nil
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, clk clock.Clock) commands.EventPublisher {
	if cfg.AMQP.URL == "" {
		slog.Info("AMQP_URL not set, reservation events are only logged")
		return queue.NewLogPublisher()
	}

	publisher := queue.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Queue, clk)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
