package bootstrap

import (
	"log/slog"

	"dorm-services/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	fx.Invoke(logConfigSummary),
)

// logConfigSummary records which optional backends are active; secrets are never logged.
func logConfigSummary(cfg config.Config, logger *slog.Logger) {
	logger.Info("configuration loaded",
		"storage", cfg.Storage.Driver,
		"redis_denylist", cfg.Redis.URL != "",
		"amqp_events", cfg.AMQP.URL != "",
		"catalog_file", cfg.Catalog.File,
		"jwt_duration", cfg.JWT.Duration,
	)
}
