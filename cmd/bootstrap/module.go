package bootstrap

import (
	"dorm-services/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	components.PersistenceModule,
	components.IntegrationModule,
	components.UseCaseModule,
	components.HandlerModule,
)
