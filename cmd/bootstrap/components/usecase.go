package components

import (
	"dorm-services/internal/domain/space"
	"dorm-services/internal/domain/user"
	"dorm-services/internal/infra/catalogfile"
	"dorm-services/internal/pkg/clock"
	"dorm-services/internal/pkg/config"
	"dorm-services/internal/pkg/metrics"
	"dorm-services/internal/usecase"
	"dorm-services/internal/usecase/commands"
	"dorm-services/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	metrics.New,
	func(cfg config.Config) (*space.Catalog, error) {
		return catalogfile.Load(cfg.Catalog.File)
	},
	func(cfg config.Config) (*user.Admin, error) {
		return user.NewAdmin(cfg.Admin.User, cfg.Admin.PasswordHash)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewReservationCommands,
		commands.NewComplaintCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewComplaintQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
