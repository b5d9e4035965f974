package components

import (
	"context"
	"fmt"

	"dorm-services/internal/infra/db"
	"dorm-services/internal/infra/memstore"
	"dorm-services/internal/infra/uow"
	"dorm-services/internal/pkg/config"
	"dorm-services/internal/usecase/shared"

	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork picks the store from STORAGE_DRIVER. A postgres connection failure aborts startup.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config) (shared.UnitOfWork, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return memstore.NewUnitOfWork(memstore.NewReservationStore(), memstore.NewComplaintStore()), nil
	case config.StoragePostgres:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error {
				if cleanup != nil {
					cleanup()
				}
				return nil
			},
		})
		return uow.NewPostgresUoW(pool), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
