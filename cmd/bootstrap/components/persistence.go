package components

import (
	"activity-ledger/internal/infra/db"
	"activity-ledger/internal/infra/readstore"
	"activity-ledger/internal/infra/uow"
	"activity-ledger/internal/pkg/config"
	"activity-ledger/internal/usecase/queries"
	"activity-ledger/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

// Repositories are reached through shared.Tx, so only the read side and the
// unit of work are provided here.
var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewActivityReadStore,
			fx.As(new(queries.ActivityReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewHistoryReadStore,
			fx.As(new(queries.HistoryReadStore)),
		),
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		NewUnitOfWork,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewUnitOfWork(pool *pgxpool.Pool, cfg config.Config, metrics shared.Metrics) shared.UnitOfWork {
	return uow.NewPostgresUoW(pool, cfg.Booking, metrics)
}
