package components

import (
	"activity-ledger/internal/pkg/clock"
	"activity-ledger/internal/pkg/config"
	"activity-ledger/internal/usecase/commands"
	"activity-ledger/internal/usecase/queries"
	"activity-ledger/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		func(uow shared.UnitOfWork, clk clock.Clock, m shared.Metrics, cfg config.Config) commands.BookingCommands {
			return commands.NewBookingUseCase(uow, clk, m, cfg.Booking.OpTimeout)
		},
		func(uow shared.UnitOfWork, clk clock.Clock, m shared.Metrics, cfg config.Config) commands.HistoryCommands {
			return commands.NewHistoryUseCase(uow, clk, m, cfg.Booking.OpTimeout)
		},
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		func(b queries.BookingReadStore, a queries.ActivityReadStore, cfg config.Config) queries.BookingQueries {
			return queries.NewBookingQueries(b, a, cfg.Booking.OpTimeout)
		},
		func(h queries.HistoryReadStore, cfg config.Config) queries.HistoryQueries {
			return queries.NewHistoryQueries(h, cfg.Booking.OpTimeout)
		},
	),
)
