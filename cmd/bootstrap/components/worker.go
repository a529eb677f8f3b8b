package components

import (
	"context"

	"activity-ledger/internal/infra/outbox"
	"activity-ledger/internal/pkg/clock"
	"activity-ledger/internal/pkg/config"
	"activity-ledger/internal/usecase/shared"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		func(uow shared.UnitOfWork, pub outbox.Publisher, clk clock.Clock, m shared.Metrics, cfg config.Config) *outbox.Relay {
			return outbox.NewRelay(uow, pub, clk, m, cfg.Broker)
		},
	),
	fx.Invoke(startRelay),
)

func startRelay(lc fx.Lifecycle, relay *outbox.Relay) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			// the start context is cancelled once startup finishes
			relay.Start(context.Background())
			return nil
		},
		OnStop: func(_ context.Context) error {
			relay.Stop()
			return nil
		},
	})
}
