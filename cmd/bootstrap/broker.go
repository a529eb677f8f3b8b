package bootstrap

import (
	"context"
	"log/slog"

	"activity-ledger/internal/infra/broker"
	"activity-ledger/internal/infra/outbox"
	"activity-ledger/internal/pkg/config"

	"go.uber.org/fx"
)

var BrokerModule = fx.Module("broker",
	fx.Provide(
		NewPublisher,
	),
)

// NewPublisher falls back to logging events when AMQP_URL is unset.
func NewPublisher(lc fx.Lifecycle, cfg config.Config) (outbox.Publisher, error) {
	if !cfg.Broker.Enabled() {
		slog.Warn("AMQP_URL not set, outbox events will only be logged")
		return broker.LogPublisher{}, nil
	}

	pub, err := broker.NewPublisher(cfg.Broker)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return pub.Close()
		},
	})
	return pub, nil
}
