package bootstrap

import (
	"activity-ledger/internal/handler/middleware"
	"activity-ledger/internal/infra/metrics"
	"activity-ledger/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewRegistry,
		func(r *prometheus.Registry) prometheus.Gatherer { return r },
		func(r *prometheus.Registry) prometheus.Registerer { return r },
		metrics.New,
		func(m *metrics.Metrics) shared.Metrics { return m },
		func(m *metrics.Metrics) middleware.RequestObserver { return m },
	),
)

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}
