package bootstrap

import (
	"activity-ledger/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is what every binary needs to run booking operations.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	MetricsModule,
	components.PersistenceModule,
	components.UseCaseModule,
)

// Module is the full HTTP server with its background workers.
var Module = fx.Options(
	CoreModule,
	JWTModule,
	BrokerModule,
	CacheModule,
	components.HandlerModule,
	components.WorkerModule,
)
