package components

import (
	"activity-ledger/internal/handler"
	"activity-ledger/internal/handler/api"
	"activity-ledger/internal/handler/middleware"
	"activity-ledger/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		usecase.NewTokenValidator,
		api.NewBookingHandler,
		api.NewHistoryHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		func(b *api.BookingHandler, h *api.HistoryHandler, a *api.AdminHandler) handler.Handlers {
			return handler.Handlers{Booking: b, History: h, Admin: a}
		},
		func(obs middleware.RequestObserver, g prometheus.Gatherer, l middleware.Limiter) handler.Observability {
			return handler.Observability{Requests: obs, Gatherer: g, Limiter: l}
		},
	),
	fx.Invoke(handler.NewRouter),
)
