package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"activity-ledger/internal/handler/api"
	"activity-ledger/internal/handler/middleware"
	"activity-ledger/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking *api.BookingHandler
	History *api.HistoryHandler
	Admin   *api.AdminHandler
}

// Observability groups what the router needs for request metrics and the
// scrape endpoint. Limiter is nil when rate limiting is disabled.
type Observability struct {
	Requests middleware.RequestObserver
	Gatherer prometheus.Gatherer
	Limiter  middleware.Limiter
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware, obs Observability) {
	setupMiddleware(engine, cfg, obs)
	setupRoutes(engine, h, authMiddleware, obs)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, obs Observability) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	if obs.Requests != nil {
		engine.Use(middleware.RequestMetrics(obs.Requests))
	}
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, obs Observability) {
	engine.GET("/health", healthCheck)
	if obs.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(obs.Gatherer, promhttp.HandlerOpts{})))
	}

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var createMw []gin.HandlerFunc
	if obs.Limiter != nil {
		createMw = append(createMw, middleware.RateLimit(obs.Limiter))
	}

	apiGroup := engine.Group("/api")
	apiGroup.Use(authMiddleware.RequireAuth())
	{
		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodPost, Path: "", Handler: h.Booking.Create, Mw: createMw},
			{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
			{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
			{Method: http.MethodPost, Path: "/:id/attendance", Handler: h.Booking.ConfirmAttendance},
		})

		activities := apiGroup.Group("/activities")
		addRoutes(activities, []route{
			{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Booking.Availability},
			{Method: http.MethodGet, Path: "/:id/history", Handler: h.History.ForActivity},
		})

		history := apiGroup.Group("/history")
		addRoutes(history, []route{
			{Method: http.MethodGet, Path: "", Handler: h.History.List},
			{Method: http.MethodGet, Path: "/stats", Handler: h.History.Stats},
		})

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		addRoutes(admin, []route{
			{Method: http.MethodPost, Path: "/bookings/:id/confirm", Handler: h.Admin.ConfirmBooking},
			{Method: http.MethodPost, Path: "/history", Handler: h.Admin.RecordOutcome},
			{Method: http.MethodPost, Path: "/activities/:id/reconcile", Handler: h.Admin.ReconcileActivity},
		})
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
