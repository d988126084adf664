package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cjvillanueva/casamar-backend/api/controllers"
	"github.com/cjvillanueva/casamar-backend/api/middleware"
	"github.com/cjvillanueva/casamar-backend/internal/bookings"
	"github.com/cjvillanueva/casamar-backend/internal/rooms"
	"github.com/cjvillanueva/casamar-backend/pkg/config"
	"github.com/cjvillanueva/casamar-backend/pkg/db"
	"github.com/cjvillanueva/casamar-backend/pkg/logger"
	pkgredis "github.com/cjvillanueva/casamar-backend/pkg/redis"
)

// RouterParams carries everything the HTTP surface needs. RedisClient and
// MetricsRegistry are optional.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              db.Pinger
	RedisClient     pkgredis.IdempotencyStore
	MetricsRegistry *prometheus.Registry
	RoomsService    *rooms.Service
	BookingsService *bookings.Service
}

func NewRouter(params RouterParams) http.Handler {
	cfg := params.Config
	logg := params.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, params.DB, logg))
	})

	if params.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(params.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", controllers.RoomsSearch(params.RoomsService, logg))
			r.Get("/{roomId}", controllers.RoomDetail(params.RoomsService, logg))
			r.Get("/{roomId}/availability", controllers.RoomAvailability(params.RoomsService, logg))
		})

		r.Group(func(r chi.Router) {
			if params.RedisClient != nil {
				r.Use(middleware.Idempotency(params.RedisClient, logg))
			}
			r.Post("/bookings", controllers.BookingCreate(params.BookingsService, logg))
		})
	})

	return r
}
