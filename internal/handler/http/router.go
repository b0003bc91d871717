package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/seokhojung/befunweb/internal/service"
	"github.com/seokhojung/befunweb/pkg/health"
	"github.com/seokhojung/befunweb/pkg/middleware"
)

// ServiceName labels HTTP metrics and server spans.
const ServiceName = "catalog-service"

// listCacheMaxAge is the Cache-Control max-age for catalog reads, in seconds.
const listCacheMaxAge = 60

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cors middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cors))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(ServiceName))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	catalogHandler := NewCatalogHandler(catalogService, logger)

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(listCacheMaxAge))
			r.Get("/", catalogHandler.ListEntries)
			r.Get("/colors", catalogHandler.ListColors)
			r.Get("/{id}", catalogHandler.GetEntry)
		})

		r.Post("/migrations", catalogHandler.RunMigration)
		r.Get("/migrations/latest", catalogHandler.LatestMigration)
	})

	return r
}
