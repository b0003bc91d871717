package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/seokhojung/befunweb/internal/config"
	"github.com/seokhojung/befunweb/internal/event"
	"github.com/seokhojung/befunweb/internal/feed"
	handler "github.com/seokhojung/befunweb/internal/handler/http"
	"github.com/seokhojung/befunweb/internal/imagecache"
	memcache "github.com/seokhojung/befunweb/internal/imagecache/memory"
	rediscache "github.com/seokhojung/befunweb/internal/imagecache/redis"
	"github.com/seokhojung/befunweb/internal/imageprobe"
	"github.com/seokhojung/befunweb/internal/imageresolver"
	"github.com/seokhojung/befunweb/internal/repository/memory"
	"github.com/seokhojung/befunweb/internal/service"
	"github.com/seokhojung/befunweb/pkg/database"
	"github.com/seokhojung/befunweb/pkg/health"
	"github.com/seokhojung/befunweb/pkg/httpclient"
	pkgkafka "github.com/seokhojung/befunweb/pkg/kafka"
	"github.com/seokhojung/befunweb/pkg/middleware"
	"github.com/seokhojung/befunweb/pkg/tracing"
)

// initialMigrationTimeout bounds the migration run at startup.
const initialMigrationTimeout = 2 * time.Minute

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	redis          *goredis.Client
	producer       *pkgkafka.Producer
	consumer       *pkgkafka.Consumer
	catalog        *service.CatalogService
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Initialize tracing.
	shutdown, err := tracing.InitTracer(ctx, cfg.Tracing(handler.ServiceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = shutdown

	healthHandler := health.NewHandler()

	// Initialize Redis when configured.
	if redisCfg := cfg.Redis(); redisCfg.Enabled() {
		client, err := database.NewRedisClient(ctx, redisCfg)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.redis = client
		healthHandler.Register("redis", database.RedisChecker(client))
		logger.Info("connected to Redis", slog.String("addr", redisCfg.Addr()))
	}

	// Initialize Kafka producer when brokers are configured.
	var eventProducer *event.Producer
	if len(cfg.KafkaBrokers) > 0 {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		eventProducer = event.NewProducer(a.producer, logger)
		healthHandler.Register("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		eventProducer = event.NewProducer(nil, logger)
		logger.Info("kafka disabled; migration events are not published")
	}

	// Build the dependency graph.
	resolver := imageresolver.NewDefault(cfg.Layout())
	verifier, err := a.newVerifier(resolver)
	if err != nil {
		a.close()
		return nil, err
	}

	migrator := service.NewMigrator(resolver, cfg.MigrationWorkers, logger)
	repo := memory.New()
	a.catalog = service.NewCatalogService(
		repo, migrator, feed.New(cfg.FeedPath), verifier, eventProducer, cfg.MigrationConfig(), logger,
	)

	// Health checks.
	healthHandler.Register("catalog", a.catalog.Ready)

	if len(cfg.KafkaBrokers) > 0 {
		a.consumer = a.newFeedConsumer()
	}

	// HTTP router.
	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins
	router := handler.NewRouter(a.catalog, healthHandler, logger, cors)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// newVerifier returns the image verifier for the configured probe mode, or
// nil when probing is off.
func (a *App) newVerifier(resolver *imageresolver.Resolver) (service.ImageVerifier, error) {
	var prober imageresolver.Prober
	switch a.cfg.ImageProbeMode {
	case config.ProbeModeHTTP:
		client := httpclient.NewCircuitBreakerClient(
			httpclient.New(httpclient.DefaultConfig()),
			httpclient.DefaultCircuitBreakerConfig("image-probe"),
			a.logger,
		)
		prober = imageprobe.NewHTTPProber(client, a.cfg.ImageProbeBaseURL, a.cfg.ImageProbeRPS)
	case config.ProbeModeFile:
		prober = imageprobe.NewFileProber(a.cfg.ImageProbeDir)
	default:
		return nil, nil
	}

	var cache imagecache.Cache
	if a.redis != nil {
		cache = rediscache.New(a.redis, a.cfg.CacheTTL())
	} else {
		cache = memcache.New(a.cfg.CacheTTL())
	}

	a.logger.Info("image probing enabled",
		slog.String("mode", a.cfg.ImageProbeMode),
		slog.Bool("redis_cache", a.redis != nil),
	)
	return imageresolver.NewProbingResolver(resolver, prober, cache, a.cfg.ProbeTimeout(), a.logger), nil
}

// newFeedConsumer subscribes to feed change notifications. Duplicate
// deliveries are dropped using Redis when available.
func (a *App) newFeedConsumer() *pkgkafka.Consumer {
	var store pkgkafka.IdempotencyStore
	if a.redis != nil {
		store = pkgkafka.NewRedisIdempotencyStore(a.redis, "catalog:events:", a.cfg.EventDedupTTL())
	} else {
		store = pkgkafka.NewMemoryIdempotencyStore(a.cfg.EventDedupTTL())
	}

	feedConsumer := event.NewFeedConsumer(a.catalog, a.logger)
	return pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
		Brokers:  a.cfg.KafkaBrokers,
		GroupID:  a.cfg.KafkaConsumerGroup,
		Topic:    a.cfg.FeedUpdatedTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	}, pkgkafka.IdempotentHandler(store, feedConsumer.Handle, a.logger), a.logger)
}

// Run starts the HTTP server, loads the catalog and blocks until the context
// is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go a.loadCatalog(ctx)

	if consumer := a.consumer; consumer != nil {
		go func() {
			if err := consumer.Start(ctx); err != nil {
				a.logger.Error("feed consumer error", slog.String("error", err.Error()))
			}
		}()
	}

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.close()
		return err
	}

	return a.Shutdown()
}

// loadCatalog runs the initial migration. Readiness stays down until it
// succeeds; a failure is logged and left for POST /migrations to retry.
func (a *App) loadCatalog(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, initialMigrationTimeout)
	defer cancel()

	report, err := a.catalog.Refresh(ctx)
	if err != nil {
		a.logger.Error("initial catalog migration failed", slog.String("error", err.Error()))
		return
	}
	a.logger.Info("catalog loaded",
		slog.String("run_id", report.RunID),
		slog.Int("converted", report.Converted),
		slog.Int("excluded", len(report.Excluded)),
	)
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.close()

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}

func (a *App) close() {
	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
		}
		a.consumer = nil
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
		a.producer = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
		a.redis = nil
	}
}
