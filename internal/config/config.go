package config

import (
	"fmt"
	"time"

	"github.com/seokhojung/befunweb/internal/domain"
	"github.com/seokhojung/befunweb/internal/imageresolver"
	"github.com/seokhojung/befunweb/pkg/database"
	pkgconfig "github.com/seokhojung/befunweb/pkg/config"
	"github.com/seokhojung/befunweb/pkg/tracing"
)

// Image probe modes.
const (
	ProbeModeOff  = "off"
	ProbeModeHTTP = "http"
	ProbeModeFile = "file"
)

// Config holds all configuration for the catalog service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"CATALOG_HTTP_PORT" envDefault:"8020"`

	// Source feed. Empty uses the embedded sample catalog.
	FeedPath string `env:"CATALOG_FEED_PATH"`

	// Migration defaults
	UseRealImages           bool   `env:"MIGRATION_USE_REAL_IMAGES" envDefault:"false"`
	GenerateMissingVariants bool   `env:"MIGRATION_GENERATE_MISSING_VARIANTS" envDefault:"true"`
	FallbackCategory        string `env:"MIGRATION_FALLBACK_CATEGORY" envDefault:"bookcase"`
	MaxColorVariants        int    `env:"MIGRATION_MAX_COLOR_VARIANTS" envDefault:"12"`
	MigrationWorkers        int    `env:"MIGRATION_WORKERS" envDefault:"8"`

	// Generated asset layout
	ImageAssetRoot string `env:"IMAGE_ASSET_ROOT" envDefault:"/images/products/v2"`
	ImageAssetExt  string `env:"IMAGE_ASSET_EXT" envDefault:"png"`

	// Image existence probing
	ImageProbeMode      string  `env:"IMAGE_PROBE_MODE" envDefault:"off"`
	ImageProbeBaseURL   string  `env:"IMAGE_PROBE_BASE_URL"`
	ImageProbeDir       string  `env:"IMAGE_PROBE_DIR"`
	ImageProbeTimeoutMs int     `env:"IMAGE_PROBE_TIMEOUT_MS" envDefault:"500"`
	ImageProbeRPS       float64 `env:"IMAGE_PROBE_RPS" envDefault:"20"`
	ImageCacheTTLSecs   int     `env:"IMAGE_CACHE_TTL_SECONDS" envDefault:"600"`

	// Redis. An empty host keeps the probe cache in memory.
	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Kafka. No brokers disables migration events and the feed consumer.
	KafkaBrokers       []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaConsumerGroup string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"catalog-service"`
	FeedUpdatedTopic   string   `env:"CATALOG_FEED_TOPIC" envDefault:"catalog.feed.updated"`
	EventDedupTTLSecs  int      `env:"EVENT_DEDUP_TTL_SECONDS" envDefault:"86400"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Browser storefront origins
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load catalog config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	if cfg.OTELSampleRate < 0 || cfg.OTELSampleRate > 1.0 {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got %f", cfg.OTELSampleRate)
	}
	if cfg.MaxColorVariants <= 0 {
		return nil, fmt.Errorf("MIGRATION_MAX_COLOR_VARIANTS must be positive, got %d", cfg.MaxColorVariants)
	}
	if cfg.MigrationWorkers <= 0 {
		return nil, fmt.Errorf("MIGRATION_WORKERS must be positive, got %d", cfg.MigrationWorkers)
	}
	switch cfg.ImageProbeMode {
	case ProbeModeOff:
	case ProbeModeHTTP:
		if cfg.ImageProbeBaseURL == "" {
			return nil, fmt.Errorf("IMAGE_PROBE_BASE_URL is required when IMAGE_PROBE_MODE is %q", ProbeModeHTTP)
		}
	case ProbeModeFile:
		if cfg.ImageProbeDir == "" {
			return nil, fmt.Errorf("IMAGE_PROBE_DIR is required when IMAGE_PROBE_MODE is %q", ProbeModeFile)
		}
	default:
		return nil, fmt.Errorf("invalid IMAGE_PROBE_MODE %q (want off, http or file)", cfg.ImageProbeMode)
	}
	return cfg, nil
}

// MigrationConfig returns the default migration config.
func (c *Config) MigrationConfig() domain.MigrationConfig {
	return domain.MigrationConfig{
		UseRealImages:           c.UseRealImages,
		GenerateMissingVariants: c.GenerateMissingVariants,
		FallbackCategory:        c.FallbackCategory,
		MaxColorVariants:        c.MaxColorVariants,
	}
}

// Layout returns the generated asset layout.
func (c *Config) Layout() imageresolver.Layout {
	return imageresolver.Layout{Root: c.ImageAssetRoot, Ext: c.ImageAssetExt}
}

// EventDedupTTL returns how long consumed event IDs are remembered.
func (c *Config) EventDedupTTL() time.Duration {
	return time.Duration(c.EventDedupTTLSecs) * time.Second
}

// ProbeTimeout returns the per-path probe deadline.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ImageProbeTimeoutMs) * time.Millisecond
}

// CacheTTL returns how long probe results are cached.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.ImageCacheTTLSecs) * time.Second
}

// Redis returns the Redis connection settings.
func (c *Config) Redis() database.RedisConfig {
	rc := database.DefaultRedisConfig()
	rc.Host = c.RedisHost
	rc.Port = c.RedisPort
	rc.Password = c.RedisPassword
	rc.DB = c.RedisDB
	return rc
}

// Tracing returns the OpenTelemetry settings for the named service.
func (c *Config) Tracing(serviceName string) tracing.Config {
	tc := tracing.DefaultConfig(serviceName)
	tc.Environment = c.Environment
	tc.OTLPEndpoint = c.OTELEndpoint
	tc.SampleRate = c.OTELSampleRate
	tc.Enabled = c.OTELEnabled
	return tc
}
