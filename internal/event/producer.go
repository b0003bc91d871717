package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seokhojung/befunweb/internal/domain"
	pkgkafka "github.com/seokhojung/befunweb/pkg/kafka"
	"github.com/seokhojung/befunweb/pkg/logger"
)

// Kafka topic constants for catalog events.
const (
	TopicMigrationCompleted = "catalog.migration.completed"
)

// Aggregate type constant.
const AggregateTypeMigration = "catalog_migration"

// Source identifier for events originating from the catalog service.
const SourceCatalogService = "catalog-service"

// MigrationCompletedData is the payload for a catalog.migration.completed event.
type MigrationCompletedData struct {
	RunID       string   `json:"run_id"`
	Total       int      `json:"total"`
	Converted   int      `json:"converted"`
	Retried     int      `json:"retried"`
	Excluded    int      `json:"excluded"`
	ExcludedIDs []string `json:"excluded_ids,omitempty"`
	DurationMS  int64    `json:"duration_ms"`
}

// Publisher is the Kafka capability the producer needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes catalog domain events. A Producer without a publisher
// drops events silently, which is how the service runs without Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer. kafka may be nil.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// Enabled reports whether events are actually sent.
func (p *Producer) Enabled() bool {
	return p != nil && p.kafka != nil
}

// PublishMigrationCompleted publishes a catalog.migration.completed event.
func (p *Producer) PublishMigrationCompleted(ctx context.Context, report *domain.MigrationReport) error {
	if !p.Enabled() {
		return nil
	}

	data := MigrationCompletedData{
		RunID:      report.RunID,
		Total:      report.Total,
		Converted:  report.Converted,
		Retried:    report.Retried,
		Excluded:   len(report.Excluded),
		DurationMS: report.Duration().Milliseconds(),
	}
	for _, ex := range report.Excluded {
		data.ExcludedIDs = append(data.ExcludedIDs, ex.ID)
	}

	event, err := pkgkafka.NewEvent(TopicMigrationCompleted, report.RunID, AggregateTypeMigration, SourceCatalogService, data)
	if err != nil {
		return fmt.Errorf("create catalog.migration.completed event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, TopicMigrationCompleted, event); err != nil {
		return fmt.Errorf("publish catalog.migration.completed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published catalog.migration.completed event",
		slog.String("run_id", report.RunID),
		slog.Int("converted", report.Converted),
	)

	return nil
}
