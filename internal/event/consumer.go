package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/seokhojung/befunweb/internal/domain"
	pkgkafka "github.com/seokhojung/befunweb/pkg/kafka"
	"github.com/seokhojung/befunweb/pkg/logger"
)

// TopicFeedUpdated carries notifications that the source feed changed.
const TopicFeedUpdated = "catalog.feed.updated"

// FeedUpdatedData is the payload for a catalog.feed.updated event.
type FeedUpdatedData struct {
	Records int    `json:"records,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// Refresher reloads the catalog from its feed.
type Refresher interface {
	Refresh(ctx context.Context) (*domain.MigrationReport, error)
}

// FeedConsumer refreshes the catalog when the feed changes.
type FeedConsumer struct {
	catalog Refresher
	logger  *slog.Logger
}

// NewFeedConsumer creates a FeedConsumer.
func NewFeedConsumer(catalog Refresher, logger *slog.Logger) *FeedConsumer {
	return &FeedConsumer{catalog: catalog, logger: logger}
}

// Handle routes an event by type. Unknown types are logged and acknowledged.
func (c *FeedConsumer) Handle(ctx context.Context, event *pkgkafka.Event) error {
	if event.CorrelationID != "" {
		ctx = logger.WithCorrelationID(ctx, event.CorrelationID)
	}

	switch event.EventType {
	case TopicFeedUpdated:
		return c.handleFeedUpdated(ctx, event)
	default:
		c.logger.WarnContext(ctx, "ignoring unknown event type",
			slog.String("event_type", event.EventType),
			slog.String("event_id", event.EventID),
		)
		return nil
	}
}

func (c *FeedConsumer) handleFeedUpdated(ctx context.Context, event *pkgkafka.Event) error {
	var data FeedUpdatedData
	if len(event.Data) > 0 {
		if err := event.UnmarshalData(&data); err != nil {
			// A malformed payload still means the feed changed.
			c.logger.WarnContext(ctx, "unreadable feed.updated payload",
				slog.String("event_id", event.EventID),
				slog.String("error", err.Error()),
			)
		}
	}

	report, err := c.catalog.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh catalog after %s: %w", event.EventID, err)
	}

	c.logger.InfoContext(ctx, "catalog refreshed from feed event",
		slog.String("event_id", event.EventID),
		slog.String("reason", data.Reason),
		slog.String("run_id", report.RunID),
		slog.Int("converted", report.Converted),
	)
	return nil
}
