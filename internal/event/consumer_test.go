package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/seokhojung/befunweb/internal/domain"
	pkgkafka "github.com/seokhojung/befunweb/pkg/kafka"
	"github.com/seokhojung/befunweb/pkg/logger"
)

type mockRefresher struct {
	mock.Mock
}

func (m *mockRefresher) Refresh(ctx context.Context) (*domain.MigrationReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*domain.MigrationReport)
	return report, args.Error(1)
}

func feedEvent(t *testing.T, data any) *pkgkafka.Event {
	t.Helper()
	ev, err := pkgkafka.NewEvent(TopicFeedUpdated, "feed", "catalog_feed", "feed-service", data)
	require.NoError(t, err)
	return ev
}

func TestFeedConsumer_RefreshesOnFeedUpdated(t *testing.T) {
	r := new(mockRefresher)
	r.On("Refresh", mock.Anything).Return(sampleReport(), nil).Once()

	c := NewFeedConsumer(r, newTestLogger())
	require.NoError(t, c.Handle(context.Background(), feedEvent(t, FeedUpdatedData{Records: 120, Reason: "nightly export"})))

	r.AssertExpectations(t)
}

func TestFeedConsumer_PropagatesCorrelationID(t *testing.T) {
	r := new(mockRefresher)
	r.On("Refresh", mock.MatchedBy(func(ctx context.Context) bool {
		return logger.CorrelationIDFromContext(ctx) == "corr-9"
	})).Return(sampleReport(), nil).Once()

	ev := feedEvent(t, FeedUpdatedData{}).WithCorrelationID("corr-9")
	require.NoError(t, NewFeedConsumer(r, newTestLogger()).Handle(context.Background(), ev))

	r.AssertExpectations(t)
}

func TestFeedConsumer_RefreshError(t *testing.T) {
	r := new(mockRefresher)
	r.On("Refresh", mock.Anything).Return(nil, errors.New("feed unreadable"))

	err := NewFeedConsumer(r, newTestLogger()).Handle(context.Background(), feedEvent(t, FeedUpdatedData{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed unreadable")
}

func TestFeedConsumer_MalformedPayloadStillRefreshes(t *testing.T) {
	r := new(mockRefresher)
	r.On("Refresh", mock.Anything).Return(sampleReport(), nil).Once()

	ev := feedEvent(t, FeedUpdatedData{})
	ev.Data = json.RawMessage(`"not an object"`)
	require.NoError(t, NewFeedConsumer(r, newTestLogger()).Handle(context.Background(), ev))

	r.AssertExpectations(t)
}

func TestFeedConsumer_IgnoresUnknownType(t *testing.T) {
	r := new(mockRefresher)

	ev := feedEvent(t, FeedUpdatedData{})
	ev.EventType = "catalog.something.else"
	require.NoError(t, NewFeedConsumer(r, newTestLogger()).Handle(context.Background(), ev))

	r.AssertNotCalled(t, "Refresh", mock.Anything)
}
