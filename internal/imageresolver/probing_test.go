package imageresolver

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/seokhojung/befunweb/internal/imagecache/memory"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockProber struct {
	mock.Mock
}

func (m *mockProber) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

type blockingProber struct{}

func (blockingProber) Exists(ctx context.Context, _ string) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

// slowQueueProber admits requests only after wait, then answers at once.
type slowQueueProber struct {
	wait time.Duration
}

func (q slowQueueProber) Exists(ctx context.Context, path string) (bool, error) {
	if err := q.Wait(ctx); err != nil {
		return false, err
	}
	return q.Probe(ctx, path)
}

func (q slowQueueProber) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(q.wait):
		return nil
	}
}

func (slowQueueProber) Probe(ctx context.Context, _ string) (bool, error) {
	return ctx.Err() == nil, ctx.Err()
}

var generated = ImageSet{
	Main:      "/images/products/v2/main/desk-03-main.png",
	Hover:     "/images/products/v2/hover/desk-03-hover.png",
	Thumbnail: "/images/products/v2/thumbnail/swatch-white.png",
}

func TestVerify_AllPresent(t *testing.T) {
	prober := new(mockProber)
	prober.On("Exists", mock.Anything, mock.Anything).Return(true, nil)

	p := NewProbingResolver(New(), prober, nil, time.Second, newTestLogger())
	assert.Equal(t, generated, p.Verify(context.Background(), generated))
	prober.AssertNumberOfCalls(t, "Exists", 3)
}

func TestVerify_MissingReplacedPerRole(t *testing.T) {
	prober := new(mockProber)
	prober.On("Exists", mock.Anything, generated.Main).Return(true, nil)
	prober.On("Exists", mock.Anything, generated.Hover).Return(false, nil)
	prober.On("Exists", mock.Anything, generated.Thumbnail).Return(false, errors.New("connection reset"))

	p := NewProbingResolver(New(), prober, nil, time.Second, newTestLogger())
	got := p.Verify(context.Background(), generated)

	assert.Equal(t, generated.Main, got.Main)
	assert.Equal(t, DefaultHoverImage, got.Hover)
	assert.Equal(t, DefaultThumbnailImage, got.Thumbnail)
}

func TestVerify_TimeoutUsesDefault(t *testing.T) {
	p := NewProbingResolver(New(), blockingProber{}, nil, 10*time.Millisecond, newTestLogger())

	got := p.Verify(context.Background(), generated)
	assert.Equal(t, DefaultImages(), got)
}

func TestVerify_QueueWaitExcludedFromTimeout(t *testing.T) {
	p := NewProbingResolver(New(), slowQueueProber{wait: 50 * time.Millisecond}, nil, 10*time.Millisecond, newTestLogger())

	assert.Equal(t, generated, p.Verify(context.Background(), generated))
}

func TestVerify_QueueWaitHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewProbingResolver(New(), slowQueueProber{wait: time.Second}, nil, time.Second, newTestLogger())

	assert.Equal(t, DefaultImages(), p.Verify(ctx, generated))
}

func TestVerify_DefaultsNotProbed(t *testing.T) {
	prober := new(mockProber)

	p := NewProbingResolver(New(), prober, nil, time.Second, newTestLogger())
	assert.Equal(t, DefaultImages(), p.Verify(context.Background(), DefaultImages()))
	prober.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestVerify_CachesResults(t *testing.T) {
	prober := new(mockProber)
	prober.On("Exists", mock.Anything, generated.Main).Return(true, nil).Once()
	prober.On("Exists", mock.Anything, generated.Hover).Return(false, nil).Once()
	prober.On("Exists", mock.Anything, generated.Thumbnail).Return(true, nil).Once()

	cache := memory.New(time.Minute)
	p := NewProbingResolver(New(), prober, cache, time.Second, newTestLogger())

	first := p.Verify(context.Background(), generated)
	second := p.Verify(context.Background(), generated)

	assert.Equal(t, first, second)
	assert.Equal(t, DefaultHoverImage, second.Hover)
	assert.Equal(t, 3, cache.Len())
	prober.AssertExpectations(t)
}

func TestVerify_ProbeErrorsNotCached(t *testing.T) {
	prober := new(mockProber)
	prober.On("Exists", mock.Anything, mock.Anything).Return(false, errors.New("refused"))

	cache := memory.New(time.Minute)
	p := NewProbingResolver(New(), prober, cache, time.Second, newTestLogger())
	p.Verify(context.Background(), generated)

	assert.Equal(t, 0, cache.Len())
}

func TestProbingResolver_Resolve(t *testing.T) {
	prober := new(mockProber)
	prober.On("Exists", mock.Anything, mock.Anything).Return(false, nil)

	p := NewProbingResolver(NewDefault(DefaultLayout()), prober, nil, 0, newTestLogger())
	got := p.Resolve(context.Background(), Query{ProductID: "desk-3", Category: "desk", Color: "White"})
	assert.Equal(t, DefaultImages(), got)
}
