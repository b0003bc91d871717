package imageprobe

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/seokhojung/befunweb/internal/imageresolver"
	"github.com/seokhojung/befunweb/pkg/httpclient"
)

func newAssetServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		assert.Equal(t, http.MethodHead, r.Method)
		switch r.URL.Path {
		case "/images/temp/bookcase-white-main.webp":
			w.WriteHeader(http.StatusOK)
		case "/moved.webp":
			w.WriteHeader(http.StatusNotModified)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient() *httpclient.Client {
	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	return httpclient.New(cfg)
}

// --- HTTPProber ---

func TestHTTPProber_Exists(t *testing.T) {
	srv := newAssetServer(t, nil)
	p := NewHTTPProber(newClient(), srv.URL+"/", 0)

	tests := []struct {
		path string
		want bool
	}{
		{"/images/temp/bookcase-white-main.webp", true},
		{"images/temp/bookcase-white-main.webp", true},
		{"/moved.webp", true},
		{"/images/temp/missing.webp", false},
		{srv.URL + "/images/temp/bookcase-white-main.webp", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := p.Exists(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHTTPProber_ServerErrorTripsBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	cbCfg := httpclient.DefaultCircuitBreakerConfig("image-probe-test")
	cbCfg.MinRequests = 1
	cb := httpclient.NewCircuitBreakerClient(newClient(), cbCfg, slog.New(slog.DiscardHandler))
	p := NewHTTPProber(cb, srv.URL, 0)

	_, err := p.Exists(context.Background(), "/a.webp")
	require.Error(t, err)

	_, err = p.Exists(context.Background(), "/a.webp")
	require.Error(t, err)
	assert.ErrorIs(t, err, httpclient.ErrCircuitOpen)
}

func TestHTTPProber_NoBaseURL(t *testing.T) {
	p := NewHTTPProber(newClient(), "", 0)
	_, err := p.Exists(context.Background(), "/a.webp")
	assert.Error(t, err)
}

func TestHTTPProber_RateLimitRespectsContext(t *testing.T) {
	var hits atomic.Int32
	srv := newAssetServer(t, &hits)
	p := NewHTTPProber(newClient(), srv.URL, 1)

	_, err := p.Exists(context.Background(), "/images/temp/bookcase-white-main.webp")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = p.Exists(ctx, "/images/temp/bookcase-white-main.webp")
	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestHTTPProber_QueuedProbesKeepExistingImages(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	// 60 HEAD requests at 20 rps queue for ~2s, far past the request timeout.
	prober := NewHTTPProber(newClient(), srv.URL, 20)
	verifier := imageresolver.NewProbingResolver(imageresolver.NewDefault(imageresolver.DefaultLayout()),
		prober, nil, 100*time.Millisecond, slog.New(slog.DiscardHandler))

	const sets = 20
	results := make([]imageresolver.ImageSet, sets)
	var g errgroup.Group
	g.SetLimit(8)
	for i := range sets {
		g.Go(func() error {
			var set imageresolver.ImageSet
			for _, role := range imageresolver.Roles {
				set = set.With(role, fmt.Sprintf("/images/products/v2/%s/sofa-%02d.png", role, i))
			}
			results[i] = verifier.Verify(context.Background(), set)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	defaults := imageresolver.DefaultImages()
	replaced := 0
	for _, set := range results {
		for _, role := range imageresolver.Roles {
			if set.Get(role) == defaults.Get(role) {
				replaced++
			}
		}
	}
	assert.Zero(t, replaced)
	assert.Equal(t, int32(sets*len(imageresolver.Roles)), hits.Load())
}

func TestHTTPProber_WaitThenProbe(t *testing.T) {
	var hits atomic.Int32
	srv := newAssetServer(t, &hits)
	p := NewHTTPProber(newClient(), srv.URL, 1)

	require.NoError(t, p.Wait(context.Background()))
	ok, err := p.Probe(context.Background(), "/images/temp/bookcase-white-main.webp")
	require.NoError(t, err)
	assert.True(t, ok)

	// Probe bypasses the limiter even with the only token spent.
	ok, err = p.Probe(context.Background(), "/images/temp/missing.webp")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int32(2), hits.Load())
}

// --- FileProber ---

func TestFileProber_Exists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "images", "temp"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "images", "temp", "bookcase-white-main.webp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "..swatch.webp"), []byte("x"), 0o644))

	p := NewFileProber(dir)
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"present", "/images/temp/bookcase-white-main.webp", true},
		{"missing", "/images/temp/bookcase-grey-main.webp", false},
		{"directory", "/images/temp", false},
		{"escape", "/../../etc/passwd", false},
		{"dot-dot prefixed name", "/..swatch.webp", true},
		{"external", "https://cdn.example.com/a.webp", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Exists(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileProber_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileProber(t.TempDir()).Exists(ctx, "/a.webp")
	assert.ErrorIs(t, err, context.Canceled)
}
