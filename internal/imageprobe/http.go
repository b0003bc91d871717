// Package imageprobe checks whether image paths can actually be served,
// either over HTTP or from a local asset directory.
package imageprobe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/seokhojung/befunweb/internal/imageresolver"
)

// Header is the HEAD capability the HTTP prober needs.
// httpclient.CircuitBreakerClient satisfies it.
type Header interface {
	Head(ctx context.Context, url string) (*http.Response, error)
}

// HTTPProber issues rate-limited HEAD requests. Relative paths are resolved
// against baseURL; absolute URLs are probed as they are.
type HTTPProber struct {
	client  Header
	baseURL string
	limiter *rate.Limiter
}

// NewHTTPProber creates a prober allowing rps requests per second. A
// non-positive rps disables limiting.
func NewHTTPProber(client Header, baseURL string, rps float64) *HTTPProber {
	limit := rate.Inf
	burst := 1
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = max(1, int(rps))
	}
	return &HTTPProber{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Exists waits for a request slot and then probes path.
func (p *HTTPProber) Exists(ctx context.Context, path string) (bool, error) {
	if err := p.Wait(ctx); err != nil {
		return false, err
	}
	return p.Probe(ctx, path)
}

// Wait blocks until the rate limiter admits one request.
func (p *HTTPProber) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for probe slot: %w", err)
	}
	return nil
}

// Probe issues the HEAD request without consulting the limiter. It reports
// true for 2xx and 3xx responses and false for 4xx.
func (p *HTTPProber) Probe(ctx context.Context, path string) (bool, error) {
	target := path
	if !imageresolver.IsExternal(path) {
		if p.baseURL == "" {
			return false, fmt.Errorf("no base url to probe %q", path)
		}
		target = p.baseURL + "/" + strings.TrimLeft(path, "/")
	}

	resp, err := p.client.Head(ctx, target)
	if err != nil {
		return false, fmt.Errorf("probe %s: %w", target, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode < http.StatusBadRequest, nil
}
