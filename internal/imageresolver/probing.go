package imageresolver

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/seokhojung/befunweb/internal/imagecache"
)

// DefaultProbeTimeout bounds a single existence probe.
const DefaultProbeTimeout = 500 * time.Millisecond

// Prober reports whether an image path can be served.
type Prober interface {
	Exists(ctx context.Context, path string) (bool, error)
}

// ThrottledProber queues requests behind a rate limit. Wait runs under the
// caller's context and only Probe is bounded by the probe timeout.
type ThrottledProber interface {
	Prober
	Wait(ctx context.Context) error
	Probe(ctx context.Context, path string) (bool, error)
}

// ProbingResolver verifies resolved images and replaces any that cannot be
// served with the default placeholder. Probe failures and timeouts count as
// missing. Results are cached when a cache is configured.
type ProbingResolver struct {
	base    *Resolver
	prober  Prober
	cache   imagecache.Cache
	timeout time.Duration
	logger  *slog.Logger
}

// NewProbingResolver wraps base. cache may be nil.
func NewProbingResolver(base *Resolver, prober Prober, cache imagecache.Cache, timeout time.Duration, logger *slog.Logger) *ProbingResolver {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &ProbingResolver{
		base:    base,
		prober:  prober,
		cache:   cache,
		timeout: timeout,
		logger:  logger,
	}
}

// Resolve runs the chain and verifies the result.
func (p *ProbingResolver) Resolve(ctx context.Context, q Query) ImageSet {
	return p.Verify(ctx, p.base.Resolve(q))
}

// Verify probes every role of set concurrently and substitutes the default
// placeholder for each one that is missing.
func (p *ProbingResolver) Verify(ctx context.Context, set ImageSet) ImageSet {
	fallback := DefaultImages()

	var (
		mu  sync.Mutex
		out = set
		g   errgroup.Group
	)
	for _, role := range Roles {
		path := set.Get(role)
		if path == "" || path == fallback.Get(role) {
			continue
		}
		g.Go(func() error {
			if p.exists(ctx, path) {
				return nil
			}
			mu.Lock()
			out = out.With(role, fallback.Get(role))
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (p *ProbingResolver) exists(ctx context.Context, path string) bool {
	if p.cache != nil {
		exists, found, err := p.cache.Get(ctx, path)
		if err != nil {
			p.logger.WarnContext(ctx, "image cache lookup failed",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		} else if found {
			return exists
		}
	}

	exists, err := p.probe(ctx, path)
	if err != nil {
		p.logger.DebugContext(ctx, "image probe failed",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		// Transient failures are not cached so the next run probes again.
		return false
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, path, exists); err != nil {
			p.logger.WarnContext(ctx, "image cache store failed",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}
	return exists
}

func (p *ProbingResolver) probe(ctx context.Context, path string) (bool, error) {
	throttled, ok := p.prober.(ThrottledProber)
	if ok {
		if err := throttled.Wait(ctx); err != nil {
			return false, err
		}
	}

	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if ok {
		return throttled.Probe(probeCtx, path)
	}
	return p.prober.Exists(probeCtx, path)
}
