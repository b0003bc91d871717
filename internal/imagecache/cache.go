// Package imagecache remembers the outcome of image existence probes.
package imagecache

import (
	"context"
	"time"
)

// DefaultTTL is how long a probe result is trusted.
const DefaultTTL = 10 * time.Minute

// Cache stores whether an image path exists.
type Cache interface {
	// Get returns the cached existence of path. found is false on a miss.
	Get(ctx context.Context, path string) (exists, found bool, err error)
	// Set records the existence of path.
	Set(ctx context.Context, path string, exists bool) error
}
