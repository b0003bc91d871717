package imageprobe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/seokhojung/befunweb/internal/imageresolver"
)

// FileProber checks paths against a local static asset directory, the way a
// web server rooted at dir would serve them.
type FileProber struct {
	dir string
}

// NewFileProber creates a prober rooted at dir.
func NewFileProber(dir string) *FileProber {
	return &FileProber{dir: dir}
}

// Exists reports whether path names a regular file under the root. External
// URLs cannot be checked locally and are reported present.
func (p *FileProber) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if imageresolver.IsExternal(path) {
		return true, nil
	}

	rel := filepath.FromSlash(strings.TrimLeft(path, "/"))
	full := filepath.Join(p.dir, rel)
	if r, err := filepath.Rel(p.dir, full); err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return false, nil
	}

	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", full, err)
	}
	return info.Mode().IsRegular(), nil
}
