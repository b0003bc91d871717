// Package placeholder renders flat-color stand-in assets at the paths the
// generated placeholder strategy points to, so a fresh deployment serves
// real files instead of 404s.
package placeholder

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/seokhojung/befunweb/internal/imageresolver"
	"github.com/seokhojung/befunweb/internal/palette"
)

// Canvas colors and sizes.
const (
	MainBackground  = "#F3F4F6"
	HoverBackground = "#E5E7EB"
	markColor       = "#D1D5DB"

	ProductWidth  = 800
	ProductHeight = 600
	SwatchSize    = 64

	DefaultCount = 34
)

// Options controls what Generate writes.
type Options struct {
	// Categories to render main and hover images for.
	Categories []string
	// Count is the number of product indices per category, starting at 01.
	Count int
	// Workers bounds concurrent file writes.
	Workers int
}

// DefaultOptions renders bookcase images 01 to 34.
func DefaultOptions() Options {
	return Options{
		Categories: []string{string(palette.Bookcase)},
		Count:      DefaultCount,
		Workers:    4,
	}
}

// Result counts the files written.
type Result struct {
	Main     int `json:"main"`
	Hover    int `json:"hover"`
	Swatches int `json:"swatches"`
}

// Total returns the number of files written.
func (r Result) Total() int {
	return r.Main + r.Hover + r.Swatches
}

// Generator writes placeholder assets under an output directory using a
// Layout for the relative paths.
type Generator struct {
	layout imageresolver.Layout
	logger *slog.Logger
}

// New creates a generator for layout.
func New(layout imageresolver.Layout, logger *slog.Logger) *Generator {
	return &Generator{layout: layout, logger: logger}
}

type job struct {
	path    string
	width   int
	height  int
	fill    color.NRGBA
	mark    bool
	counter *atomic.Int64
}

// Generate writes main and hover images for every category and index in
// opts, plus one swatch per palette color. Existing files are overwritten.
func (g *Generator) Generate(ctx context.Context, outDir string, opts Options) (Result, error) {
	if _, err := imaging.FormatFromFilename(g.layout.Swatch("white")); err != nil {
		return Result{}, fmt.Errorf("placeholder extension %q: %w", g.layout.Ext, err)
	}
	if opts.Count < 0 {
		return Result{}, fmt.Errorf("placeholder count must not be negative, got %d", opts.Count)
	}

	mainFill, err := ParseHex(MainBackground)
	if err != nil {
		return Result{}, err
	}
	hoverFill, err := ParseHex(HoverBackground)
	if err != nil {
		return Result{}, err
	}

	var mainN, hoverN, swatchN atomic.Int64
	var jobs []job
	for _, category := range opts.Categories {
		category = strings.ToLower(strings.TrimSpace(category))
		if category == "" {
			continue
		}
		for i := 1; i <= opts.Count; i++ {
			index := fmt.Sprintf("%02d", i)
			jobs = append(jobs,
				job{path: g.layout.Main(category, index), width: ProductWidth, height: ProductHeight, fill: mainFill, mark: true, counter: &mainN},
				job{path: g.layout.Hover(category, index), width: ProductWidth, height: ProductHeight, fill: hoverFill, counter: &hoverN},
			)
		}
	}
	for _, c := range palette.Colors() {
		fill, err := ParseHex(c.Hex)
		if err != nil {
			return Result{}, fmt.Errorf("palette color %s: %w", c.Name, err)
		}
		jobs = append(jobs, job{path: g.layout.Swatch(c.Name), width: SwatchSize, height: SwatchSize, fill: fill, counter: &swatchN})
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(opts.Workers, 1))
	for _, j := range jobs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := write(filepath.Join(outDir, filepath.FromSlash(j.path)), j); err != nil {
				return err
			}
			j.counter.Add(1)
			return nil
		})
	}
	err = eg.Wait()

	res := Result{Main: int(mainN.Load()), Hover: int(hoverN.Load()), Swatches: int(swatchN.Load())}
	if err != nil {
		return res, err
	}

	g.logger.InfoContext(ctx, "placeholder assets generated",
		slog.String("dir", outDir),
		slog.Int("main", res.Main),
		slog.Int("hover", res.Hover),
		slog.Int("swatches", res.Swatches),
	)
	return res, nil
}

func write(dst string, j job) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create placeholder directory: %w", err)
	}

	var img image.Image = imaging.New(j.width, j.height, j.fill)
	if j.mark {
		mark, _ := ParseHex(markColor)
		box := imaging.New(j.width/3, j.height/3, mark)
		img = imaging.PasteCenter(img, box)
	}

	if err := imaging.Save(img, dst, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("save placeholder %s: %w", dst, err)
	}
	return nil
}

// ParseHex parses a #RRGGBB color.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
