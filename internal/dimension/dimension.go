// Package dimension generates plausible, reproducible product dimensions.
package dimension

import (
	"fmt"
	"strings"

	"github.com/seokhojung/befunweb/internal/idhash"
	"github.com/seokhojung/befunweb/internal/palette"
)

// Default is returned when neither the category nor the fallback category
// has a range.
const Default = "120 x 180 cm"

// Generator maps (category, id) to a "W x H cm" string.
type Generator struct {
	ranges   map[palette.Category]palette.DimensionRange
	fallback palette.Category
}

// New returns a generator over the standard category ranges.
func New() *Generator {
	return NewWithRanges(palette.DimensionRanges(), palette.FallbackCategory)
}

// NewWithRanges returns a generator over a custom range table.
func NewWithRanges(ranges map[palette.Category]palette.DimensionRange, fallback palette.Category) *Generator {
	return &Generator{ranges: ranges, fallback: fallback}
}

// Generate returns the dimensions for id within category's range. The low
// bits of the id hash pick the width and the bits above the first byte pick
// the height, so both are stable for a given pair.
func (g *Generator) Generate(category, id string) string {
	r, ok := g.rangeFor(category)
	if !ok {
		return Default
	}

	h := idhash.Hash(id)
	width := r.Width.Min + int(h%uint32(r.Width.Span()))
	height := r.Height.Min + int((h>>8)%uint32(r.Height.Span()))
	return fmt.Sprintf("%d x %d cm", width, height)
}

func (g *Generator) rangeFor(category string) (palette.DimensionRange, bool) {
	if r, ok := g.ranges[palette.Category(strings.ToLower(strings.TrimSpace(category)))]; ok {
		return r, true
	}
	r, ok := g.ranges[g.fallback]
	return r, ok
}
