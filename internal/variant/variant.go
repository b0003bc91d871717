// Package variant builds the color variants of a catalog entry from declared
// source variants, topped up from the canonical palette.
package variant

import (
	"strconv"
	"strings"

	"github.com/seokhojung/befunweb/internal/domain"
	"github.com/seokhojung/befunweb/internal/imageresolver"
	"github.com/seokhojung/befunweb/internal/palette"
)

// Options controls a single synthesis.
type Options struct {
	Category      string
	MaxVariants   int
	Generate      bool
	UseRealImages bool
}

// Synthesizer derives color variants and their images.
type Synthesizer struct {
	resolver *imageresolver.Resolver
}

// New creates a synthesizer resolving images through resolver.
func New(resolver *imageresolver.Resolver) *Synthesizer {
	return &Synthesizer{resolver: resolver}
}

type declared struct {
	name    string
	source  domain.SourceVariant
	isSynth bool
}

// Synthesize returns the variants of rec and the ID of the default one. The
// result is never empty, holds at most opts.MaxVariants entries (minimum one)
// and has exactly one default.
func (s *Synthesizer) Synthesize(rec domain.SourceRecord, opts Options) ([]domain.ColorVariant, string) {
	limit := max(opts.MaxVariants, 1)

	colors := declaredColors(rec.Variants)
	if len(colors) > limit {
		colors = colors[:limit]
	}

	if opts.Generate {
		present := make(map[string]struct{}, len(colors))
		for _, c := range colors {
			present[strings.ToLower(c.name)] = struct{}{}
		}
		for _, p := range palette.Colors() {
			if len(colors) >= limit {
				break
			}
			if _, ok := present[strings.ToLower(p.Name)]; ok {
				continue
			}
			colors = append(colors, declared{name: p.Name, isSynth: true})
		}
	}

	if len(colors) == 0 {
		colors = append(colors, declared{name: palette.DefaultColor().Name, isSynth: true})
	}

	index := imageresolver.PaddedIndex(rec.ID)
	used := make(map[string]int, len(colors))
	variants := make([]domain.ColorVariant, 0, len(colors))
	for _, c := range colors {
		id := uniqueID(palette.NormalizeColor(c.name)+"-"+index, used)
		images := s.resolver.Resolve(imageresolver.Query{
			ProductID:     rec.ID,
			Slug:          rec.Slug,
			Category:      opts.Category,
			Color:         c.name,
			UseRealImages: opts.UseRealImages,
		})

		v := domain.ColorVariant{
			ID:           id,
			Name:         c.name,
			Thumbnail:    images.Thumbnail,
			MainImage:    images.Main,
			HoverImage:   images.Hover,
			SKU:          "BKC-" + id,
			Price:        rec.Price,
			Availability: domain.AvailabilityInStock,
		}
		if !c.isSynth {
			if c.source.SKU != "" {
				v.SKU = c.source.SKU
			}
			if c.source.Price != nil {
				v.Price = c.source.Price
			}
			v.Availability = c.source.Availability.OrInStock()
		}
		variants = append(variants, v)
	}

	def := defaultIndex(variants)
	variants[def].IsDefault = true
	return variants, variants[def].ID
}

// declaredColors extracts the non-empty color options of vs, de-duplicated
// case-insensitively in first-seen order.
func declaredColors(vs []domain.SourceVariant) []declared {
	seen := make(map[string]struct{}, len(vs))
	out := make([]declared, 0, len(vs))
	for _, v := range vs {
		name := strings.TrimSpace(v.Color())
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, declared{name: name, source: v})
	}
	return out
}

// ColorNames returns the de-duplicated declared color names of vs.
func ColorNames(vs []domain.SourceVariant) []string {
	ds := declaredColors(vs)
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.name
	}
	return out
}

func uniqueID(base string, used map[string]int) string {
	n := used[base]
	used[base] = n + 1
	if n == 0 {
		return base
	}
	for {
		n++
		id := base + "-" + strconv.Itoa(n)
		if _, taken := used[id]; !taken {
			used[id] = 1
			used[base] = n
			return id
		}
	}
}

func defaultIndex(vs []domain.ColorVariant) int {
	for i, v := range vs {
		if strings.Contains(strings.ToLower(v.Name), "white") {
			return i
		}
	}
	return 0
}
