package imageresolver

import (
	"strings"

	"github.com/seokhojung/befunweb/internal/palette"
)

// Default placeholder paths. They are the last resort of every chain.
const (
	DefaultMainImage      = "/images/temp/bookcase-default-main.webp"
	DefaultHoverImage     = "/images/temp/bookcase-default-lifestyle.webp"
	DefaultThumbnailImage = "/images/temp/bookcase-default-thumb.webp"
)

// DefaultImages returns the default placeholder set.
func DefaultImages() ImageSet {
	return ImageSet{Main: DefaultMainImage, Hover: DefaultHoverImage, Thumbnail: DefaultThumbnailImage}
}

// ProductImages are the curated images of one product. Thumbnails is
// addressed by palette.ThumbnailIndex; ThumbnailsByColor by normalized
// color name and wins when both have an entry.
type ProductImages struct {
	Main              string
	Hover             string
	Thumbnails        []string
	ThumbnailsByColor map[string]string
}

func (p ProductImages) thumbnail(color string) string {
	if t := p.ThumbnailsByColor[palette.NormalizeColor(color)]; t != "" {
		return t
	}
	if i, ok := palette.ThumbnailIndex(color); ok && i < len(p.Thumbnails) {
		return p.Thumbnails[i]
	}
	return ""
}

// ProductMapping is tier 1: images curated per product, keyed by slug or ID.
type ProductMapping struct {
	products map[string]ProductImages
}

// NewProductMapping builds a tier-1 strategy over products.
func NewProductMapping(products map[string]ProductImages) ProductMapping {
	return ProductMapping{products: products}
}

func (ProductMapping) Name() string { return "product_mapping" }

func (m ProductMapping) Resolve(q Query) (ImageSet, bool) {
	p, ok := m.products[q.Slug]
	if !ok || q.Slug == "" {
		if p, ok = m.products[q.ProductID]; !ok {
			return ImageSet{}, false
		}
	}
	return ImageSet{Main: p.Main, Hover: p.Hover, Thumbnail: p.thumbnail(q.Color)}, true
}

// CategoryColorMapping is tier 2: a (category, color) lookup table.
type CategoryColorMapping struct {
	table map[palette.Category]map[string]ImageSet
}

// NewCategoryColorMapping builds a tier-2 strategy. Color keys must be
// normalized with palette.NormalizeColor.
func NewCategoryColorMapping(table map[palette.Category]map[string]ImageSet) CategoryColorMapping {
	return CategoryColorMapping{table: table}
}

func (CategoryColorMapping) Name() string { return "category_color" }

func (m CategoryColorMapping) Resolve(q Query) (ImageSet, bool) {
	byColor, ok := m.table[palette.Category(strings.ToLower(strings.TrimSpace(q.Category)))]
	if !ok {
		return ImageSet{}, false
	}
	set, ok := byColor[palette.NormalizeColor(q.Color)]
	return set, ok
}

// GeneratedPlaceholder is tier 3: paths following Layout. It supplies nothing
// without a root or a category, and no thumbnail without a color.
type GeneratedPlaceholder struct {
	Layout Layout
}

func (GeneratedPlaceholder) Name() string { return "generated_placeholder" }

func (g GeneratedPlaceholder) Resolve(q Query) (ImageSet, bool) {
	category := strings.ToLower(strings.TrimSpace(q.Category))
	if g.Layout.Root == "" || category == "" {
		return ImageSet{}, false
	}
	idx := PaddedIndex(q.ProductID)
	set := ImageSet{
		Main:  g.Layout.Main(category, idx),
		Hover: g.Layout.Hover(category, idx),
	}
	if palette.NormalizeColor(q.Color) != "" {
		set.Thumbnail = g.Layout.Swatch(q.Color)
	}
	return set, true
}
