package domain

// ColorVariant is a display-ready color option of a catalog entry.
type ColorVariant struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Thumbnail    string       `json:"thumbnail"`
	MainImage    string       `json:"main_image"`
	HoverImage   string       `json:"hover_image"`
	IsDefault    bool         `json:"is_default"`
	SKU          string       `json:"sku"`
	Price        *Money       `json:"price,omitempty"`
	Availability Availability `json:"availability"`
}

// BadgeType identifies a promotional badge.
type BadgeType string

// Badge types.
const (
	BadgeDiscount   BadgeType = "discount"
	BadgeNew        BadgeType = "new"
	BadgeBestseller BadgeType = "bestseller"
)

// BadgeStyle is a rendering hint for a badge.
type BadgeStyle struct {
	BackgroundColor string `json:"background_color,omitempty"`
	Color           string `json:"color,omitempty"`
	Border          string `json:"border,omitempty"`
}

// Badge is a promotional marker. Lower Priority renders first.
type Badge struct {
	Type     BadgeType  `json:"type"`
	Text     string     `json:"text"`
	Style    BadgeStyle `json:"style"`
	Priority int        `json:"priority"`
}

// Label is a short text tag shown next to the product name.
type Label struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// CatalogEntry is a fully derived, display-ready product.
//
// Invariants for every entry produced by the migrator:
//   - ColorVariants is non-empty and no longer than the configured cap;
//   - exactly one variant has IsDefault set and DefaultVariantID names it;
//   - ExactDimensions depends only on (category, ID);
//   - Badges are sorted by ascending Priority.
type CatalogEntry struct {
	SourceRecord

	MainImage         string         `json:"main_image"`
	HoverImage        string         `json:"hover_image,omitempty"`
	ColorVariants     []ColorVariant `json:"color_variants"`
	DefaultVariantID  string         `json:"default_variant_id"`
	SelectedVariantID string         `json:"selected_variant_id"`
	FurnitureType     string         `json:"furniture_type"`
	ExactDimensions   string         `json:"exact_dimensions"`
	ColorName         string         `json:"color_name"`
	Badges            []Badge        `json:"badges"`
	Labels            []Label        `json:"labels,omitempty"`
}
