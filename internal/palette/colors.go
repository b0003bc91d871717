package palette

import (
	"strings"
)

// Color is a palette entry with its swatch color.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

var colors = []Color{
	{Name: "White", Hex: "#FFFFFF"},
	{Name: "Grey", Hex: "#9CA3AF"},
	{Name: "Brown", Hex: "#8B4513"},
	{Name: "Black", Hex: "#000000"},
	{Name: "Green", Hex: "#22C55E"},
	{Name: "Moss Green", Hex: "#4ADE80"},
	{Name: "Light Wood", Hex: "#D2B48C"},
	{Name: "Dark Wood", Hex: "#654321"},
	{Name: "Beige", Hex: "#F5F5DC"},
	{Name: "Sand", Hex: "#F4A460"},
	{Name: "Pink", Hex: "#FFC0CB"},
	{Name: "Blue", Hex: "#3B82F6"},
}

// Colors returns a copy of the ordered canonical palette.
func Colors() []Color {
	out := make([]Color, len(colors))
	copy(out, colors)
	return out
}

// DefaultColor is the palette entry forced into an otherwise empty variant list.
func DefaultColor() Color {
	return colors[0]
}

// LookupColor finds a palette entry by case-insensitive name.
func LookupColor(name string) (Color, bool) {
	key := NormalizeColor(name)
	for _, c := range colors {
		if NormalizeColor(c.Name) == key {
			return c, true
		}
	}
	return Color{}, false
}

// NormalizeColor lower-cases name and joins its words with hyphens:
// "Moss  Green" becomes "moss-green".
func NormalizeColor(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// thumbnailIndex positions a color within a product's thumbnail list.
// Grey and Gray share a slot, as do Green and Moss Green.
var thumbnailIndex = map[string]int{
	"white":      0,
	"grey":       1,
	"gray":       1,
	"brown":      2,
	"black":      3,
	"green":      4,
	"moss-green": 4,
	"blue":       5,
	"red":        6,
	"beige":      7,
}

// ThumbnailIndex returns the thumbnail slot for a color. Colors outside the
// map report false.
func ThumbnailIndex(color string) (int, bool) {
	i, ok := thumbnailIndex[NormalizeColor(color)]
	return i, ok
}
