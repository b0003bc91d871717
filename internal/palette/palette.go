// Package palette holds the fixed catalog policy tables: the canonical color
// palette, the closed set of furniture categories with their dimension
// ranges and display labels, and the color to thumbnail index map. Every
// lookup has an explicit fallback.
package palette

import (
	"strings"
)

// Category is a furniture category. The set is closed; unknown inputs are
// handled by the fallbacks of each lookup.
type Category string

const (
	Bookcase  Category = "bookcase"
	Furniture Category = "furniture"
	Sofa      Category = "sofa"
	Chair     Category = "chair"
	Table     Category = "table"
	Storage   Category = "storage"
	Bed       Category = "bed"
	Bedroom   Category = "bedroom"
	Kitchen   Category = "kitchen"
	Bathroom  Category = "bathroom"
	Office    Category = "office"
)

// FallbackCategory is used when a record carries no usable category.
const FallbackCategory = Bookcase

// DefaultFurnitureType is the label for categories without a mapping.
const DefaultFurnitureType = "Original Modern"

var furnitureTypes = map[Category]string{
	Bookcase:  "Original Modern",
	Furniture: "Original Modern",
	Sofa:      "Smooth",
	Chair:     "Classic",
	Table:     "Modern",
	Storage:   "Original",
	Bed:       "Comfort",
	Bedroom:   "Comfort",
	Kitchen:   "Contemporary",
	Bathroom:  "Minimalist",
	Office:    "Professional",
}

// ParseCategory normalizes s and reports whether it names a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	_, ok := furnitureTypes[c]
	return c, ok
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	return []Category{Bookcase, Furniture, Sofa, Chair, Table, Storage, Bed, Bedroom, Kitchen, Bathroom, Office}
}

// FurnitureType returns the display label for a category, falling back to
// DefaultFurnitureType.
func FurnitureType(category string) string {
	c, ok := ParseCategory(category)
	if !ok {
		return DefaultFurnitureType
	}
	return furnitureTypes[c]
}

// FurnitureTypes returns the distinct furniture type labels, sorted by first
// appearance in Categories.
func FurnitureTypes() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range Categories() {
		t := furnitureTypes[c]
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
