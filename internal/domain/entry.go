package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Variant returns the variant with the given ID.
func (e *CatalogEntry) Variant(id string) (ColorVariant, bool) {
	for _, v := range e.ColorVariants {
		if v.ID == id {
			return v, true
		}
	}
	return ColorVariant{}, false
}

// DefaultVariant returns the default variant. It falls back to the first
// variant for entries that were not produced by the migrator.
func (e *CatalogEntry) DefaultVariant() (ColorVariant, bool) {
	if v, ok := e.Variant(e.DefaultVariantID); ok {
		return v, true
	}
	for _, v := range e.ColorVariants {
		if v.IsDefault {
			return v, true
		}
	}
	if len(e.ColorVariants) > 0 {
		return e.ColorVariants[0], true
	}
	return ColorVariant{}, false
}

// SelectedVariant returns the currently selected variant, or the default.
func (e *CatalogEntry) SelectedVariant() (ColorVariant, bool) {
	if v, ok := e.Variant(e.SelectedVariantID); ok {
		return v, true
	}
	return e.DefaultVariant()
}

// WithSelectedVariant returns a copy of e with id selected. The receiver is
// not modified.
func (e CatalogEntry) WithSelectedVariant(id string) (CatalogEntry, error) {
	if _, ok := e.Variant(id); !ok {
		return CatalogEntry{}, fmt.Errorf("entry %s has no variant %q", e.ID, id)
	}
	e.SelectedVariantID = id
	return e, nil
}

// HasDiscount reports whether a discount badge is present.
func (e *CatalogEntry) HasDiscount() bool {
	return e.hasBadge(BadgeDiscount)
}

// IsTopSeller reports whether a bestseller badge is present.
func (e *CatalogEntry) IsTopSeller() bool {
	return e.hasBadge(BadgeBestseller)
}

func (e *CatalogEntry) hasBadge(t BadgeType) bool {
	for _, b := range e.Badges {
		if b.Type == t {
			return true
		}
	}
	return false
}

// DiscountPercentage returns the declared discount, or the rate implied by
// the original price, or 0.
func (e *CatalogEntry) DiscountPercentage() int {
	if pct, ok := e.DeclaredDiscount(); ok {
		return pct
	}
	if e.OriginalPrice != nil && e.Price != nil {
		return DiscountRate(*e.OriginalPrice, *e.Price)
	}
	return 0
}

// AvailableColors returns the variant names in display order.
func (e *CatalogEntry) AvailableColors() []string {
	out := make([]string, len(e.ColorVariants))
	for i, v := range e.ColorVariants {
		out[i] = v.Name
	}
	return out
}

// ColorCount returns the number of color variants.
func (e *CatalogEntry) ColorCount() int {
	return len(e.ColorVariants)
}

// BadgesByPriority returns a copy of the badges sorted by priority.
func (e *CatalogEntry) BadgesByPriority() []Badge {
	out := make([]Badge, len(e.Badges))
	copy(out, e.Badges)
	SortBadges(out)
	return out
}

// SortBadges orders badges by ascending priority, keeping the relative
// order of equal priorities.
func SortBadges(badges []Badge) {
	sort.SliceStable(badges, func(i, j int) bool {
		return badges[i].Priority < badges[j].Priority
	})
}

// MatchesFurnitureType reports whether the entry has the given label,
// ignoring case.
func (e *CatalogEntry) MatchesFurnitureType(t string) bool {
	return strings.EqualFold(e.FurnitureType, strings.TrimSpace(t))
}
