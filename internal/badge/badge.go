// Package badge derives promotional badges and labels from source records.
package badge

import (
	"strconv"

	"github.com/seokhojung/befunweb/internal/domain"
	"github.com/seokhojung/befunweb/internal/idhash"
)

// Badge priorities. Lower renders first.
const (
	PriorityDiscount   = 1
	PriorityNew        = 2
	PriorityBestseller = 3
)

// BestsellerModulus selects roughly one record in five as a top seller.
const BestsellerModulus = 5

const topSellerColor = "#BE7958"

var (
	discountStyle   = domain.BadgeStyle{BackgroundColor: "#FF3C00", Color: "#FFFF66"}
	newStyle        = domain.BadgeStyle{BackgroundColor: "#22C55E", Color: "#FFFFFF"}
	bestsellerStyle = domain.BadgeStyle{Color: topSellerColor}
)

// Generator builds badges and labels.
type Generator struct{}

// New creates a badge generator.
func New() *Generator {
	return &Generator{}
}

// Generate returns the badges of rec sorted by priority, and its labels.
func (g *Generator) Generate(rec domain.SourceRecord) ([]domain.Badge, []domain.Label) {
	badges := make([]domain.Badge, 0, 3)
	var labels []domain.Label

	if _, declared := rec.DeclaredDiscount(); declared || rec.OriginalPrice != nil {
		badges = append(badges, domain.Badge{
			Type:     domain.BadgeDiscount,
			Text:     discountText(rec),
			Style:    discountStyle,
			Priority: PriorityDiscount,
		})
	}

	if rec.IsNew {
		badges = append(badges, domain.Badge{
			Type:     domain.BadgeNew,
			Text:     "New",
			Style:    newStyle,
			Priority: PriorityNew,
		})
	}

	if IsBestseller(rec.ID) {
		badges = append(badges, domain.Badge{
			Type:     domain.BadgeBestseller,
			Text:     "Top seller",
			Style:    bestsellerStyle,
			Priority: PriorityBestseller,
		})
		labels = append(labels, domain.Label{Text: "Top seller", Color: topSellerColor})
	}

	domain.SortBadges(badges)
	return badges, labels
}

// IsBestseller reports whether id is selected as a top seller.
func IsBestseller(id string) bool {
	return idhash.Hash(id)%BestsellerModulus == 0
}

// DiscountPercent returns the declared discount, or the rate derived from
// the original and current price, or 0.
func DiscountPercent(rec domain.SourceRecord) int {
	if pct, ok := rec.DeclaredDiscount(); ok {
		return pct
	}
	if rec.OriginalPrice != nil && rec.Price != nil {
		return domain.DiscountRate(*rec.OriginalPrice, *rec.Price)
	}
	return 0
}

func discountText(rec domain.SourceRecord) string {
	text := "Sale"
	if pct := DiscountPercent(rec); pct != 0 {
		text = "-" + strconv.Itoa(pct) + "%"
	}
	if rec.FreeDelivery {
		text += " & Free delivery"
	}
	return text
}
