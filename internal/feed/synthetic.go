package feed

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/seokhojung/befunweb/internal/domain"
	"github.com/seokhojung/befunweb/internal/palette"
)

// DefaultSyntheticSeed makes synthetic feeds reproducible across runs.
const DefaultSyntheticSeed = 42

// ---------------------------------------------------------------------------
// Category distribution
// ---------------------------------------------------------------------------

type categoryWeight struct {
	Category palette.Category
	Weight   float64 // share of records, sums to 1.0 with the blank bucket
	Nouns    []string
	Prefix   string
}

var syntheticCategories = []categoryWeight{
	{palette.Bookcase, 0.30, []string{"Bookcase", "Shelf", "Wall Shelf"}, "BKC"},
	{palette.Sofa, 0.10, []string{"Sofa", "Modular Sofa", "Corner Sofa"}, "SOF"},
	{palette.Chair, 0.10, []string{"Chair", "Armchair", "Dining Chair"}, "CHR"},
	{palette.Table, 0.10, []string{"Table", "Desk", "Side Table"}, "TBL"},
	{palette.Storage, 0.10, []string{"Wardrobe", "Sideboard", "Chest of Drawers"}, "STG"},
	{palette.Bed, 0.05, []string{"Bed", "Bed Frame"}, "BED"},
	{palette.Office, 0.05, []string{"Office Desk", "Filing Cabinet"}, "OFC"},
	{palette.Kitchen, 0.05, []string{"Kitchen Cabinet", "Pantry"}, "KIT"},
	{palette.Bathroom, 0.05, []string{"Bathroom Cabinet", "Vanity"}, "BTH"},
}

var nameSuffixes = []string{"", " with Doors", " with Drawers", " with Doors and Drawers", " with External Drawers"}

var offPaletteColors = []string{"Burgundy", "Gray", "Olive", "Terracotta"}

// Synthetic generates n reproducible records with the sparsity of a real
// feed: blank categories, missing variants, partial images, mixed currencies
// and duplicated colors.
func Synthetic(n int, seed int64) []domain.SourceRecord {
	rng := rand.New(rand.NewSource(seed))
	colors := palette.Colors()
	records := make([]domain.SourceRecord, 0, max(n, 0))

	for i := 1; i <= n; i++ {
		cw, blank := pickCategory(rng)
		id := fmt.Sprintf("%s-%05d", strings.ToLower(string(cw.Category)), i)
		if blank {
			id = fmt.Sprintf("item-%05d", i)
		}

		color := colors[rng.Intn(len(colors))].Name
		noun := cw.Nouns[rng.Intn(len(cw.Nouns))]
		rec := domain.SourceRecord{
			ID:   id,
			Name: fmt.Sprintf("%s in %s%s", noun, color, nameSuffixes[rng.Intn(len(nameSuffixes))]),
		}
		if !blank {
			rec.Category = string(cw.Category)
		}
		if rng.Intn(4) == 0 {
			rec.Slug = fmt.Sprintf("%s-%s-%d", strings.ToLower(strings.ReplaceAll(noun, " ", "-")), palette.NormalizeColor(color), i)
		}

		// Price: 99-2999 in one of the known currencies.
		price := domain.NewMoney(int64(99+rng.Intn(2900)), []string{domain.CurrencyEUR, domain.CurrencyUSD, domain.CurrencyKRW}[rng.Intn(3)])
		rec.Price = &price
		if rng.Intn(5) == 0 {
			pct := 10 + 5*rng.Intn(9)
			rec.Discount = &pct
			rec.FreeDelivery = rng.Intn(2) == 0
		}
		rec.IsNew = rng.Intn(6) == 0

		switch rng.Intn(4) {
		case 0:
			rec.Image = fmt.Sprintf("https://picsum.photos/seed/%s/800/600", id)
		case 1:
			rec.Images = []string{
				fmt.Sprintf("https://picsum.photos/seed/%s-0/800/600", id),
				fmt.Sprintf("https://picsum.photos/seed/%s-1/800/600", id),
			}
		}

		rec.Variants = syntheticVariants(rng, id, cw.Prefix, i, colors)
		records = append(records, rec)
	}
	return records
}

func pickCategory(rng *rand.Rand) (categoryWeight, bool) {
	r := rng.Float64()
	acc := 0.0
	for _, cw := range syntheticCategories {
		acc += cw.Weight
		if r < acc {
			return cw, false
		}
	}
	// Remaining share has no category and falls back at migration time.
	return syntheticCategories[0], true
}

func syntheticVariants(rng *rand.Rand, id, prefix string, index int, colors []palette.Color) []domain.SourceVariant {
	count := rng.Intn(5) // 0-4 declared variants
	var variants []domain.SourceVariant
	for j := 0; j < count; j++ {
		v := domain.SourceVariant{ID: fmt.Sprintf("%s-v%d", id, j+1)}

		switch rng.Intn(8) {
		case 0:
			// Size-only variant without a color.
			v.Options = map[string]string{"size": []string{"small", "standard", "large"}[rng.Intn(3)]}
		case 1:
			v.Options = map[string]string{"color": offPaletteColors[rng.Intn(len(offPaletteColors))]}
		case 2:
			// Lower-cased duplicate of an earlier color.
			if j > 0 && variants[0].Color() != "" {
				v.Options = map[string]string{"color": strings.ToLower(variants[0].Color())}
				break
			}
			fallthrough
		default:
			v.Options = map[string]string{"color": colors[rng.Intn(len(colors))].Name}
		}

		if rng.Intn(2) == 0 {
			v.SKU = fmt.Sprintf("%s-%05d-%d", prefix, index, j+1)
		}
		if rng.Intn(6) == 0 {
			v.Availability = []domain.Availability{domain.AvailabilityOutOfStock, domain.AvailabilityPreOrder}[rng.Intn(2)]
		}
		variants = append(variants, v)
	}
	return variants
}
