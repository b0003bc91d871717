package dimension

import (
	"fmt"
	"regexp"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seokhojung/befunweb/internal/idhash"
	"github.com/seokhojung/befunweb/internal/palette"
)

var dimPattern = regexp.MustCompile(`^(\d+) x (\d+) cm$`)

func parse(t *testing.T, s string) (int, int) {
	t.Helper()
	m := dimPattern.FindStringSubmatch(s)
	require.Len(t, m, 3, "unexpected format %q", s)
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	return w, h
}

func TestGenerate_Formula(t *testing.T) {
	g := New()
	id := "bookcase-001"
	h := idhash.Hash(id)

	want := fmt.Sprintf("%d x %d cm", 80+int(h%244), 123+int((h>>8)%160))
	assert.Equal(t, want, g.Generate("bookcase", id))
}

func TestGenerate_Deterministic(t *testing.T) {
	g1, g2 := New(), New()
	for _, id := range []string{"a", "bookcase-007", "sofa-xyz", ""} {
		assert.Equal(t, g1.Generate("sofa", id), g2.Generate("sofa", id))
	}
}

func TestGenerate_WithinRange(t *testing.T) {
	g := New()
	for cat, r := range palette.DimensionRanges() {
		for i := 0; i < 200; i++ {
			w, h := parse(t, g.Generate(string(cat), fmt.Sprintf("p-%d", i)))
			assert.GreaterOrEqual(t, w, r.Width.Min)
			assert.Less(t, w, r.Width.Max)
			assert.GreaterOrEqual(t, h, r.Height.Min)
			assert.Less(t, h, r.Height.Max)
		}
	}
}

func TestGenerate_CaseInsensitiveCategory(t *testing.T) {
	g := New()
	assert.Equal(t, g.Generate("chair", "c-1"), g.Generate("  CHAIR ", "c-1"))
}

func TestGenerate_UnknownCategoryUsesFallback(t *testing.T) {
	g := New()
	assert.Equal(t, g.Generate("bookcase", "k-9"), g.Generate("kitchen", "k-9"))
	assert.Equal(t, g.Generate("bookcase", "k-9"), g.Generate("", "k-9"))
}

func TestGenerate_NoFallbackRange(t *testing.T) {
	g := NewWithRanges(map[palette.Category]palette.DimensionRange{
		palette.Sofa: {Width: palette.Range{Min: 148, Max: 234}, Height: palette.Range{Min: 85, Max: 113}},
	}, palette.Bookcase)

	assert.Equal(t, Default, g.Generate("chair", "x"))
	assert.NotEqual(t, Default, g.Generate("sofa", "x"))
}

func TestGenerate_DegenerateRange(t *testing.T) {
	g := NewWithRanges(map[palette.Category]palette.DimensionRange{
		palette.Table: {Width: palette.Range{Min: 100, Max: 100}, Height: palette.Range{Min: 70, Max: 70}},
	}, palette.Table)

	assert.Equal(t, "100 x 70 cm", g.Generate("table", "anything"))
}
