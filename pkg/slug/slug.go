package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var slugRegexp = regexp.MustCompile(`[^a-z0-9]+`)

// Generate creates a URL-friendly slug from the given name. Accented letters
// are folded to their ASCII base.
//
// Examples:
//   - "Bookcase White with Doors" → "bookcase-white-with-doors"
//   - "Étagère Crème" → "etagere-creme"
//   - "  Sofa / 3-Seater!" → "sofa-3-seater"
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(fold(name)))
	s = slugRegexp.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	// Letters without a decomposition.
	return strings.NewReplacer("ı", "i", "ø", "o", "Ø", "O", "ß", "ss", "æ", "ae", "Æ", "AE").Replace(out)
}
