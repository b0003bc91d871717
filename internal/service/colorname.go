package service

import (
	"regexp"
	"strings"

	"github.com/seokhojung/befunweb/internal/domain"
	"github.com/seokhojung/befunweb/internal/variant"
)

// DefaultColorName is used when neither variants nor the name mention a color.
const DefaultColorName = "Natural"

// Longer phrases first so "with Doors and Drawers" is not cut short.
var suffixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)with\s+doors\s+and\s+drawers`),
	regexp.MustCompile(`(?i)with\s+external\s+drawers`),
	regexp.MustCompile(`(?i)with\s+doors`),
	regexp.MustCompile(`(?i)with\s+drawers`),
	regexp.MustCompile(`(?i)with\s+storage`),
}

var nameColorPattern = regexp.MustCompile(`(?i)\b(white|grey|gray|brown|black|green|blue|red|yellow|pink|beige|sand)\b`)

// productSuffix returns the "with ..." phrase of a product name, as written.
func productSuffix(name string) string {
	for _, p := range suffixPatterns {
		if m := p.FindString(name); m != "" {
			return m
		}
	}
	return ""
}

// colorName describes the product color: the first declared color, else a
// color word from the name, each followed by the product suffix.
func colorName(rec domain.SourceRecord) string {
	base := ""
	if colors := variant.ColorNames(rec.Variants); len(colors) > 0 {
		base = colors[0]
	} else if m := nameColorPattern.FindStringSubmatch(rec.Name); m != nil {
		base = m[1]
	}
	if base == "" {
		return DefaultColorName
	}
	return strings.TrimSpace(base + " " + productSuffix(rec.Name))
}
