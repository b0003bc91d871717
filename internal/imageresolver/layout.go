package imageresolver

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/seokhojung/befunweb/internal/idhash"
	"github.com/seokhojung/befunweb/internal/palette"
)

// Defaults for generated placeholder assets.
const (
	DefaultAssetRoot = "/images/products/v2"
	DefaultAssetExt  = "png"
)

// Layout is the on-disk naming convention for generated assets:
//
//	{root}/main/{category}-{index}-main.{ext}
//	{root}/hover/{category}-{index}-hover.{ext}
//	{root}/thumbnail/swatch-{color}.{ext}
type Layout struct {
	Root string
	Ext  string
}

// DefaultLayout returns the layout rooted at DefaultAssetRoot.
func DefaultLayout() Layout {
	return Layout{Root: DefaultAssetRoot, Ext: DefaultAssetExt}
}

func (l Layout) ext() string {
	if e := strings.TrimPrefix(l.Ext, "."); e != "" {
		return e
	}
	return DefaultAssetExt
}

// Main returns the main image path for a category and padded index.
func (l Layout) Main(category, index string) string {
	return path.Join(l.Root, "main", fmt.Sprintf("%s-%s-main.%s", category, index, l.ext()))
}

// Hover returns the hover image path for a category and padded index.
func (l Layout) Hover(category, index string) string {
	return path.Join(l.Root, "hover", fmt.Sprintf("%s-%s-hover.%s", category, index, l.ext()))
}

// Swatch returns the thumbnail swatch path for a color.
func (l Layout) Swatch(color string) string {
	return path.Join(l.Root, "thumbnail", fmt.Sprintf("swatch-%s.%s", palette.NormalizeColor(color), l.ext()))
}

var trailingDigits = regexp.MustCompile(`(\d+)$`)

// PaddedIndex derives the asset index of an identity: its trailing digits
// padded to two places, or its hash modulo 100 when it has none.
func PaddedIndex(id string) string {
	if m := trailingDigits.FindString(id); m != "" {
		if len(m) < 2 {
			return "0" + m
		}
		return m
	}
	return fmt.Sprintf("%02d", idhash.Hash(id)%100)
}
