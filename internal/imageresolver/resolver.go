// Package imageresolver finds main, hover and thumbnail images for a
// product color through an ordered chain of strategies. Each role is filled
// by the first strategy that supplies it; the built-in default placeholder
// guarantees a non-empty result.
package imageresolver

import (
	"net/url"
	"path"
	"strings"
)

// Role is one of the three image slots of a variant.
type Role string

// Image roles.
const (
	RoleMain      Role = "main"
	RoleHover     Role = "hover"
	RoleThumbnail Role = "thumbnail"
)

// Roles lists every role in resolution order.
var Roles = []Role{RoleMain, RoleHover, RoleThumbnail}

// ImageSet holds one path per role. Empty fields are unresolved.
type ImageSet struct {
	Main      string `json:"main"`
	Hover     string `json:"hover"`
	Thumbnail string `json:"thumbnail"`
}

// Get returns the path for role.
func (s ImageSet) Get(r Role) string {
	switch r {
	case RoleMain:
		return s.Main
	case RoleHover:
		return s.Hover
	case RoleThumbnail:
		return s.Thumbnail
	}
	return ""
}

// With returns a copy of s with role set to p.
func (s ImageSet) With(r Role, p string) ImageSet {
	switch r {
	case RoleMain:
		s.Main = p
	case RoleHover:
		s.Hover = p
	case RoleThumbnail:
		s.Thumbnail = p
	}
	return s
}

// Complete reports whether every role is filled.
func (s ImageSet) Complete() bool {
	return s.Main != "" && s.Hover != "" && s.Thumbnail != ""
}

// Query describes the product color being resolved.
type Query struct {
	ProductID string
	Slug      string
	Category  string
	Color     string
	// UseRealImages keeps externally hosted URLs. When false they are
	// rewritten to local temp assets.
	UseRealImages bool
}

// Strategy is one tier of the chain. It returns the roles it can supply and
// false when it has nothing for q.
type Strategy interface {
	Name() string
	Resolve(q Query) (ImageSet, bool)
}

// Resolver runs the strategy chain.
type Resolver struct {
	strategies []Strategy
}

// New returns a resolver over the given strategies. The default placeholder
// is always consulted last.
func New(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// NewDefault returns the standard four-tier chain: per-product mappings,
// the category/color table, generated placeholders under layout, and the
// default placeholder.
func NewDefault(layout Layout) *Resolver {
	return New(
		DefaultProductMapping(),
		DefaultCategoryColorMapping(),
		GeneratedPlaceholder{Layout: layout},
	)
}

// Resolve fills every role of q. It never fails.
func (r *Resolver) Resolve(q Query) ImageSet {
	var out ImageSet
	for _, s := range r.strategies {
		if out.Complete() {
			break
		}
		set, ok := s.Resolve(q)
		if !ok {
			continue
		}
		for _, role := range Roles {
			if out.Get(role) == "" {
				out = out.With(role, set.Get(role))
			}
		}
	}

	fallback := DefaultImages()
	for _, role := range Roles {
		if out.Get(role) == "" {
			out = out.With(role, fallback.Get(role))
		}
	}

	if !q.UseRealImages {
		out = LocalizeSet(out, q.Category)
	}
	return out
}

// LocalizeSet rewrites every external URL of s into the temp-asset
// convention for category.
func LocalizeSet(s ImageSet, category string) ImageSet {
	for _, role := range Roles {
		s = s.With(role, Localize(s.Get(role), category, role))
	}
	return s
}

// tempSuffix names the temp-asset variant of each role.
var tempSuffix = map[Role]string{
	RoleMain:      "main",
	RoleHover:     "lifestyle",
	RoleThumbnail: "thumb",
}

// Localize maps an externally hosted image to
// /images/temp/{category}-{basename}-{suffix}.webp. Local paths are
// returned unchanged.
func Localize(raw, category string, role Role) string {
	if !IsExternal(raw) {
		return raw
	}
	base := "default"
	if u, err := url.Parse(raw); err == nil {
		if b := path.Base(u.Path); b != "." && b != "/" {
			if stem := strings.SplitN(b, ".", 2)[0]; stem != "" {
				base = stem
			}
		}
	}
	if category == "" {
		category = "bookcase"
	}
	return "/images/temp/" + strings.ToLower(category) + "-" + base + "-" + tempSuffix[role] + ".webp"
}

// IsExternal reports whether p is an absolute http(s) URL.
func IsExternal(p string) bool {
	lp := strings.ToLower(p)
	return strings.HasPrefix(lp, "http://") || strings.HasPrefix(lp, "https://")
}
