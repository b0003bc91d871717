package domain

import "strings"

// Availability describes whether a variant can be ordered.
type Availability string

// Availability values.
const (
	AvailabilityInStock    Availability = "in_stock"
	AvailabilityOutOfStock Availability = "out_of_stock"
	AvailabilityPreOrder   Availability = "pre_order"
)

// Valid reports whether a is one of the known availability values.
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityInStock, AvailabilityOutOfStock, AvailabilityPreOrder:
		return true
	}
	return false
}

// OrInStock returns a, or in_stock when a is empty or unknown.
func (a Availability) OrInStock() Availability {
	if a.Valid() {
		return a
	}
	return AvailabilityInStock
}

// SourceVariant is a variant as declared by the upstream feed. Options is an
// opaque attribute bag; only the "color" key is interpreted.
type SourceVariant struct {
	ID           string            `json:"id"`
	Options      map[string]string `json:"options,omitempty"`
	SKU          string            `json:"sku,omitempty"`
	Price        *Money            `json:"price,omitempty"`
	Availability Availability      `json:"availability,omitempty"`
}

// Color returns the declared color option, or "".
func (v SourceVariant) Color() string {
	return v.Options["color"]
}

// SourceRecord is a sparse product record from the upstream feed. Only ID
// and Name are guaranteed.
type SourceRecord struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug,omitempty"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Images        []string        `json:"images,omitempty"`
	Image         string          `json:"image,omitempty"`
	Variants      []SourceVariant `json:"variants,omitempty"`
	Price         *Money          `json:"price,omitempty"`
	OriginalPrice *Money          `json:"original_price,omitempty"`
	Discount      *int            `json:"discount,omitempty"`
	IsNew         bool            `json:"is_new,omitempty"`
	FreeDelivery  bool            `json:"free_delivery,omitempty"`

	// DecodeError is set when the feed element could not be decoded. Only
	// ID survives, and the record is excluded from the pass.
	DecodeError string `json:"-"`
}

// DeclaredDiscount returns the feed's discount percentage. Zero counts as
// not declared.
func (r SourceRecord) DeclaredDiscount() (int, bool) {
	if r.Discount == nil || *r.Discount == 0 {
		return 0, false
	}
	return *r.Discount, true
}

// CategoryOr returns the record category, or fallback when it is blank.
func (r SourceRecord) CategoryOr(fallback string) string {
	if strings.TrimSpace(r.Category) != "" {
		return r.Category
	}
	return fallback
}
