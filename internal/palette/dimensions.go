package palette

// Range is an inclusive-exclusive span [Min, Max) in centimetres.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Span returns Max-Min, or 1 when the range is empty or inverted.
func (r Range) Span() int {
	if s := r.Max - r.Min; s > 0 {
		return s
	}
	return 1
}

// DimensionRange bounds the generated width and height of a category.
type DimensionRange struct {
	Width  Range `json:"width"`
	Height Range `json:"height"`
}

var dimensionRanges = map[Category]DimensionRange{
	Bookcase:  {Width: Range{80, 324}, Height: Range{123, 283}},
	Furniture: {Width: Range{80, 324}, Height: Range{123, 283}},
	Sofa:      {Width: Range{148, 234}, Height: Range{85, 113}},
	Chair:     {Width: Range{60, 85}, Height: Range{85, 95}},
	Table:     {Width: Range{100, 200}, Height: Range{70, 80}},
	Storage:   {Width: Range{100, 220}, Height: Range{80, 220}},
	Bed:       {Width: Range{140, 200}, Height: Range{180, 220}},
}

// DimensionRanges returns a copy of the category range table.
func DimensionRanges() map[Category]DimensionRange {
	out := make(map[Category]DimensionRange, len(dimensionRanges))
	for k, v := range dimensionRanges {
		out[k] = v
	}
	return out
}
