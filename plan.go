package statuspaper

import "errors"

// ErrNoRows is returned when a layout is requested for zero rows.
var ErrNoRows = errors.New("statuspaper: no rows to lay out")

// Geometry is the uniform row size of one frame.
type Geometry struct {
	RowHeight int // Pixels per row along the stacking axis
	Padding   int // Offset from a row's top edge to the top of its text
}

// Plan divides extent pixels into n equal rows and centers a fontSize tall line
// of text in each. Both values are floored; the remainder of extent is left
// unused at the bottom edge.
func Plan(extent, n, fontSize int) (Geometry, error) {
	if n <= 0 {
		return Geometry{}, ErrNoRows
	}
	h := floorDiv(extent, n)
	return Geometry{
		RowHeight: h,
		Padding:   floorDiv(h-fontSize, 2),
	}, nil
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
