package geometry

// Distance returns the game distance between two footprints. Footprints in
// contact, including diagonal contact and full overlap, are at distance 0.
// Beyond contact the distance is the Chebyshev cell gap times unitPerCell.
func Distance(a, b Footprint, cellSize, unitPerCell float64) (float64, error) {
	if cellSize <= 0 || unitPerCell <= 0 {
		return 0, ErrInvalidGrid
	}
	if err := a.validate(); err != nil {
		return 0, err
	}
	if err := b.validate(); err != nil {
		return 0, err
	}

	ra := Cells(a, cellSize)
	rb := Cells(b, cellSize)
	if ra.overlaps(rb) {
		return 0, nil
	}

	dx := gapBetween(ra.Left, ra.Right, rb.Left, rb.Right)
	dy := gapBetween(ra.Top, ra.Bottom, rb.Top, rb.Bottom)
	cells := max(dx, dy)
	if cells <= 1 {
		return 0, nil
	}
	return float64(cells) * unitPerCell, nil
}

// gapBetween returns the index difference between the nearest cells of two
// inclusive intervals: 0 when they overlap, 1 when they touch.
func gapBetween(aLeft, aRight, bLeft, bRight int) int {
	switch {
	case bLeft > aRight:
		return bLeft - aRight
	case aLeft > bRight:
		return aLeft - bRight
	default:
		return 0
	}
}
