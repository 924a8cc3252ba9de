// Package geometry measures grid distance between token footprints.
//
// Distances follow the 8-directional movement model of a square grid: the
// separation between two footprints is the Chebyshev distance between their
// nearest occupied cells, and any contact (overlap, edge or corner) counts as
// melee contact at distance 0.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidFootprint = errors.New("footprint must occupy at least one cell")
	ErrInvalidGrid      = errors.New("grid cell size and unit per cell must be positive")
)

// Footprint is a token's occupied area. X and Y are the token origin in scene
// units; Width and Height are measured in cells.
type Footprint struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

// Rect is a footprint converted to inclusive cell indices.
type Rect struct {
	Left, Top, Right, Bottom int
}

func (f Footprint) validate() error {
	if f.Width < 1 || f.Height < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidFootprint, f.Width, f.Height)
	}
	return nil
}

// Cells converts a footprint into the cell rectangle it covers.
func Cells(f Footprint, cellSize float64) Rect {
	left := int(math.Round(f.X / cellSize))
	top := int(math.Round(f.Y / cellSize))
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + f.Width - 1,
		Bottom: top + f.Height - 1,
	}
}

func (r Rect) overlaps(o Rect) bool {
	return r.Left <= o.Right && o.Left <= r.Right && r.Top <= o.Bottom && o.Top <= r.Bottom
}
