// Package grid provides arena coordinates, bounds, and facing bookkeeping.
//
// Columns grow eastward and rows grow southward; (0,0) is the north-west corner.
package grid

import "fmt"

// Coord is a cell position within the arena.
type Coord struct {
	Col int
	Row int
}

// String renders the coordinate as "(col,row)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Col, c.Row)
}

// Manhattan returns |dCol| + |dRow| between a and b.
//
// Postcondition: result >= 0 and Manhattan(a, b) == Manhattan(b, a).
func Manhattan(a, b Coord) int {
	return abs(a.Col-b.Col) + abs(a.Row-b.Row)
}

// Bounds is the half-open arena rectangle [0, Width) x [0, Height).
type Bounds struct {
	Width  int
	Height int
}

// Contains reports whether c lies inside the arena.
func (b Bounds) Contains(c Coord) bool {
	return c.Col >= 0 && c.Col < b.Width && c.Row >= 0 && c.Row < b.Height
}

// Clamp moves c to the nearest in-bounds cell.
//
// Precondition: Width >= 1 and Height >= 1.
// Postcondition: b.Contains(result).
func (b Bounds) Clamp(c Coord) Coord {
	return Coord{Col: clamp(c.Col, 0, b.Width-1), Row: clamp(c.Row, 0, b.Height-1)}
}

// Validate returns an error when either dimension is not positive.
func (b Bounds) Validate() error {
	if b.Width < 1 || b.Height < 1 {
		return fmt.Errorf("grid: bounds must be at least 1x1, got %dx%d", b.Width, b.Height)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
