// Package core provides fundamental types and utilities for the pairs platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned box on the screen grid.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the middle cell, rounded toward the top-left.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Grid lays out equally sized cells row by row with a gap between them.
type Grid struct {
	Cols, Rows   int
	CellW, CellH int
	Gap          int
}

// SquareGrid returns the most square grid that holds n cells.
func SquareGrid(n, cellW, cellH, gap int) Grid {
	cols := 1
	for cols*cols < n {
		cols++
	}
	rows := max((n+cols-1)/cols, 1)
	return Grid{Cols: cols, Rows: rows, CellW: cellW, CellH: cellH, Gap: gap}
}

// Size returns the total width and height of the grid.
func (g Grid) Size() (int, int) {
	w := g.Cols*g.CellW + max(g.Cols-1, 0)*g.Gap
	h := g.Rows*g.CellH + max(g.Rows-1, 0)*g.Gap
	return w, h
}

// Bounds returns the area covered by the grid when drawn at (x, y).
func (g Grid) Bounds(x, y int) Rect {
	w, h := g.Size()
	return NewRect(x, y, w, h)
}

// Cell returns the rectangle of cell i when the grid is drawn at (x, y).
func (g Grid) Cell(i, x, y int) Rect {
	col, row := i%g.Cols, i/g.Cols
	return NewRect(x+col*(g.CellW+g.Gap), y+row*(g.CellH+g.Gap), g.CellW, g.CellH)
}

// Move steps from cell i by dc columns and dr rows, stopping at the grid
// edges. Moves onto a position past the last of n cells are refused.
func (g Grid) Move(i, dc, dr, n int) int {
	col := Clamp(i%g.Cols+dc, 0, g.Cols-1)
	row := Clamp(i/g.Cols+dr, 0, g.Rows-1)
	if idx := row*g.Cols + col; idx < n {
		return idx
	}
	return i
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
