package board

import "fmt"

// Cell is an optional occupant of a single grid square.
type Cell[T any] struct {
	value    T
	occupied bool
}

// NewCell creates an occupied cell holding v.
func NewCell[T any](v T) Cell[T] {
	return Cell[T]{value: v, occupied: true}
}

// Get returns the occupant and whether the cell is occupied.
func (c Cell[T]) Get() (T, bool) {
	return c.value, c.occupied
}

func (c Cell[T]) IsEmpty() bool {
	return !c.occupied
}

// Grid is a fixed-size two-dimensional array of cells. All mutation
// goes through Set; reads through At or one of the directional cursors.
type Grid[T any] struct {
	cells []T
	rows  int
	cols  int
}

// NewGrid creates a grid of rows x cols zero-valued cells.
func NewGrid[T any](rows, cols int) *Grid[T] {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("invalid grid dimensions %dx%d", rows, cols))
	}
	return &Grid[T]{
		cells: make([]T, rows*cols),
		rows:  rows,
		cols:  cols,
	}
}

func (g *Grid[T]) Rows() int {
	return g.rows
}

func (g *Grid[T]) Cols() int {
	return g.cols
}

// Contains reports whether idx addresses a cell inside the grid.
func (g *Grid[T]) Contains(idx Index) bool {
	return idx.Row >= 0 && idx.Row < g.rows && idx.Col >= 0 && idx.Col < g.cols
}

// At returns the cell at idx. It panics if idx is out of bounds.
func (g *Grid[T]) At(idx Index) T {
	if !g.Contains(idx) {
		panic(fmt.Sprintf("grid index %s out of bounds", idx))
	}
	return g.cells[idx.Row*g.cols+idx.Col]
}

// Set replaces the cell at idx. It panics if idx is out of bounds.
func (g *Grid[T]) Set(idx Index, v T) {
	if !g.Contains(idx) {
		panic(fmt.Sprintf("grid index %s out of bounds", idx))
	}
	g.cells[idx.Row*g.cols+idx.Col] = v
}

// Each visits every cell in row-major order until fn returns false.
func (g *Grid[T]) Each(fn func(Index, T) bool) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			idx := Index{Row: row, Col: col}
			if !fn(idx, g.cells[row*g.cols+col]) {
				return
			}
		}
	}
}
