package board

import "fmt"

// Index addresses a single cell in a Grid.
type Index struct {
	Row int
	Col int
}

func NewIndex(row, col int) Index {
	return Index{Row: row, Col: col}
}

func (i Index) String() string {
	return fmt.Sprintf("(%d, %d)", i.Row, i.Col)
}

// Up returns the index n rows closer to row zero.
func (i Index) Up(n int) Index {
	return Index{Row: i.Row - n, Col: i.Col}
}

// Down returns the index n rows further from row zero.
func (i Index) Down(n int) Index {
	return Index{Row: i.Row + n, Col: i.Col}
}

// Left returns the index n columns closer to column zero.
func (i Index) Left(n int) Index {
	return Index{Row: i.Row, Col: i.Col - n}
}

// Right returns the index n columns further from column zero.
func (i Index) Right(n int) Index {
	return Index{Row: i.Row, Col: i.Col + n}
}

// IsAdjacent reports whether the row and column distance to other
// are both less than or equal to one.
func (i Index) IsAdjacent(other Index) bool {
	return absDiff(i.Row, other.Row) <= 1 && absDiff(i.Col, other.Col) <= 1
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
