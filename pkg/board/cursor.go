package board

// Cursor walks a grid one step at a time in a fixed direction, yielding
// each visited index together with its cell. The walk starts at the
// origin cell and stops at the board boundary; a cursor created on a
// boundary cell walking outward yields only the origin cell, and with
// Skip(1) yields nothing.
//
// Usage:
//
//	for c := g.RightFrom(pos); c.Next(); {
//		idx, v := c.Index(), c.Value()
//	}
type Cursor[T any] struct {
	grid *Grid[T]
	next Index
	cur  Index
	dRow int
	dCol int
}

func (g *Grid[T]) walk(from Index, dRow, dCol int) *Cursor[T] {
	return &Cursor[T]{grid: g, next: from, dRow: dRow, dCol: dCol}
}

// RightFrom walks toward higher columns starting at pos.
func (g *Grid[T]) RightFrom(pos Index) *Cursor[T] { return g.walk(pos, 0, 1) }

// LeftFrom walks toward lower columns starting at pos.
func (g *Grid[T]) LeftFrom(pos Index) *Cursor[T] { return g.walk(pos, 0, -1) }

// UpFrom walks toward lower rows starting at pos.
func (g *Grid[T]) UpFrom(pos Index) *Cursor[T] { return g.walk(pos, -1, 0) }

// DownFrom walks toward higher rows starting at pos.
func (g *Grid[T]) DownFrom(pos Index) *Cursor[T] { return g.walk(pos, 1, 0) }

// UpLeftFrom walks diagonally toward lower rows and columns.
func (g *Grid[T]) UpLeftFrom(pos Index) *Cursor[T] { return g.walk(pos, -1, -1) }

// UpRightFrom walks diagonally toward lower rows and higher columns.
func (g *Grid[T]) UpRightFrom(pos Index) *Cursor[T] { return g.walk(pos, -1, 1) }

// DownLeftFrom walks diagonally toward higher rows and lower columns.
func (g *Grid[T]) DownLeftFrom(pos Index) *Cursor[T] { return g.walk(pos, 1, -1) }

// DownRightFrom walks diagonally toward higher rows and columns.
func (g *Grid[T]) DownRightFrom(pos Index) *Cursor[T] { return g.walk(pos, 1, 1) }

// Next advances the cursor. It returns false once the walk has left
// the grid; Index and Value are only valid after Next returns true.
func (c *Cursor[T]) Next() bool {
	if !c.grid.Contains(c.next) {
		return false
	}
	c.cur = c.next
	c.next = Index{Row: c.cur.Row + c.dRow, Col: c.cur.Col + c.dCol}
	return true
}

// Index returns the position yielded by the last successful Next.
func (c *Cursor[T]) Index() Index {
	return c.cur
}

// Value returns the cell yielded by the last successful Next.
func (c *Cursor[T]) Value() T {
	return c.grid.At(c.cur)
}

// Skip discards up to n elements and returns the cursor. Skipping the
// origin cell turns a cursor into a walk of the squares beyond pos.
func (c *Cursor[T]) Skip(n int) *Cursor[T] {
	for i := 0; i < n; i++ {
		if !c.Next() {
			break
		}
	}
	return c
}
