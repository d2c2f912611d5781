package tetris

// Board is the playfield of settled cells.
// Columns are 0 > Cols-1 left to right and represent the X axis.
// Rows are 0 > Rows-1 top to bottom and represent the Y axis.
// Cells holds one extra row below the playfield filled with 1s: the floor.
type Board struct {
	Rows, Cols int
	Cells      [][]int
}

// NewBoard returns an empty rows×cols board plus its floor row.
func NewBoard(rows, cols int) *Board {
	b := &Board{Rows: rows, Cols: cols, Cells: make([][]int, rows+1)}
	for y := range rows {
		b.Cells[y] = make([]int, cols)
	}
	floor := make([]int, cols)
	for x := range floor {
		floor[x] = 1
	}
	b.Cells[rows] = floor
	return b
}

// Merge adds the nonzero cells of g into the board with g's top-left corner
// at (x, y). Cells that land outside the playfield are dropped. Values are
// summed, not overwritten; valid play never merges onto an occupied cell.
func (b *Board) Merge(g Grid, x, y int) {
	for cy, row := range g {
		by := cy + y
		if by < 0 || by >= b.Rows {
			continue
		}
		for cx, c := range row {
			bx := cx + x
			if c == 0 || bx < 0 || bx >= b.Cols {
				continue
			}
			b.Cells[by][bx] += c
		}
	}
}

// RemoveRow deletes playfield row i and inserts an empty row at the top, so
// the row count never changes. Out of range rows and the floor are ignored.
func (b *Board) RemoveRow(i int) {
	if i < 0 || i >= b.Rows {
		return
	}
	copy(b.Cells[1:i+1], b.Cells[:i])
	b.Cells[0] = make([]int, b.Cols)
}

// Complete reports whether playfield row i has no empty cell.
func (b *Board) Complete(i int) bool {
	if i < 0 || i >= b.Rows {
		return false
	}
	for _, c := range b.Cells[i] {
		if c == 0 {
			return false
		}
	}
	return true
}

// Empty reports whether no playfield cell is occupied.
func (b *Board) Empty() bool {
	for y := range b.Rows {
		for _, c := range b.Cells[y] {
			if c != 0 {
				return false
			}
		}
	}
	return true
}

func (b *Board) copy() *Board {
	if b == nil {
		return nil
	}
	c := &Board{Rows: b.Rows, Cols: b.Cols, Cells: make([][]int, len(b.Cells))}
	for i := range b.Cells {
		c.Cells[i] = make([]int, len(b.Cells[i]))
		copy(c.Cells[i], b.Cells[i])
	}
	return c
}

// Border is a (rows+2)×(cols+2) grid with 1 on the outer ring and 0 inside.
// It is indexed one cell down and right of the board it was built for.
type Border [][]int

func NewBorder(rows, cols int) Border {
	s := make(Border, rows+2)
	for y := range s {
		s[y] = make([]int, cols+2)
		for x := range s[y] {
			if y == 0 || y == rows+1 || x == 0 || x == cols+1 {
				s[y][x] = 1
			}
		}
	}
	return s
}

// blocked reports whether board coordinate (x, y) is on the ring. Anything
// outside the border itself counts as blocked.
func (s Border) blocked(x, y int) bool {
	by, bx := y+1, x+1
	if by < 0 || by >= len(s) || bx < 0 || bx >= len(s[by]) {
		return true
	}
	return s[by][bx] != 0
}

// Collides reports whether placing g with its top-left corner at (x, y)
// puts an occupied cell off the board, onto a settled cell or onto the
// border ring.
func Collides(b *Board, s Border, g Grid, x, y int) bool {
	for cy, row := range g {
		for cx, c := range row {
			if c == 0 {
				continue
			}
			bx, by := cx+x, cy+y
			if by < 0 || by >= len(b.Cells) || bx < 0 || bx >= len(b.Cells[by]) {
				return true
			}
			if b.Cells[by][bx] != 0 || s.blocked(bx, by) {
				return true
			}
		}
	}
	return false
}
