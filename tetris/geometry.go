package tetris

// Grid is a piece matrix indexed [row][col]. 0 is empty, anything else is
// the color id of an occupied cell. All transforms below return new grids
// and never modify their input.
type Grid [][]int

// Width is the number of columns, 0 for an empty grid.
func (g Grid) Width() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

func (g Grid) Copy() Grid {
	if g == nil {
		return nil
	}
	c := make(Grid, len(g))
	for i := range g {
		c[i] = make([]int, len(g[i]))
		copy(c[i], g[i])
	}
	return c
}

func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(o[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

func (g Grid) rowEmpty(r int) bool {
	for _, c := range g[r] {
		if c != 0 {
			return false
		}
	}
	return true
}

func newGrid(h, w int) Grid {
	g := make(Grid, h)
	for i := range g {
		g[i] = make([]int, w)
	}
	return g
}

// RotateCCW turns g a quarter counter-clockwise. An h×w grid becomes w×h
// with out[x][y] = g[y][w-1-x].
func RotateCCW(g Grid) Grid {
	h, w := len(g), g.Width()
	out := newGrid(w, h)
	for x := range w {
		for y := range h {
			out[x][y] = g[y][w-1-x]
		}
	}
	return out
}

// RotateCW turns g a quarter clockwise. Same result as three RotateCCW
// calls, done in one pass: out[x][y] = g[h-1-y][x].
func RotateCW(g Grid) Grid {
	h, w := len(g), g.Width()
	out := newGrid(w, h)
	for x := range w {
		for y := range h {
			out[x][y] = g[h-1-y][x]
		}
	}
	return out
}

// FlipH mirrors g left to right.
func FlipH(g Grid) Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = make([]int, len(row))
		for x, c := range row {
			out[y][len(row)-1-x] = c
		}
	}
	return out
}

// FlipV mirrors g top to bottom.
func FlipV(g Grid) Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		out[len(g)-1-y] = append([]int(nil), row...)
	}
	return out
}
