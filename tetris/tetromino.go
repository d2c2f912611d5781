package tetris

type Shape string

const (
	I Shape = "I"
	O Shape = "O"
	T Shape = "T"
	S Shape = "S"
	Z Shape = "Z"
	J Shape = "J"
	L Shape = "L"
)

// Shapes is the catalog in draw order. A random draw picks an index into it.
var Shapes = []Shape{I, O, T, S, Z, J, L}

// shapeMap holds the read-only prototypes. Every nonzero cell carries the
// shape's color id, 1 to 7. Use newTetromino to get an independent copy.
var shapeMap = map[Shape]Grid{
	/*
		.	0 1 2 3
		0	X X X X
		1	O O O O
		2	X X X X
	*/
	I: {
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
	},
	/*
		.	0 1
		0	O O
		1	O O
	*/
	O: {
		{2, 2},
		{2, 2},
	},
	/*
		.	0 1 2
		0	X X X
		1	O O O
		2	X O X
	*/
	T: {
		{0, 0, 0},
		{3, 3, 3},
		{0, 3, 0},
	},
	/*
		.	0 1 2
		0	X X X
		1	X O O
		2	O O X
	*/
	S: {
		{0, 0, 0},
		{0, 4, 4},
		{4, 4, 0},
	},
	/*
		.	0 1 2
		0	X X X
		1	O O X
		2	X O O
	*/
	Z: {
		{0, 0, 0},
		{5, 5, 0},
		{0, 5, 5},
	},
	/*
		.	0 1 2
		0	O X X
		1	O O O
		2	X X X
	*/
	J: {
		{6, 0, 0},
		{6, 6, 6},
		{0, 0, 0},
	},
	/*
		.	0 1 2
		0	X X X
		1	O O O
		2	O X X
	*/
	L: {
		{0, 0, 0},
		{7, 7, 7},
		{7, 0, 0},
	},
}

// Colors is the number of distinct color ids a board cell can hold.
const Colors = 7

// ColorID returns the id painted on the board by s, or 0 for an unknown shape.
func ColorID(s Shape) int {
	for _, row := range shapeMap[s] {
		for _, c := range row {
			if c != 0 {
				return c
			}
		}
	}
	return 0
}

// Tetromino is a piece: its own copy of a prototype grid plus the board
// offset of the grid's top-left cell.
type Tetromino struct {
	Grid  Grid
	X, Y  int
	Shape Shape
}

func newTetromino(s Shape) *Tetromino {
	return &Tetromino{
		Grid:  shapeMap[s].Copy(),
		Shape: s,
	}
}

// spawnAt centers the piece over a board of the given width. Pieces with an
// empty top row start one row up so their first visible row is row 0.
func (t *Tetromino) spawnAt(cols int) {
	t.X = (cols - t.Grid.Width()) / 2
	t.Y = 0
	if len(t.Grid) > 0 && t.Grid.rowEmpty(0) {
		t.Y = -1
	}
}

func (t *Tetromino) copy() *Tetromino {
	if t == nil {
		return nil
	}
	return &Tetromino{
		Grid:  t.Grid.Copy(),
		X:     t.X,
		Y:     t.Y,
		Shape: t.Shape,
	}
}
