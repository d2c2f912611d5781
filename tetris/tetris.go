// Package tetris contains the logic of the game: the board, the pieces and
// their transforms, collisions, line clears, scoring and levels.
package tetris

import "time"

type State int

const (
	Playing State = iota
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case GameOver:
		return "gameover"
	}
	return "unknown"
}

// Tetris is the state of one session. Game owns it; renderers get copies
// through Game.Read().
type Tetris struct {
	Stack         *Board
	Tetromino     *Tetromino
	NextTetromino *Tetromino

	Level         int
	Score         int
	Lines         int // lines counted toward the current level quota
	LinesRequired int
	LinesLeft     int
	Delay         time.Duration
	Track         int
	Flips         int
	State         State

	border Border
	rand   Rand
}

func newTetris(rows, cols int, delay time.Duration, r Rand) *Tetris {
	return &Tetris{
		Stack:  NewBoard(rows, cols),
		Delay:  delay,
		border: NewBorder(rows, cols),
		rand:   r,
	}
}

// isCollision tests the current tetromino's position moved by (x, y) using g
// as its grid.
//
//	.	0 1 2 3 4 5 6 7 8 9			0 1 2
//	0	X X X O X X X X X X		0	O X X
//	1	X X X O O O X X X X		1	O O O
//	2	X X X X X X X X X X		2	X X X
func (t *Tetris) isCollision(x, y int, g Grid) bool {
	return Collides(t.Stack, t.border, g, t.Tetromino.X+x, t.Tetromino.Y+y)
}

func (t *Tetris) move(dx int) bool {
	if t.isCollision(dx, 0, t.Tetromino.Grid) {
		return false
	}
	t.Tetromino.X += dx
	return true
}

// transform replaces the tetromino's grid with its rotated or flipped
// version. There are no wall kicks: a transform that collides where the
// piece stands is rejected.
func (t *Tetris) transform(a Action) bool {
	var g Grid
	switch a {
	case RotateRight:
		g = RotateCW(t.Tetromino.Grid)
	case RotateLeft:
		g = RotateCCW(t.Tetromino.Grid)
	case FlipHorizontal:
		t.Flips++
		g = FlipH(t.Tetromino.Grid)
	case FlipVertical:
		t.Flips++
		g = FlipV(t.Tetromino.Grid)
	default:
		return false
	}
	if t.isCollision(0, 0, g) {
		return false
	}
	t.Tetromino.Grid = g
	return true
}

// down moves the tetromino one row. When the row below is taken it stays
// where it is and down returns false: the piece has to lock.
func (t *Tetris) down() bool {
	t.Tetromino.Y++
	if t.isCollision(0, 0, t.Tetromino.Grid) {
		t.Tetromino.Y--
		return false
	}
	return true
}

// drop moves the tetromino to the lowest row it can reach.
func (t *Tetris) drop() {
	for t.Tetromino.Y <= t.Stack.Rows && !t.isCollision(0, 1, t.Tetromino.Grid) {
		t.Tetromino.Y++
	}
}

// toStack merges the tetromino into the board.
func (t *Tetris) toStack() {
	t.Stack.Merge(t.Tetromino.Grid, t.Tetromino.X, t.Tetromino.Y)
	t.Tetromino = nil
}

// setTetromino promotes the next tetromino, drafts a new next one and
// reports whether the promoted piece fits at its spawn position.
func (t *Tetris) setTetromino() bool {
	if t.NextTetromino == nil {
		t.NextTetromino = t.draw()
	}
	t.Tetromino = t.NextTetromino
	t.Tetromino.spawnAt(t.Stack.Cols)
	t.NextTetromino = t.draw()
	return !t.isCollision(0, 0, t.Tetromino.Grid)
}

func (t *Tetris) draw() *Tetromino {
	return newTetromino(Shapes[t.rand.IntN(len(Shapes))])
}

func (t *Tetris) copy() *Tetris {
	c := *t
	c.Stack = t.Stack.copy()
	c.Tetromino = t.Tetromino.copy()
	c.NextTetromino = t.NextTetromino.copy()
	c.border = nil
	c.rand = nil
	return &c
}
