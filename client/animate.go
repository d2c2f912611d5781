package client

import (
	"time"

	"tetrisflip/terminal"
	"tetrisflip/tetris"
)

const bandHeight = 4

// animator plays the celebration for a clear of four or more rows.
type animator struct {
	render   *render
	rand     tetris.Rand
	interval time.Duration
	sleep    func(time.Duration)
}

// Celebrate widens a band of random colours from the middle of the board
// out to both walls, one column on each side per frame, starting at row.
// It blocks until the last frame is drawn.
func (a *animator) Celebrate(t *tetris.Tetris, row int) {
	r := a.render
	if row < 0 || row >= r.rows {
		return
	}
	cells := r.cells(t, true)
	half := r.cols / 2
	for i := range half {
		for y := row; y < row+bandHeight && y < r.rows; y++ {
			cells[y][half+i] = a.block()
			cells[y][half-i-1] = a.block()
		}
		r.draw(t, cells)
		a.sleep(a.interval)
	}
}

func (a *animator) block() string {
	c := terminal.Color(a.rand.IntN(tetris.Colors) + 1)
	return terminal.Cell(terminal.Shade(c, terminal.InnerShade), a.render.cell)
}
