package client

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/template"

	"tetrisflip/config"
	"tetrisflip/terminal"
	"tetrisflip/tetris"
)

//go:embed "layout.tmpl"
var layout string

type templateData struct {
	Edge  string
	Board []string
	Side  []string
}

type render struct {
	writer     io.Writer
	logger     *slog.Logger
	template   *template.Template
	cell       int
	rows, cols int
}

func newRender(w io.Writer, l *slog.Logger, cfg config.Config) *render {
	return &render{
		writer:   w,
		logger:   l,
		template: loadTemplate(),
		cell:     cfg.CellSize,
		rows:     cfg.Rows,
		cols:     cfg.Cols,
	}
}

// sideWidth is the widest line of the side panel, "Lines Left" and a
// four digit count.
const sideWidth = 16

// FrameSize is the screen a frame needs for cfg, in columns and rows.
func FrameSize(cfg config.Config) (w, h int) {
	return cfg.Cols*cfg.CellSize + 2 + 2 + max(sideWidth, 4*cfg.CellSize), cfg.Rows + 2
}

func loadTemplate() *template.Template {
	funcMap := template.FuncMap{
		"side": side,
		"inc":  func(i int) int { return i + 1 },
	}
	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	return template.Must(template.New("layout").Funcs(funcMap).Parse(terminal.Raw(layout)))
}

// frame draws the whole screen for t. The board is hidden while paused or
// after a game over and a message is drawn on top of it.
func (r *render) frame(t *tetris.Tetris) {
	r.draw(t, r.cells(t, t.State == tetris.Playing))
	switch t.State {
	case tetris.Paused:
		r.message("Paused")
	case tetris.GameOver:
		r.message("Game Over!", "Press space/enter", "to continue")
	}
}

func (r *render) draw(t *tetris.Tetris, cells [][]string) {
	td := &templateData{
		Edge:  "+" + strings.Repeat("-", r.cols*r.cell) + "+",
		Board: make([]string, len(cells)),
		Side:  info(t, r.cell),
	}
	for y, row := range cells {
		td.Board[y] = strings.Join(row, "")
	}
	fmt.Fprint(r.writer, terminal.Home)
	if err := r.template.Execute(r.writer, td); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

// message centers lines over the board.
func (r *render) message(lines ...string) {
	w := r.cols * r.cell
	// the board starts on the second terminal row.
	y := 2 + r.rows/2 - len(lines)/2
	for i, l := range lines {
		fmt.Fprint(r.writer, terminal.Goto(2, y+i)+center(l, w))
	}
}

// cells renders the board and, with show set, the stack plus the falling
// tetromino. Tetromino cells above the board are not drawn.
func (r *render) cells(t *tetris.Tetris, show bool) [][]string {
	ids := make([][]int, r.rows)
	for y := range ids {
		ids[y] = make([]int, r.cols)
		if show && t.Stack != nil && y < t.Stack.Rows {
			copy(ids[y], t.Stack.Cells[y])
		}
	}
	if show && t.Tetromino != nil {
		tm := t.Tetromino
		for iy, row := range tm.Grid {
			for ix, v := range row {
				y, x := tm.Y+iy, tm.X+ix
				if v == 0 || y < 0 || y >= r.rows || x < 0 || x >= r.cols {
					continue
				}
				ids[y][x] = v
			}
		}
	}

	rendered := make([][]string, r.rows)
	for y, row := range ids {
		rendered[y] = make([]string, r.cols)
		for x, v := range row {
			rendered[y][x] = terminal.Block(v, r.cell)
		}
	}
	return rendered
}

func info(t *tetris.Tetris, cell int) []string {
	s := []string{
		terminal.Bold + "Tetris Flip" + terminal.Reset,
		"",
		fmt.Sprintf("Score      %d", t.Score),
		fmt.Sprintf("Level      %d", t.Level),
		fmt.Sprintf("Lines Left %d", t.LinesLeft),
		fmt.Sprintf("Flips      %d", t.Flips),
		"",
		"Next",
	}
	return append(s, nextPiece(t.NextTetromino, cell)...)
}

// nextPiece renders the non-empty rows of tm.
func nextPiece(tm *tetris.Tetromino, cell int) []string {
	if tm == nil {
		return nil
	}
	var rendered []string
	for _, row := range tm.Grid {
		empty := true
		var b strings.Builder
		for _, v := range row {
			if v != 0 {
				empty = false
			}
			b.WriteString(terminal.Block(v, cell))
		}
		if !empty {
			rendered = append(rendered, b.String())
		}
	}
	return rendered
}

// side returns the info panel line i, erasing whatever the previous frame
// left after it.
func side(td *templateData, i int) string {
	if i < 0 || i >= len(td.Side) {
		return terminal.EraseLine
	}
	return "  " + td.Side[i] + terminal.EraseLine
}

func center(s string, w int) string {
	if len(s) >= w {
		return s
	}
	left := (w - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", w-len(s)-left)
}
