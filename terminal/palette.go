package terminal

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// BorderShade darkens a cell's fill for its outline.
	BorderShade = 50
	// InnerShade darkens a cell's fill for the celebration band.
	InnerShade = 30
)

// palette is indexed by cell id, 0 is empty.
var palette = []colorful.Color{
	{},
	rgb(0, 255, 255), // I cyan
	rgb(255, 255, 0), // O yellow
	rgb(255, 0, 255), // T magenta
	rgb(0, 155, 0),   // S green
	rgb(255, 0, 0),   // Z red
	rgb(0, 0, 235),   // J blue
	rgb(255, 165, 0), // L orange
}

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Color is the fill colour of a cell id. Ids past the palette wrap around,
// so a cell that summed two ids still draws.
func Color(id int) colorful.Color {
	if id <= 0 {
		return palette[0]
	}
	return palette[(id-1)%(len(palette)-1)+1]
}

// Shade subtracts amount, on the 0-255 scale, from every channel of c,
// clamping at black.
func Shade(c colorful.Color, amount int) colorful.Color {
	d := float64(amount) / 255
	return colorful.Color{R: c.R - d, G: c.G - d, B: c.B - d}.Clamped()
}

func fg(c colorful.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", r, g, b)
}

func bg(c colorful.Color) string {
	r, g, b := c.RGB255()
	return fmt.Sprintf("\033[48;2;%d;%d;%dm", r, g, b)
}

// Empty is a blank cell of width columns.
func Empty(width int) string {
	return strings.Repeat(" ", width)
}

// Cell draws a cell of width columns filled with c and outlined with its
// shade. Width 1 has no room for the outline and is drawn solid.
func Cell(c colorful.Color, width int) string {
	if width < 2 {
		return bg(c) + " " + Reset
	}
	return fg(Shade(c, BorderShade)) + bg(c) + "[" + strings.Repeat(" ", width-2) + "]" + Reset
}

// Block draws cell id at width columns, blank for id 0.
func Block(id, width int) string {
	if id == 0 {
		return Empty(width)
	}
	return Cell(Color(id), width)
}
