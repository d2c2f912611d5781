package tetris

// award is what a single lock earns for clearing a number of rows. Points
// are multiplied by level+1. Lines counts toward the level quota and is
// not always equal to the rows removed.
type award struct {
	points int
	lines  int
	sound  Sound
}

// awards is indexed by rows removed; anything past the end uses the last.
var awards = []award{
	{},
	{points: 40, lines: 1, sound: SoundLine},
	{points: 100, lines: 2, sound: SoundDouble},
	{points: 300, lines: 3, sound: SoundTriple},
	{points: 1200, lines: 5, sound: SoundTetris},
}

func awardFor(rows int) award {
	switch {
	case rows <= 0:
		return awards[0]
	case rows >= len(awards):
		return awards[len(awards)-1]
	}
	return awards[rows]
}

// clearLines removes every complete row, scanning again from the top after
// each removal until a full pass finds none. It returns the number of rows
// removed and the index of the first one, -1 if none.
func (b *Board) clearLines() (removed, first int) {
	first = -1
	for {
		row := -1
		for y := range b.Rows {
			if b.Complete(y) {
				row = y
				break
			}
		}
		if row < 0 {
			return removed, first
		}
		if first < 0 {
			first = row
		}
		b.RemoveRow(row)
		removed++
	}
}

// score applies the award for rows cleared at the current level and updates
// the quota. It reports whether the quota was met.
func (t *Tetris) score(rows int) (award, bool) {
	a := awardFor(rows)
	t.Score += a.points * (t.Level + 1)
	t.Lines += a.lines
	t.LinesLeft = max(0, t.LinesRequired-t.Lines)
	return a, t.LinesLeft == 0
}
