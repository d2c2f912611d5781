package tetris

import "time"

const (
	// MinDelay is the fastest automatic drop.
	MinDelay = 50 * time.Millisecond

	earlyStep = 60 * time.Millisecond // levels 1 to 9
	lateStep  = 20 * time.Millisecond // level 10 and up
	lastEarly = 9

	linesPerLevel = 5
)

// linesRequired is the quota to leave level.
func linesRequired(level int) int {
	return (level + 1) * linesPerLevel
}

// nextDelay is the drop delay after reaching level.
func nextDelay(d time.Duration, level int) time.Duration {
	if level > lastEarly {
		d -= lateStep
	} else {
		d -= earlyStep
	}
	return max(d, MinDelay)
}

// levelUp moves to the next level: faster drops, next background track and a
// fresh quota. With newGame set it only seeds the quota for the current level.
func (t *Tetris) levelUp(newGame bool, tracks int) {
	if !newGame {
		t.Level++
		t.Delay = nextDelay(t.Delay, t.Level)
		if tracks > 0 {
			t.Track = (t.Track + 1) % tracks
		}
	}
	t.Lines = 0
	t.LinesRequired = linesRequired(t.Level)
	t.LinesLeft = t.LinesRequired
}
