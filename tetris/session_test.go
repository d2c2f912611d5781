package tetris

import (
	"reflect"
	"testing"
	"time"

	"tetrisflip/config"
)

type recordAudio struct {
	sounds []Sound
	tracks []int
	count  int
}

func (r *recordAudio) Play(s Sound)      { r.sounds = append(r.sounds, s) }
func (r *recordAudio) PlayTrack(i int)   { r.tracks = append(r.tracks, i) }
func (r *recordAudio) Tracks() int       { return r.count }
func (r *recordAudio) played(s Sound) int {
	n := 0
	for _, v := range r.sounds {
		if v == s {
			n++
		}
	}
	return n
}

type recordAnimator struct {
	rows []int
}

func (r *recordAnimator) Celebrate(_ *Tetris, row int) { r.rows = append(r.rows, row) }

// fillRows fills the given rows except column hole.
func fillRows(b *Board, hole int, rows ...int) {
	for _, y := range rows {
		for x := range b.Cols {
			if x != hole {
				b.Cells[y][x] = 4
			}
		}
	}
}

// standI puts a vertical I on the current tetromino with its cells in
// column x and its top at row 0.
func standI(g *Game, x int) {
	g.tetris.Tetromino = &Tetromino{Grid: RotateCW(shapeMap[I]), X: x - 1, Y: 0, Shape: I}
}

func TestSpawnOnFreshBoard(t *testing.T) {
	g, _ := NewTestGame(I)
	tt := g.tetris
	if Collides(tt.Stack, tt.border, tt.Tetromino.Grid, tt.Tetromino.X, tt.Tetromino.Y) {
		t.Errorf("wanted I to fit at its spawn position %d,%d", tt.Tetromino.X, tt.Tetromino.Y)
	}
	if g.State() != Playing {
		t.Errorf("wanted state playing, got %v", g.State())
	}
}

func TestLockClearsRows(t *testing.T) {
	tests := []struct {
		name      string
		rows      []int
		wantScore int
		wantLines int
		wantSound Sound
	}{
		{"single", []int{19}, 40, 1, SoundLine},
		{"double", []int{18, 19}, 100, 2, SoundDouble},
		{"triple", []int{17, 18, 19}, 300, 3, SoundTriple},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audio := &recordAudio{}
			g, _ := NewTestGame(I, WithAudio(audio))
			fillRows(g.tetris.Stack, 5, tt.rows...)
			standI(g, 5)
			g.Action(DropDown)

			if g.tetris.Score != tt.wantScore {
				t.Errorf("wanted score %d, got %d", tt.wantScore, g.tetris.Score)
			}
			if g.tetris.Lines != tt.wantLines {
				t.Errorf("wanted lines %d, got %d", tt.wantLines, g.tetris.Lines)
			}
			if g.tetris.LinesLeft != 5-tt.wantLines {
				t.Errorf("wanted %d lines left, got %d", 5-tt.wantLines, g.tetris.LinesLeft)
			}
			if audio.played(SoundLock) != 1 || audio.played(tt.wantSound) != 1 {
				t.Errorf("wanted one lock and one %s sound, got %v", tt.wantSound, audio.sounds)
			}

			// the rest of the I sits at the bottom of column 5.
			want := NewBoard(20, 10)
			for y := 20 - (4 - len(tt.rows)); y < 20; y++ {
				want.Cells[y][5] = 1
			}
			if !reflect.DeepEqual(g.tetris.Stack, want) {
				t.Errorf("wanted %v, got %v", want.Cells, g.tetris.Stack.Cells)
			}
		})
	}
}

func TestSingleLineShiftsRowsDown(t *testing.T) {
	g, _ := NewTestGame(I)
	fillRows(g.tetris.Stack, 5, 19)
	g.tetris.Stack.Cells[18][0] = 2
	g.tetris.Stack.Cells[10][9] = 3
	standI(g, 5)
	g.Action(DropDown)

	if g.tetris.Score != 40*(0+1) {
		t.Errorf("wanted score 40, got %d", g.tetris.Score)
	}
	b := g.tetris.Stack
	if len(b.Cells) != 21 {
		t.Errorf("wanted row count unchanged, got %d", len(b.Cells))
	}
	if b.Cells[19][0] != 2 || b.Cells[11][9] != 3 {
		t.Errorf("wanted rows above the cleared one shifted down by one, got %v", b.Cells)
	}
	if b.Cells[18][0] != 0 || b.Cells[10][9] != 0 {
		t.Errorf("wanted old positions empty, got %v", b.Cells)
	}
}

func TestTetrisClear(t *testing.T) {
	audio := &recordAudio{count: 3}
	animator := &recordAnimator{}
	g, _ := NewTestGame(I, WithAudio(audio), WithAnimator(animator))
	fillRows(g.tetris.Stack, 5, 16, 17, 18, 19)
	standI(g, 5)
	g.Action(DropDown)

	if !g.tetris.Stack.Empty() {
		t.Errorf("wanted an empty board, got %v", g.tetris.Stack.Cells)
	}
	if g.tetris.Score != 1200 {
		t.Errorf("wanted score 1200, got %d", g.tetris.Score)
	}
	if !reflect.DeepEqual(animator.rows, []int{16}) {
		t.Errorf("wanted one celebration at row 16, got %v", animator.rows)
	}
	// 5 lines meet the level 0 quota.
	if g.tetris.Level != 1 || g.tetris.LinesRequired != 10 || g.tetris.LinesLeft != 10 || g.tetris.Lines != 0 {
		t.Errorf("wanted level 1 with a fresh quota of 10, got level %d, %d/%d, lines %d",
			g.tetris.Level, g.tetris.LinesLeft, g.tetris.LinesRequired, g.tetris.Lines)
	}
	wantSounds := []Sound{SoundLock, SoundTetris, SoundLevelUp}
	if !reflect.DeepEqual(audio.sounds, wantSounds) {
		t.Errorf("wanted sounds %v, got %v", wantSounds, audio.sounds)
	}
	if !reflect.DeepEqual(audio.tracks, []int{0, 1}) {
		t.Errorf("wanted tracks [0 1], got %v", audio.tracks)
	}
}

func TestLevelProgression(t *testing.T) {
	audio := &recordAudio{count: 9}
	g, _ := NewTestGame(I, WithAudio(audio))
	if g.tetris.LinesRequired != 5 {
		t.Fatalf("wanted 5 lines required at level 0, got %d", g.tetris.LinesRequired)
	}
	for i := range 5 {
		if g.tetris.Level != 0 {
			t.Fatalf("wanted level 0 before clear %d, got %d", i+1, g.tetris.Level)
		}
		g.tetris.Stack = NewBoard(20, 10)
		fillRows(g.tetris.Stack, 5, 19)
		standI(g, 5)
		g.Action(DropDown)
	}
	if g.tetris.Level != 1 {
		t.Errorf("wanted level 1, got %d", g.tetris.Level)
	}
	if g.tetris.LinesRequired != 10 || g.tetris.LinesLeft != 10 {
		t.Errorf("wanted 10 lines required and left, got %d and %d", g.tetris.LinesRequired, g.tetris.LinesLeft)
	}
	if g.tetris.Score != 200 {
		t.Errorf("wanted score 200, got %d", g.tetris.Score)
	}
	if g.tetris.Delay != 690*time.Millisecond {
		t.Errorf("wanted delay 690ms, got %v", g.tetris.Delay)
	}
	if audio.played(SoundLevelUp) != 1 {
		t.Errorf("wanted exactly one level up, got %d", audio.played(SoundLevelUp))
	}
}

func TestHardDropLandsLowest(t *testing.T) {
	for _, interval := range []time.Duration{time.Millisecond, 16 * time.Millisecond, 33 * time.Millisecond, 100 * time.Millisecond} {
		t.Run(interval.String(), func(t *testing.T) {
			g, clock := NewTestGame(J)
			g.tetris.Stack.Cells[15][4] = 2
			for range 5 {
				clock.Advance(interval)
				g.Tick(None)
			}
			if g.tetris.Tetromino.Y != 0 {
				t.Fatalf("wanted no automatic drop yet, got Y %d", g.tetris.Tetromino.Y)
			}
			// the J's lower row stops right above (4, 15).
			g.Tick(DropDown)

			want := NewBoard(20, 10)
			want.Cells[15][4] = 2
			want.Cells[13][3] = 6
			want.Cells[14][3] = 6
			want.Cells[14][4] = 6
			want.Cells[14][5] = 6
			if !reflect.DeepEqual(g.tetris.Stack, want) {
				t.Errorf("wanted %v, got %v", want.Cells, g.tetris.Stack.Cells)
			}
		})
	}
}

func TestRestartReinitializes(t *testing.T) {
	audio := &recordAudio{count: 4}
	g, clock := NewTestGame(O, WithAudio(audio))
	id := g.ID
	g.tetris.Score = 300
	g.tetris.Level = 3
	g.tetris.Track = 2
	g.tetris.Stack.Cells[0][4] = 2
	g.spawn()
	if g.State() != GameOver {
		t.Fatalf("wanted game over, got %v", g.State())
	}

	clock.Advance(time.Second)
	g.Tick(Restart)
	if g.State() != Playing {
		t.Errorf("wanted playing after restart, got %v", g.State())
	}
	if !g.tetris.Stack.Empty() || g.tetris.Score != 0 || g.tetris.Level != 0 || g.tetris.Lines != 0 {
		t.Errorf("wanted a fresh game, got %+v", g.tetris)
	}
	if g.tetris.Tetromino == nil || g.tetris.NextTetromino == nil {
		t.Errorf("wanted a new pair of tetrominoes")
	}
	if g.ID == id {
		t.Errorf("wanted a new game id")
	}
	if g.tetris.Track != 2 || audio.tracks[len(audio.tracks)-1] != 2 {
		t.Errorf("wanted the background track to carry over, got %d", g.tetris.Track)
	}
}

func TestRestartOnlyAfterGameOver(t *testing.T) {
	g, _ := NewTestGame(O)
	id := g.ID
	g.tetris.Score = 40
	g.Action(Restart)
	if g.ID != id || g.tetris.Score != 40 {
		t.Errorf("wanted restart to be ignored while playing")
	}
}

func TestNewGameUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Cols, cfg.Rows, cfg.Delay = 6, 8, 300*time.Millisecond
	g := NewGame(cfg, WithRand(NewSequenceRand(O)), WithClock(NewManualClock()))
	if g.tetris.Stack.Rows != 8 || g.tetris.Stack.Cols != 6 {
		t.Errorf("wanted a 8x6 board, got %dx%d", g.tetris.Stack.Rows, g.tetris.Stack.Cols)
	}
	if len(g.tetris.border) != 10 || len(g.tetris.border[0]) != 8 {
		t.Errorf("wanted a 10x8 border, got %dx%d", len(g.tetris.border), len(g.tetris.border[0]))
	}
	if g.tetris.Delay != 300*time.Millisecond {
		t.Errorf("wanted delay 300ms, got %v", g.tetris.Delay)
	}
	if g.tetris.Tetromino.X != 2 {
		t.Errorf("wanted O centered at 2, got %d", g.tetris.Tetromino.X)
	}
}

func TestTickOrder(t *testing.T) {
	t.Run("automatic drop runs before the move", func(t *testing.T) {
		g, clock := NewTestGame(O)
		// the O spawns over columns 4-5, rows 0-1.
		g.tetris.Stack.Cells[2][3] = 4
		clock.Advance(751 * time.Millisecond)
		g.Tick(MoveLeft)

		// after the fall the settled cell blocks the move. Moving first
		// would have reached column 3 and then locked on the fall.
		tm := g.tetris.Tetromino
		if tm.X != 4 || tm.Y != 1 {
			t.Errorf("wanted the O at (4, 1), got (%d, %d)", tm.X, tm.Y)
		}
		settled := 0
		for _, row := range g.tetris.Stack.Cells {
			for _, v := range row {
				if v != 0 {
					settled++
				}
			}
		}
		if settled != 1 {
			t.Errorf("wanted nothing locked, got %d settled cells", settled)
		}
	})

	t.Run("soft drop on an expired timer moves one row", func(t *testing.T) {
		g, clock := NewTestGame(O)
		clock.Advance(751 * time.Millisecond)
		g.Tick(MoveDown)
		if y := g.tetris.Tetromino.Y; y != 1 {
			t.Errorf("wanted one row per tick, got Y %d", y)
		}

		// the timer restarted, so the next soft drop is the only fall.
		g.Tick(MoveDown)
		if y := g.tetris.Tetromino.Y; y != 2 {
			t.Errorf("wanted Y 2, got %d", y)
		}
	})

	t.Run("soft drop without the timer moves one row", func(t *testing.T) {
		g, clock := NewTestGame(O)
		clock.Advance(750 * time.Millisecond)
		g.Tick(MoveDown)
		if y := g.tetris.Tetromino.Y; y != 1 {
			t.Errorf("wanted Y 1, got %d", y)
		}
	})
}
