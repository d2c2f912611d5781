package tetris_test

import (
	"reflect"
	"testing"
	"time"

	"tetrisflip/config"
	"tetrisflip/tetris"
)

func TestGameOver(t *testing.T) {
	game, clock := tetris.NewTestGame(tetris.O)

	// each O stacks two rows in columns 4 and 5.
	for i := range 9 {
		game.Tick(tetris.DropDown)
		if game.State() != tetris.Playing {
			t.Fatalf("wanted playing after drop %d, got %v", i+1, game.State())
		}
	}
	game.Tick(tetris.DropDown)
	if game.State() != tetris.GameOver {
		t.Fatalf("wanted game over, got %v", game.State())
	}

	before := game.Read()
	for _, a := range tetris.Actions {
		if a == tetris.Restart || a == tetris.Quit {
			continue
		}
		clock.Advance(time.Second)
		game.Tick(a)
	}
	after := game.Read()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("wanted the game to stay frozen, got %+v", after)
	}

	game.Tick(tetris.Restart)
	if game.State() != tetris.Playing {
		t.Errorf("wanted playing after restart, got %v", game.State())
	}
	if ts := game.Read(); !ts.Stack.Empty() || ts.Score != 0 {
		t.Errorf("wanted a fresh board, got %+v", ts)
	}
}

func TestPause(t *testing.T) {
	game, clock := tetris.NewTestGame(tetris.J)

	clock.Advance(500 * time.Millisecond)
	game.Tick(tetris.TogglePause)
	if game.State() != tetris.Playing {
		t.Fatalf("wanted pause to be ignored right after starting")
	}

	clock.Advance(time.Millisecond)
	game.Tick(tetris.TogglePause)
	if game.State() != tetris.Paused {
		t.Fatalf("wanted paused, got %v", game.State())
	}

	want := game.Read().Tetromino
	game.Tick(tetris.MoveLeft)
	game.Tick(tetris.RotateRight)
	clock.Advance(10 * time.Second)
	game.Tick(tetris.None)
	if got := game.Read().Tetromino; !reflect.DeepEqual(got, want) {
		t.Errorf("wanted the tetromino to stay at %+v while paused, got %+v", want, got)
	}

	game.Tick(tetris.TogglePause)
	if game.State() != tetris.Playing {
		t.Errorf("wanted playing after resuming, got %v", game.State())
	}
}

func TestAutoDrop(t *testing.T) {
	game, clock := tetris.NewTestGame(tetris.J)
	y := game.Read().Tetromino.Y

	clock.Advance(750 * time.Millisecond)
	game.Tick(tetris.None)
	if got := game.Read().Tetromino.Y; got != y {
		t.Fatalf("wanted no drop at exactly the delay, got Y %d", got)
	}

	clock.Advance(time.Millisecond)
	game.Tick(tetris.None)
	if got := game.Read().Tetromino.Y; got != y+1 {
		t.Fatalf("wanted Y %d, got %d", y+1, got)
	}

	// a long stall still drops a single row per tick.
	clock.Advance(10 * time.Second)
	game.Tick(tetris.None)
	if got := game.Read().Tetromino.Y; got != y+2 {
		t.Errorf("wanted Y %d, got %d", y+2, got)
	}
}

func TestQuit(t *testing.T) {
	game, _ := tetris.NewTestGame(tetris.T)
	if !game.Tick(tetris.MoveLeft) {
		t.Errorf("wanted the session to go on")
	}
	if game.Tick(tetris.Quit) {
		t.Errorf("wanted quit to end the session")
	}
}

func TestReadIsACopy(t *testing.T) {
	game, _ := tetris.NewTestGame(tetris.L)
	ts := game.Read()
	ts.Stack.Cells[19][0] = 7
	ts.Tetromino.X = 0
	ts.Tetromino.Grid[0][0] = 9

	again := game.Read()
	if again.Stack.Cells[19][0] != 0 {
		t.Errorf("wanted the board untouched")
	}
	if again.Tetromino.X != 3 || again.Tetromino.Grid[0][0] != 0 {
		t.Errorf("wanted the tetromino untouched, got %+v", again.Tetromino)
	}
}

func TestSeededSequence(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 42
	shapes := func() []tetris.Shape {
		game := tetris.NewGame(cfg, tetris.WithClock(tetris.NewManualClock()))
		var out []tetris.Shape
		for range 8 {
			out = append(out, game.Read().Tetromino.Shape)
			game.Tick(tetris.DropDown)
		}
		return out
	}
	a, b := shapes(), shapes()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("wanted the same sequence for the same seed, got %v and %v", a, b)
	}
}
