package tetris

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tetrisflip/config"
)

type Action string

const (
	MoveLeft       Action = "left"      // Moves the Tetromino one step to the left.
	MoveRight      Action = "right"     // Moves the Tetromino one step to the right.
	MoveDown       Action = "down"      // Moves the Tetromino one step down, locking it if blocked.
	DropDown       Action = "drop"      // Drops the Tetromino down the stack and locks it.
	RotateRight    Action = "rotatecw"  // Rotates the Tetromino clockwise.
	RotateLeft     Action = "rotateccw" // Rotates the Tetromino counter-clockwise.
	FlipHorizontal Action = "fliph"     // Mirrors the Tetromino left to right.
	FlipVertical   Action = "flipv"     // Mirrors the Tetromino top to bottom.
	TogglePause    Action = "pause"     // Pauses or resumes the game.
	Quit           Action = "quit"      // Ends the session.
	Restart        Action = "restart"   // Starts a new game after a game over.
	None           Action = ""          // No input this tick.
)

// Actions lists every action a player can issue.
var Actions = []Action{
	MoveLeft, MoveRight, MoveDown, DropDown, RotateRight, RotateLeft,
	FlipHorizontal, FlipVertical, TogglePause, Quit, Restart,
}

// pauseGuard is how long after a new game pausing is ignored.
const pauseGuard = 500 * time.Millisecond

// Game drives one session: automatic drops, player actions, locking,
// scoring, levels and game over. It is not safe for concurrent use; a
// single loop owns it and calls Tick.
type Game struct {
	ID string

	cfg      config.Config
	tetris   *Tetris
	clock    Clock
	rand     Rand
	audio    Audio
	animator Animator
	logger   *slog.Logger

	started  time.Time
	lastDrop time.Time
}

type Option func(*Game)

func WithClock(c Clock) Option         { return func(g *Game) { g.clock = c } }
func WithRand(r Rand) Option           { return func(g *Game) { g.rand = r } }
func WithAudio(a Audio) Option         { return func(g *Game) { g.audio = a } }
func WithAnimator(a Animator) Option   { return func(g *Game) { g.animator = a } }
func WithLogger(l *slog.Logger) Option { return func(g *Game) { g.logger = l } }

// NewGame starts a session with the given configuration. Missing
// collaborators default to the system clock, a rand seeded from cfg.Seed,
// silence and no animation.
func NewGame(cfg config.Config, opts ...Option) *Game {
	g := &Game{cfg: cfg}
	for _, o := range opts {
		o(g)
	}
	if g.clock == nil {
		g.clock = SystemClock
	}
	if g.rand == nil {
		g.rand = NewRand(cfg.Seed)
	}
	if g.audio == nil {
		g.audio = nopAudio{}
	}
	if g.animator == nil {
		g.animator = nopAnimator{}
	}
	if g.logger == nil {
		g.logger = slog.New(slog.DiscardHandler)
	}
	g.reset()
	return g
}

// reset initializes the board and the counters and spawns the first pair of
// tetrominoes. The background track carries over from the previous game.
func (g *Game) reset() {
	track := 0
	if g.tetris != nil {
		track = g.tetris.Track
	}
	g.ID = uuid.NewString()
	g.tetris = newTetris(g.cfg.Rows, g.cfg.Cols, g.cfg.Delay, g.rand)
	g.tetris.Track = track
	g.started = g.clock.Now()
	g.lastDrop = g.started

	g.tetris.levelUp(true, g.audio.Tracks())
	g.audio.PlayTrack(g.tetris.Track)
	g.logger.Info("new game", slog.String("game_id", g.ID), slog.Int("rows", g.cfg.Rows), slog.Int("cols", g.cfg.Cols))
	g.spawn()
}

// State is the current state of the session.
func (g *Game) State() State {
	return g.tetris.State
}

// Read returns a copy of the current Tetris status that's safe to keep
// across ticks.
func (g *Game) Read() *Tetris {
	return g.tetris.copy()
}

// Tick runs one frame: the automatic drop when its delay has elapsed, then
// the player's action if any. A soft drop in the same frame as the automatic
// one is absorbed by it, so a frame moves the tetromino down one row at most.
// It returns false once the player quits.
func (g *Game) Tick(a Action) bool {
	if g.clock.Now().Sub(g.lastDrop) > g.tetris.Delay {
		g.fall()
		g.lastDrop = g.clock.Now()
		if a == MoveDown {
			g.logger.Debug("soft drop absorbed by automatic drop", slog.String("game_id", g.ID))
			return true
		}
	}
	return g.Action(a)
}

// Action applies a single player action. Movement actions are ignored unless
// the game is playing. It returns false for Quit.
func (g *Game) Action(a Action) bool {
	switch a {
	case None:
		return true
	case Quit:
		g.logger.Info("quit", slog.String("game_id", g.ID), slog.Int("score", g.tetris.Score))
		return false
	case TogglePause:
		g.togglePause()
		return true
	case Restart:
		if g.tetris.State == GameOver {
			g.reset()
		}
		return true
	}

	if g.tetris.State != Playing {
		g.logger.Debug("action ignored", slog.String("action", string(a)), slog.String("state", g.tetris.State.String()))
		return true
	}

	t := g.tetris
	switch a {
	case MoveLeft:
		t.move(-1)
	case MoveRight:
		t.move(1)
	case RotateRight, RotateLeft, FlipHorizontal, FlipVertical:
		g.audio.Play(SoundRotate)
		t.transform(a)
	case MoveDown:
		g.fall()
	case DropDown:
		t.drop()
		g.lock()
	default:
		g.logger.Debug("unknown action", slog.String("action", string(a)))
	}
	return true
}

func (g *Game) togglePause() {
	if g.clock.Now().Sub(g.started) <= pauseGuard {
		return
	}
	switch g.tetris.State {
	case Playing:
		g.tetris.State = Paused
	case Paused:
		g.tetris.State = Playing
	}
}

// fall is the soft drop shared by the timer and the player.
func (g *Game) fall() {
	if g.tetris.State != Playing {
		return
	}
	if !g.tetris.down() {
		g.lock()
	}
}

// lock settles the tetromino where it stands, clears complete rows, scores
// them and spawns the next tetromino.
func (g *Game) lock() {
	t := g.tetris
	t.toStack()
	g.audio.Play(SoundLock)

	rows, first := t.Stack.clearLines()
	a, quota := t.score(rows)
	if rows > 0 {
		g.audio.Play(a.sound)
		if rows >= 4 {
			g.animator.Celebrate(t.copy(), first)
		}
		if quota {
			g.levelUp()
		}
	}
	g.spawn()
}

func (g *Game) levelUp() {
	t := g.tetris
	t.levelUp(false, g.audio.Tracks())
	g.audio.Play(SoundLevelUp)
	g.audio.PlayTrack(t.Track)
	g.logger.Info("level up",
		slog.String("game_id", g.ID),
		slog.Int("level", t.Level),
		slog.Int("score", t.Score),
		slog.Duration("delay", t.Delay),
	)
}

func (g *Game) spawn() {
	if g.tetris.setTetromino() {
		return
	}
	g.tetris.State = GameOver
	g.logger.Info("game over",
		slog.String("game_id", g.ID),
		slog.Int("level", g.tetris.Level),
		slog.Int("score", g.tetris.Score),
	)
}
