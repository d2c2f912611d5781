// Package client runs a game in the terminal: it reads the keyboard, drives
// the game one tick per frame and draws every frame.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/eiannone/keyboard"

	"tetrisflip/config"
	"tetrisflip/terminal"
	"tetrisflip/tetris"
)

type game interface {
	Tick(tetris.Action) bool
	Read() *tetris.Tetris
	State() tetris.State
}

type renderer interface {
	frame(*tetris.Tetris)
}

// Ticker paces the frame loop.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time { return t.ticker.C }
func (t *wrappedTicker) Stop()               { t.ticker.Stop() }

type Client struct {
	game     game
	render   renderer
	writer   io.Writer
	logger   *slog.Logger
	kbCh     <-chan keyboard.KeyEvent
	ticker   Ticker
	clock    tetris.Clock
	repeat   time.Duration
	lastMove time.Time
	lastKey  tetris.Action
}

type Options struct {
	Config config.Config
	Logger *slog.Logger
	Audio  tetris.Audio
	Writer io.Writer // defaults to stdout
}

// New opens the keyboard and creates the game with an animator drawing on
// the same screen.
func New(o *Options) (*Client, error) {
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	kb, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	r := newRender(w, o.Logger, o.Config)
	anim := &animator{
		render:   r,
		rand:     tetris.NewRand(0),
		interval: o.Config.TickInterval(),
		sleep:    time.Sleep,
	}
	opts := []tetris.Option{tetris.WithAnimator(anim), tetris.WithLogger(o.Logger)}
	if o.Audio != nil {
		opts = append(opts, tetris.WithAudio(o.Audio))
	}
	return &Client{
		game:   tetris.NewGame(o.Config, opts...),
		render: r,
		writer: w,
		logger: o.Logger,
		kbCh:   kb,
		ticker: newWrappedTicker(o.Config.TickInterval()),
		clock:  tetris.SystemClock,
		repeat: o.Config.RepeatDelay,
	}, nil
}

// Start hides the cursor and runs the game until the player quits. The
// terminal is restored on the way out.
func (c *Client) Start(ctx context.Context) error {
	fmt.Fprint(c.writer, terminal.HideCursor)
	defer func() {
		keyboard.Close() //nolint:errcheck
		fmt.Fprint(c.writer, terminal.Reset+terminal.Clear+terminal.Home+terminal.ShowCursor)
	}()
	return c.run(ctx)
}

// run ticks the game once per frame with at most one action, the oldest
// key pressed since the previous frame.
func (c *Client) run(ctx context.Context) error {
	defer c.ticker.Stop()
	c.render.frame(c.game.Read())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.ticker.C():
		}
		a, err := c.poll()
		if err != nil {
			return err
		}
		if !c.game.Tick(a) {
			return nil
		}
		c.render.frame(c.game.Read())
	}
}

func (c *Client) poll() (tetris.Action, error) {
	select {
	case event, ok := <-c.kbCh:
		if !ok {
			return tetris.None, errors.New("keyboard events channel closed unexpectedly")
		}
		if event.Err != nil {
			return tetris.None, fmt.Errorf("failed to read keyboard: %w", event.Err)
		}
		return c.action(event), nil
	default:
		return tetris.None, nil
	}
}

// action maps event to an action. A move repeating the previous one within
// the repeat delay is dropped, which tames the terminal's key auto-repeat.
// Different moves always go through.
func (c *Client) action(event keyboard.KeyEvent) tetris.Action {
	a := keyAction(event, c.game.State())
	switch a {
	case tetris.MoveLeft, tetris.MoveRight, tetris.MoveDown:
		now := c.clock.Now()
		if a == c.lastKey && now.Sub(c.lastMove) < c.repeat {
			c.logger.Debug("move debounced", slog.String("action", string(a)))
			return tetris.None
		}
		c.lastMove = now
	}
	c.lastKey = a
	return a
}

func keyAction(event keyboard.KeyEvent, s tetris.State) tetris.Action {
	switch {
	case event.Key == keyboard.KeyEsc || event.Key == keyboard.KeyCtrlC || event.Rune == 'q':
		return tetris.Quit
	case event.Key == keyboard.KeyEnter || event.Rune == 'r':
		return tetris.Restart
	case event.Key == keyboard.KeySpace:
		if s == tetris.GameOver {
			return tetris.Restart
		}
		return tetris.DropDown
	case event.Rune == 'p':
		return tetris.TogglePause
	case event.Key == keyboard.KeyArrowLeft:
		return tetris.MoveLeft
	case event.Key == keyboard.KeyArrowRight:
		return tetris.MoveRight
	case event.Key == keyboard.KeyArrowDown:
		return tetris.MoveDown
	case event.Key == keyboard.KeyArrowUp || event.Rune == 'a':
		return tetris.RotateLeft
	case event.Rune == 'd':
		return tetris.RotateRight
	case event.Rune == 'w':
		return tetris.FlipVertical
	case event.Rune == 's':
		return tetris.FlipHorizontal
	}
	return tetris.None
}
