package tetris

import (
	"sync"
	"time"

	"tetrisflip/config"
)

// ManualClock is a Clock that only moves when told to.
type ManualClock struct {
	now time.Time
	mu  sync.Mutex
}

func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SequenceRand replays a fixed list of shapes, cycling when it runs out.
type SequenceRand struct {
	seq []int
	i   int
}

func NewSequenceRand(shapes ...Shape) *SequenceRand {
	r := &SequenceRand{}
	for _, s := range shapes {
		for i, v := range Shapes {
			if v == s {
				r.seq = append(r.seq, i)
			}
		}
	}
	return r
}

func (r *SequenceRand) IntN(n int) int {
	if len(r.seq) == 0 {
		return 0
	}
	v := r.seq[r.i%len(r.seq)]
	r.i++
	return v % n
}

// NewTestTetris creates a 20×10 Tetris with shape as both the current and the
// next tetromino, the current one at its spawn position.
func NewTestTetris(shape Shape) *Tetris {
	t := newTetris(20, 10, 750*time.Millisecond, NewSequenceRand(shape))
	t.levelUp(true, 0)
	t.setTetromino()
	return t
}

// NewTestGame creates a game on the default configuration that always draws
// shape, and returns it with the clock driving it.
func NewTestGame(shape Shape, opts ...Option) (*Game, *ManualClock) {
	clock := NewManualClock()
	opts = append([]Option{WithClock(clock), WithRand(NewSequenceRand(shape))}, opts...)
	return NewGame(config.Default(), opts...), clock
}
