// Package replay plays a game headless from a script of actions, for
// reproducing sessions and checking them without a terminal.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"tetrisflip/tetris"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrBadArgument   = errors.New("bad argument")
)

// Step is one line of a script: an action issued on Count consecutive
// ticks, or a pause of Wait during which the game only ticks.
type Step struct {
	Action tetris.Action
	Count  int
	Wait   time.Duration
	Line   int
}

// aliases are extra names accepted for actions.
var aliases = map[string]tetris.Action{
	"tick": tetris.None,
	"none": tetris.None,
	"cw":   tetris.RotateRight,
	"ccw":  tetris.RotateLeft,
	"hard": tetris.DropDown,
	"soft": tetris.MoveDown,
}

func lookup(name string) (tetris.Action, bool) {
	for _, a := range tetris.Actions {
		if string(a) == name {
			return a, true
		}
	}
	a, ok := aliases[name]
	return a, ok
}

// Parse reads a script. Each line holds an action name with an optional
// repeat count ("left 3"), or "wait" with milliseconds or a duration
// ("wait 800", "wait 1.5s"). Blank lines and lines starting with # are
// skipped.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		name := strings.ToLower(fields[0])
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: %w: too many fields", line, ErrBadArgument)
		}

		if name == "wait" {
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: %w: wait needs a duration", line, ErrBadArgument)
			}
			d, err := parseWait(fields[1])
			if err != nil || d <= 0 {
				return nil, fmt.Errorf("line %d: %w: %q", line, ErrBadArgument, fields[1])
			}
			steps = append(steps, Step{Wait: d, Line: line})
			continue
		}

		a, ok := lookup(name)
		if !ok {
			return nil, fmt.Errorf("line %d: %w: %q", line, ErrUnknownAction, fields[0])
		}
		count := 1
		if len(fields) == 2 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("line %d: %w: %q", line, ErrBadArgument, fields[1])
			}
			count = n
		}
		steps = append(steps, Step{Action: a, Count: count, Line: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return steps, nil
}

func parseWait(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}
