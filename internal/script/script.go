// Package script runs textual command sequences against a pin simulator on a
// virtual clock, e.g. "play wait 2 pause step reset".
package script

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/pinsim/internal/clock"
	"github.com/san-kum/pinsim/internal/pin"
)

var (
	ErrUnknownCommand = errors.New("script: unknown command")
	ErrInvalidWait    = errors.New("script: invalid wait argument")
)

type Op int

const (
	OpPlay Op = iota
	OpPause
	OpStep
	OpReset
	OpWait
)

var opNames = map[string]Op{
	"play":  OpPlay,
	"pause": OpPause,
	"step":  OpStep,
	"reset": OpReset,
	"wait":  OpWait,
}

func (o Op) String() string {
	for name, op := range opNames {
		if op == o {
			return name
		}
	}
	return fmt.Sprintf("op(%d)", int(o))
}

// Command is one parsed instruction. For OpWait exactly one of Intervals or
// Duration is set.
type Command struct {
	Op        Op
	Intervals int
	Duration  time.Duration
}

func (c Command) String() string {
	if c.Op != OpWait {
		return c.Op.String()
	}
	if c.Duration > 0 {
		return "wait " + c.Duration.String()
	}
	return "wait " + strconv.Itoa(c.Intervals)
}

// Parse splits src on whitespace, commas and semicolons. wait takes an
// optional interval count or Go duration and defaults to one interval.
func Parse(src string) ([]Command, error) {
	tokens := strings.FieldsFunc(src, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	cmds := make([]Command, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		op, ok := opNames[strings.ToLower(tokens[i])]
		if !ok {
			return nil, fmt.Errorf("%w %q at token %d", ErrUnknownCommand, tokens[i], i+1)
		}
		cmd := Command{Op: op}
		if op == OpWait {
			cmd.Intervals = 1
			if i+1 < len(tokens) {
				if _, isOp := opNames[strings.ToLower(tokens[i+1])]; !isOp {
					i++
					if err := parseWait(&cmd, tokens[i]); err != nil {
						return nil, fmt.Errorf("%w %q at token %d", err, tokens[i], i+1)
					}
				}
			}
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func parseWait(cmd *Command, arg string) error {
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 0 {
			return ErrInvalidWait
		}
		cmd.Intervals = n
		return nil
	}
	d, err := time.ParseDuration(arg)
	if err != nil || d < 0 {
		return ErrInvalidWait
	}
	cmd.Intervals, cmd.Duration = 0, d
	return nil
}

// Runner drives a simulator that was built on clk.
type Runner struct {
	sim   *pin.Simulator
	clk   *clock.Manual
	trace func(Command)
}

func NewRunner(sim *pin.Simulator, clk *clock.Manual) *Runner {
	return &Runner{sim: sim, clk: clk}
}

// OnCommand registers a hook called before each command executes.
func (r *Runner) OnCommand(fn func(Command)) { r.trace = fn }

func (r *Runner) Run(ctx context.Context, cmds []Command) error {
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.trace != nil {
			r.trace(cmd)
		}
		switch cmd.Op {
		case OpPlay:
			r.sim.Play()
		case OpPause:
			r.sim.Pause()
		case OpStep:
			r.sim.Step()
		case OpReset:
			r.sim.Reset()
		case OpWait:
			d, err := r.waitFor(cmd)
			if err != nil {
				return err
			}
			if err := r.advance(ctx, d); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) waitFor(cmd Command) (time.Duration, error) {
	if cmd.Duration > 0 {
		return cmd.Duration, nil
	}
	iv := r.sim.Interval()
	if time.Duration(cmd.Intervals) > math.MaxInt64/iv {
		return 0, fmt.Errorf("%w: %s overflows at interval %v", ErrInvalidWait, cmd, iv)
	}
	return time.Duration(cmd.Intervals) * iv, nil
}

// advance moves the clock one interval at a time so a long wait stays
// cancellable.
func (r *Runner) advance(ctx context.Context, d time.Duration) error {
	step := r.sim.Interval()
	for d > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		s := min(d, step)
		r.clk.Advance(s)
		d -= s
	}
	return nil
}
