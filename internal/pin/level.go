package pin

import (
	"fmt"
	"strings"
)

// Level is the logical value of the pin.
type Level bool

const (
	Low  Level = false
	High Level = true
)

// String renders the level the way the pin label shows it.
func (l Level) String() string {
	if l {
		return "1"
	}
	return "0"
}

func (l Level) Toggle() Level { return !l }

// Name returns "high" or "low".
func (l Level) Name() string {
	if l {
		return "high"
	}
	return "low"
}

// ParseLevel accepts high/low, 1/0 and on/off, ignoring case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "1", "on":
		return High, nil
	case "low", "0", "off":
		return Low, nil
	}
	return Low, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// State reports whether the simulator is toggling on its own.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "stopped"
	}
}
