package pin

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/pinsim/internal/clock"
)

// DefaultInterval is the time between ticks while running.
const DefaultInterval = 500 * time.Millisecond

// ChangeFunc receives the new level after every change.
type ChangeFunc func(Level)

// Multi returns a ChangeFunc that calls each non-nil fn in order.
func Multi(fns ...ChangeFunc) ChangeFunc {
	return func(l Level) {
		for _, fn := range fns {
			if fn != nil {
				fn(l)
			}
		}
	}
}

type Option func(*Simulator)

// WithInterval sets the tick interval. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithInitialLevel(l Level) Option {
	return func(s *Simulator) { s.level = l }
}

// WithClock replaces the wall clock, typically with a clock.Manual.
func WithClock(c clock.Clock) Option {
	return func(s *Simulator) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulator) { s.log = l }
}

// Simulator is a two-state machine driving a single pin level.
type Simulator struct {
	mu       sync.Mutex
	clock    clock.Clock
	interval time.Duration
	onChange ChangeFunc
	log      zerolog.Logger

	state  State
	level  Level
	timer  clock.Timer
	gen    uint64
	ticks  uint64
	closed bool
}

// New returns a stopped simulator at the initial level (High unless
// WithInitialLevel says otherwise). onChange may be nil.
func New(onChange ChangeFunc, opts ...Option) *Simulator {
	s := &Simulator{
		clock:    clock.System,
		interval: DefaultInterval,
		onChange: onChange,
		log:      zerolog.Nop(),
		state:    Stopped,
		level:    High,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Play starts the repeating toggle. It does nothing if already running.
func (s *Simulator) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state == Running {
		s.ignored("play")
		return
	}
	s.state = Running
	s.arm()
	s.log.Debug().Str("cmd", "play").Dur("interval", s.interval).Msg("pin running")
}

// Pause cancels the timer. No tick takes effect after Pause returns.
func (s *Simulator) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.ignored("pause")
		return
	}
	s.stop()
	s.log.Debug().Str("cmd", "pause").Stringer("level", s.level).Msg("pin stopped")
}

// Step toggles the level once. It is ignored while running.
func (s *Simulator) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.state == Running {
		s.ignored("step")
		return
	}
	s.set(s.level.Toggle())
	s.log.Debug().Str("cmd", "step").Stringer("level", s.level).Msg("pin stepped")
}

// Reset stops the simulator and forces the level low. The change callback
// fires even when the level was already low.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.ignored("reset")
		return
	}
	s.stop()
	s.set(Low)
	s.log.Debug().Str("cmd", "reset").Msg("pin reset")
}

// Close cancels any live timer. Every later command is a no-op.
func (s *Simulator) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.stop()
	s.closed = true
	s.log.Debug().Uint64("ticks", s.ticks).Msg("pin closed")
}

func (s *Simulator) Level() Level {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *Simulator) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Simulator) Running() bool { return s.State() == Running }

// Ticks returns how many timer ticks have toggled the pin.
func (s *Simulator) Ticks() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func (s *Simulator) Interval() time.Duration { return s.interval }

// arm schedules the next tick. Callers hold s.mu.
func (s *Simulator) arm() {
	gen := s.gen
	s.timer = s.clock.AfterFunc(s.interval, func() { s.tick(gen) })
}

func (s *Simulator) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// a timer cancelled after dispatch carries a stale generation
	if s.state != Running || gen != s.gen {
		return
	}
	s.ticks++
	s.set(s.level.Toggle())
	s.log.Debug().Uint64("tick", s.ticks).Stringer("level", s.level).Msg("pin tick")
	s.arm()
}

// stop cancels the timer and invalidates in-flight ticks. Callers hold s.mu.
func (s *Simulator) stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
	s.state = Stopped
}

func (s *Simulator) set(l Level) {
	s.level = l
	if s.onChange != nil {
		s.onChange(l)
	}
}

func (s *Simulator) ignored(cmd string) {
	s.log.Trace().Str("cmd", cmd).Stringer("state", s.state).Bool("closed", s.closed).Msg("command ignored")
}
