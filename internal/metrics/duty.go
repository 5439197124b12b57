package metrics

import (
	"time"

	"github.com/san-kum/pinsim/internal/trace"
)

// DutyCycle is the fraction of elapsed time the pin spent high, measured
// from the first sample to the last.
type DutyCycle struct {
	prev  trace.Sample
	seen  bool
	high  time.Duration
	total time.Duration
}

func NewDutyCycle() *DutyCycle {
	return &DutyCycle{}
}

func (d *DutyCycle) Name() string {
	return "duty_cycle"
}

func (d *DutyCycle) Observe(s trace.Sample) {
	if d.seen {
		span := s.At - d.prev.At
		d.total += span
		if d.prev.Level {
			d.high += span
		}
	}
	d.prev, d.seen = s, true
}

func (d *DutyCycle) Value() float64 {
	if d.total <= 0 {
		return 0
	}
	return float64(d.high) / float64(d.total)
}

func (d *DutyCycle) Reset() {
	*d = DutyCycle{}
}

// ToggleRate counts level changes per second of elapsed time. Reset emitting
// an unchanged Low is not a change.
type ToggleRate struct {
	first   time.Duration
	last    time.Duration
	prev    trace.Sample
	seen    bool
	changes int
}

func NewToggleRate() *ToggleRate {
	return &ToggleRate{}
}

func (r *ToggleRate) Name() string {
	return "toggles_per_sec"
}

func (r *ToggleRate) Observe(s trace.Sample) {
	if !r.seen {
		r.first = s.At
	} else if s.Level != r.prev.Level {
		r.changes++
	}
	r.last = s.At
	r.prev, r.seen = s, true
}

func (r *ToggleRate) Value() float64 {
	elapsed := r.last - r.first
	if elapsed <= 0 {
		return 0
	}
	return float64(r.changes) / elapsed.Seconds()
}

func (r *ToggleRate) Reset() {
	*r = ToggleRate{}
}
