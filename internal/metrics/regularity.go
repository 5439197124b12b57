package metrics

import (
	"time"

	"github.com/san-kum/pinsim/internal/trace"
)

// Regularity is the fraction of gaps between consecutive samples that land
// within tolerance of the nominal interval. Manual steps and pauses show up
// as irregular gaps.
type Regularity struct {
	interval   time.Duration
	tolerance  time.Duration
	prev       time.Duration
	seen       bool
	gaps       int
	violations int
}

func NewRegularity(interval, tolerance time.Duration) *Regularity {
	return &Regularity{interval: interval, tolerance: tolerance}
}

func (r *Regularity) Name() string {
	return "regularity"
}

func (r *Regularity) Observe(s trace.Sample) {
	if r.seen {
		r.gaps++
		diff := s.At - r.prev - r.interval
		if diff < 0 {
			diff = -diff
		}
		if diff > r.tolerance {
			r.violations++
		}
	}
	r.prev, r.seen = s.At, true
}

func (r *Regularity) Value() float64 {
	if r.gaps == 0 {
		return 1.0
	}
	return 1.0 - float64(r.violations)/float64(r.gaps)
}

func (r *Regularity) Reset() {
	r.prev, r.seen = 0, false
	r.gaps, r.violations = 0, 0
}
