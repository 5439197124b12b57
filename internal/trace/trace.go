// Package trace records pin emissions as timed samples.
package trace

import (
	"strings"
	"sync"
	"time"

	"github.com/san-kum/pinsim/internal/clock"
	"github.com/san-kum/pinsim/internal/pin"
)

// Sample is one emission, stamped with time since the recorder started.
type Sample struct {
	Seq   int
	At    time.Duration
	Level pin.Level
}

// Recorder collects samples. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	clock   clock.Clock
	start   time.Time
	samples []Sample
}

func NewRecorder(c clock.Clock) *Recorder {
	if c == nil {
		c = clock.System
	}
	return &Recorder{clock: c, start: c.Now()}
}

// Observe matches pin.ChangeFunc.
func (r *Recorder) Observe(l pin.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, Sample{
		Seq:   len(r.samples),
		At:    r.clock.Now().Sub(r.start),
		Level: l,
	})
}

func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

// Values maps samples to 0/1 for plotting.
func Values(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		if s.Level {
			out[i] = 1
		}
	}
	return out
}

// Waveform renders the last width samples as a strip of ▔ (high) and ▁ (low).
func Waveform(samples []Sample, width int) string {
	if width <= 0 || len(samples) == 0 {
		return ""
	}
	if len(samples) > width {
		samples = samples[len(samples)-width:]
	}
	var b strings.Builder
	for _, s := range samples {
		if s.Level {
			b.WriteRune('▔')
		} else {
			b.WriteRune('▁')
		}
	}
	return b.String()
}

// Edges counts level transitions between consecutive samples.
func Edges(samples []Sample) (rising, falling int) {
	for i := 1; i < len(samples); i++ {
		prev, cur := bool(samples[i-1].Level), bool(samples[i].Level)
		switch {
		case !prev && cur:
			rising++
		case prev && !cur:
			falling++
		}
	}
	return rising, falling
}
