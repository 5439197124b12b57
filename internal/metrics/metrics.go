// Package metrics summarises recorded waveforms.
package metrics

import (
	"time"

	"github.com/san-kum/pinsim/internal/trace"
)

type Metric interface {
	Name() string
	Observe(s trace.Sample)
	Value() float64
	Reset()
}

type Result struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Evaluate resets each metric and feeds it every sample in order.
func Evaluate(samples []trace.Sample, ms ...Metric) []Result {
	out := make([]Result, 0, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, s := range samples {
			m.Observe(s)
		}
		out = append(out, Result{Name: m.Name(), Value: m.Value()})
	}
	return out
}

// Standard returns the metrics reported for a run recorded at interval.
func Standard(interval time.Duration) []Metric {
	return []Metric{
		NewDutyCycle(),
		NewToggleRate(),
		NewRegularity(interval, interval/10),
	}
}
