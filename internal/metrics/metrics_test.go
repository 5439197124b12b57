package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/pinsim/internal/pin"
	"github.com/san-kum/pinsim/internal/trace"
)

func square(levels ...pin.Level) []trace.Sample {
	out := make([]trace.Sample, len(levels))
	for i, l := range levels {
		out[i] = trace.Sample{Seq: i, At: time.Duration(i) * 500 * time.Millisecond, Level: l}
	}
	return out
}

func TestDutyCycle(t *testing.T) {
	m := NewDutyCycle()
	for _, s := range square(pin.High, pin.Low, pin.High, pin.Low) {
		m.Observe(s)
	}
	if got := m.Value(); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("expected duty 0.667, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero duty after reset")
	}
}

func TestToggleRate(t *testing.T) {
	m := NewToggleRate()
	for _, s := range square(pin.High, pin.Low, pin.High, pin.Low) {
		m.Observe(s)
	}
	if got := m.Value(); math.Abs(got-2.0) > 1e-9 {
		t.Errorf("expected 2 toggles/s, got %f", got)
	}
}

func TestToggleRateIgnoresRepeatedLevel(t *testing.T) {
	m := NewToggleRate()
	for _, s := range square(pin.Low, pin.Low, pin.Low) {
		m.Observe(s)
	}
	if m.Value() != 0 {
		t.Errorf("expected no toggles, got %f", m.Value())
	}
}

func TestRegularity(t *testing.T) {
	samples := square(pin.High, pin.Low, pin.High, pin.Low)
	samples = append(samples, trace.Sample{Seq: 4, At: 1700 * time.Millisecond, Level: pin.High})

	m := NewRegularity(500*time.Millisecond, 50*time.Millisecond)
	for _, s := range samples {
		m.Observe(s)
	}
	if got := m.Value(); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("expected regularity 0.75, got %f", got)
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Error("expected regularity 1 with no gaps")
	}
}

func TestEvaluate(t *testing.T) {
	results := Evaluate(square(pin.High, pin.Low, pin.High), Standard(500*time.Millisecond)...)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	want := map[string]float64{"duty_cycle": 0.5, "toggles_per_sec": 2, "regularity": 1}
	for _, r := range results {
		if math.Abs(r.Value-want[r.Name]) > 1e-9 {
			t.Errorf("%s: expected %f, got %f", r.Name, want[r.Name], r.Value)
		}
	}
}

func TestEvaluateEmpty(t *testing.T) {
	for _, r := range Evaluate(nil, Standard(time.Second)...) {
		if math.IsNaN(r.Value) {
			t.Errorf("%s is NaN", r.Name)
		}
	}
}
