package store

import (
	"encoding/json"
	"io"

	"github.com/san-kum/pinsim/internal/metrics"
	"github.com/san-kum/pinsim/internal/trace"
)

type ExportData struct {
	RunMetadata
	Rising  int              `json:"rising_edges"`
	Falling int              `json:"falling_edges"`
	Metrics []metrics.Result `json:"metrics"`
	Samples []ExportPoint    `json:"samples"`
}

type ExportPoint struct {
	Seq   int   `json:"seq"`
	TMs   int64 `json:"t_ms"`
	Level int   `json:"level"`
}

func ExportJSON(w io.Writer, meta RunMetadata, samples []trace.Sample) error {
	data := ExportData{
		RunMetadata: meta,
		Samples:     make([]ExportPoint, len(samples)),
	}
	data.Rising, data.Falling = trace.Edges(samples)
	data.Metrics = metrics.Evaluate(samples, metrics.Standard(meta.Interval())...)
	for i, s := range samples {
		p := ExportPoint{Seq: s.Seq, TMs: s.At.Milliseconds()}
		if s.Level {
			p.Level = 1
		}
		data.Samples[i] = p
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
