package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/pinsim/internal/trace"
)

// SVGOptions controls WaveformSVG output.
type SVGOptions struct {
	Width, Height int
	Stroke        string
	Background    string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{Width: 640, Height: 120, Stroke: "#00ff88", Background: "#0a0a0a"}
}

// WaveformSVG draws samples as a square wave. The level holds until the next
// sample; the last level is held for one more interval so the final edge is
// visible. Returns "" when there are no samples.
func WaveformSVG(samples []trace.Sample, interval time.Duration, opts SVGOptions) string {
	if len(samples) == 0 {
		return ""
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultSVGOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}

	end := samples[len(samples)-1].At + interval
	if end <= 0 {
		end = 1
	}
	pad := float64(opts.Height) * 0.15
	xOf := func(at time.Duration) float64 {
		return float64(at) / float64(end) * float64(opts.Width)
	}
	yOf := func(high bool) float64 {
		if high {
			return pad
		}
		return float64(opts.Height) - pad
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="2" d="M`,
		opts.Width, opts.Height, opts.Width, opts.Height, opts.Background, opts.Stroke))

	first := samples[0]
	sb.WriteString(fmt.Sprintf("%.1f,%.1f", xOf(first.At), yOf(bool(first.Level))))
	for i := 1; i < len(samples); i++ {
		prev, cur := samples[i-1], samples[i]
		x := xOf(cur.At)
		sb.WriteString(fmt.Sprintf(" L%.1f,%.1f L%.1f,%.1f", x, yOf(bool(prev.Level)), x, yOf(bool(cur.Level))))
	}
	last := samples[len(samples)-1]
	sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", xOf(end), yOf(bool(last.Level))))

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
