package viz

import (
	"strings"
	"unicode/utf8"
)

const (
	cardWidth = 20
	cardGap   = 2
)

// Card is one component tile in the strip.
type Card struct {
	Title string
	Body  string
}

var defaultCards = []Card{
	{"GPIO pin", "digital out, 1 or 0"},
	{"LED", "lights while high"},
	{"Resistor", "limits LED current"},
	{"Timer", "ticks every 500ms"},
	{"Push button", "play, pause, step"},
	{"Microcontroller", "drives the pin"},
	{"Breadboard", "holds the circuit"},
	{"Jumper wire", "pin to LED anode"},
}

// Strip is a horizontally scrolling row of cards. Offset is in columns.
type Strip struct {
	cards  []Card
	step   int
	offset int
}

func NewStrip(cards []Card, step int) Strip {
	if step <= 0 {
		step = cardWidth + cardGap
	}
	return Strip{cards: cards, step: step}
}

func (s Strip) Offset() int { return s.offset }

func (s Strip) contentWidth() int {
	if len(s.cards) == 0 {
		return 0
	}
	return len(s.cards)*(cardWidth+cardGap) - cardGap
}

func (s Strip) maxOffset(view int) int {
	return max(s.contentWidth()-view, 0)
}

// Scroll moves by dir steps, clamped to the content for a view of the given
// width.
func (s Strip) Scroll(dir, view int) Strip {
	s.offset += dir * s.step
	s.offset = min(max(s.offset, 0), s.maxOffset(view))
	return s
}

func (s Strip) CanScrollLeft() bool { return s.offset > 0 }

func (s Strip) CanScrollRight(view int) bool { return s.offset < s.maxOffset(view) }

// rows lays every card out as plain text, four lines tall.
func (s Strip) rows() [4][]rune {
	var lines [4]strings.Builder
	inner := cardWidth - 2
	for i, c := range s.cards {
		if i > 0 {
			for l := range lines {
				lines[l].WriteString(strings.Repeat(" ", cardGap))
			}
		}
		lines[0].WriteString("╭" + strings.Repeat("─", inner) + "╮")
		lines[1].WriteString("│" + fit(c.Title, inner) + "│")
		lines[2].WriteString("│" + fit(c.Body, inner) + "│")
		lines[3].WriteString("╰" + strings.Repeat("─", inner) + "╯")
	}
	var out [4][]rune
	for l := range lines {
		out[l] = []rune(lines[l].String())
	}
	return out
}

// View returns the visible window of the strip, view columns wide.
func (s Strip) View(view int) string {
	rows := s.rows()
	var b strings.Builder
	for l, row := range rows {
		if l > 0 {
			b.WriteByte('\n')
		}
		end := min(s.offset+view, len(row))
		start := min(s.offset, end)
		b.WriteString(string(row[start:end]))
	}
	return b.String()
}

// fit pads or truncates s to exactly n runes with one space of margin.
func fit(s string, n int) string {
	s = " " + s
	if utf8.RuneCountInString(s) > n {
		r := []rune(s)
		return string(r[:n-1]) + "…"
	}
	return s + strings.Repeat(" ", n-utf8.RuneCountInString(s))
}
