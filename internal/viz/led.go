package viz

import (
	"fmt"

	"github.com/san-kum/pinsim/internal/pin"
)

const (
	ledCols = 8
	ledRows = 5
)

// LEDClass names the indicator state for a level.
func LEDClass(l pin.Level) string {
	if l {
		return "on"
	}
	return "off"
}

// ledGlyph draws the LED body and legs. A lit LED is filled.
func ledGlyph(l pin.Level) string {
	c := NewCanvas(ledCols, ledRows)
	cx, cy, r := ledCols, 7, 6
	if l {
		c.FillCircle(cx, cy, r)
	} else {
		c.DrawCircle(cx, cy, r)
	}
	c.DrawLine(cx-3, cy+r+1, cx-3, ledRows*4-1)
	c.DrawLine(cx+3, cy+r+1, cx+3, ledRows*4-1)
	return c.String()
}

// RenderLED is a pure function of the level: glyph plus "1"/"0" label.
func RenderLED(l pin.Level, t Theme) string {
	st := newStyles(t)
	style := st.ledOff
	if l {
		style = st.ledOn
	}
	label := fmt.Sprintf("  %s  %s", l.String(), LEDClass(l))
	return style.Render(ledGlyph(l)) + "\n" + style.Render(label)
}
