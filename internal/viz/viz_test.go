package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/pinsim/internal/clock"
	"github.com/san-kum/pinsim/internal/pin"
)

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func newTestModel(t *testing.T, initial pin.Level) (Model, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	n := NewNotifier(initial)
	sim := pin.New(n.OnChange, pin.WithClock(clk), pin.WithInitialLevel(initial))
	t.Cleanup(sim.Close)
	return NewModel(sim, n, Options{ScrollStep: 22}), clk
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func TestLEDClass(t *testing.T) {
	if LEDClass(pin.High) != "on" || LEDClass(pin.Low) != "off" {
		t.Errorf("unexpected classes %q/%q", LEDClass(pin.High), LEDClass(pin.Low))
	}
}

func TestRenderLED(t *testing.T) {
	on, off := RenderLED(pin.High, ThemeMinimal), RenderLED(pin.Low, ThemeMinimal)
	if on == off {
		t.Fatal("lit and unlit LED render identically")
	}
	if !strings.Contains(on, "1") || !strings.Contains(off, "0") {
		t.Error("LED label should show the pin value")
	}
	if RenderLED(pin.High, ThemeMinimal) != on {
		t.Error("RenderLED should be deterministic")
	}
}

func TestLEDGlyphFill(t *testing.T) {
	if ledGlyph(pin.High) == ledGlyph(pin.Low) {
		t.Error("filled and outlined glyphs should differ")
	}
}

func TestCanvasCircle(t *testing.T) {
	c := NewCanvas(8, 5)
	c.DrawCircle(8, 8, 5)
	if !c.IsSet(13, 8) || !c.IsSet(8, 3) {
		t.Error("circle outline missing cardinal points")
	}
	if c.IsSet(8, 8) {
		t.Error("outline should leave the center empty")
	}
	c.FillCircle(8, 8, 5)
	if !c.IsSet(8, 8) {
		t.Error("filled circle should set the center")
	}
	c.Clear()
	if c.IsSet(8, 8) {
		t.Error("clear should reset pixels")
	}
}

func TestNotifierCoalesces(t *testing.T) {
	n := NewNotifier(pin.High)
	n.OnChange(pin.Low)
	n.OnChange(pin.High)
	n.OnChange(pin.Low)

	if n.Count() != 3 {
		t.Errorf("expected 3 emissions, got %d", n.Count())
	}
	msg := n.Wait()()
	change, ok := msg.(ChangeMsg)
	if !ok {
		t.Fatalf("expected ChangeMsg, got %T", msg)
	}
	if change.Level != pin.Low || change.Count != 3 {
		t.Errorf("unexpected change %+v", change)
	}

	n.Close()
	if msg := n.Wait()(); msg != nil {
		t.Errorf("expected nil after close, got %v", msg)
	}
}

func TestStripScrollClamped(t *testing.T) {
	s := NewStrip(defaultCards, 22)
	view := 60

	s = s.Scroll(-1, view)
	if s.Offset() != 0 || s.CanScrollLeft() {
		t.Errorf("offset should clamp at 0, got %d", s.Offset())
	}

	s = s.Scroll(1, view)
	if s.Offset() != 22 {
		t.Errorf("expected offset 22, got %d", s.Offset())
	}

	for i := 0; i < 20; i++ {
		s = s.Scroll(1, view)
	}
	if s.Offset() != s.contentWidth()-view {
		t.Errorf("expected offset clamped to %d, got %d", s.contentWidth()-view, s.Offset())
	}
	if s.CanScrollRight(view) {
		t.Error("should not scroll past the last card")
	}
}

func TestStripView(t *testing.T) {
	s := NewStrip(defaultCards, 22)
	lines := strings.Split(s.View(30), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 30 {
			t.Errorf("line %q has %d columns, want 30", l, n)
		}
	}
	if !strings.Contains(lines[1], "GPIO pin") {
		t.Errorf("first card title missing: %q", lines[1])
	}

	s = s.Scroll(1, 30)
	if !strings.HasPrefix(strings.Split(s.View(30), "\n")[1], "│ LED") {
		t.Error("one step should bring the second card to the left edge")
	}
}

func TestFit(t *testing.T) {
	if got := fit("LED", 6); got != " LED  " {
		t.Errorf("fit pad = %q", got)
	}
	if got := fit("Microcontroller", 6); got != " Micr…" {
		t.Errorf("fit truncate = %q", got)
	}
}

func TestModelTabs(t *testing.T) {
	m, _ := newTestModel(t, pin.High)

	tests := []struct {
		key  tea.KeyMsg
		want tab
	}{
		{tea.KeyMsg{Type: tea.KeyTab}, tabComponents},
		{tea.KeyMsg{Type: tea.KeyTab}, tabAbout},
		{tea.KeyMsg{Type: tea.KeyTab}, tabSimulator},
		{tea.KeyMsg{Type: tea.KeyShiftTab}, tabAbout},
		{runes("2"), tabComponents},
		{runes("1"), tabSimulator},
	}
	for _, tt := range tests {
		m = press(m, tt.key)
		if m.active != tt.want {
			t.Fatalf("after %q active = %s, want %s", tt.key.String(), tabNames[m.active], tabNames[tt.want])
		}
	}
	if !strings.Contains(m.View(), "simulator") {
		t.Error("view should render tab names")
	}
}

func TestModelCommands(t *testing.T) {
	m, clk := newTestModel(t, pin.High)

	m = press(m, runes("s"))
	if m.level != pin.Low || m.emissions != 1 {
		t.Errorf("step: level=%v emissions=%d", m.level, m.emissions)
	}

	m = press(m, runes("p"))
	if !m.sim.Running() {
		t.Fatal("p should start the simulator")
	}
	m = press(m, runes("s"))
	if m.emissions != 1 {
		t.Error("step while running should be ignored")
	}

	clk.Advance(pin.DefaultInterval)
	next, cmd := m.Update(ChangeMsg{Level: pin.High, Count: 2})
	m = next.(Model)
	if m.level != pin.High || cmd == nil {
		t.Errorf("change message not applied: level=%v", m.level)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.sim.Running() {
		t.Error("space should pause")
	}

	m = press(m, runes("r"))
	if m.level != pin.Low || m.emissions != 3 {
		t.Errorf("reset: level=%v emissions=%d", m.level, m.emissions)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show paused state")
	}
}

func TestModelCommandsOnlyOnSimulatorTab(t *testing.T) {
	m, _ := newTestModel(t, pin.High)
	m = press(m, runes("2"), runes("s"), runes("p"))
	if m.sim.Running() || m.emissions != 0 {
		t.Error("simulator keys should not act from the components tab")
	}
}

func TestModelComponentsScroll(t *testing.T) {
	m, _ := newTestModel(t, pin.High)
	m = press(m, runes("2"), tea.KeyMsg{Type: tea.KeyRight})
	if m.strip.Offset() != 22 {
		t.Errorf("expected offset 22, got %d", m.strip.Offset())
	}
	m = press(m, runes("<"))
	if m.strip.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", m.strip.Offset())
	}
	if !strings.Contains(m.View(), "▶") {
		t.Error("right arrow should show when more cards are hidden")
	}
}

func TestModelThemeCycle(t *testing.T) {
	m, _ := newTestModel(t, pin.High)
	first := m.theme.Name
	m = press(m, runes("t"))
	if m.theme.Name == first {
		t.Error("t should change the theme")
	}
}

func TestModelQuitClosesSimulator(t *testing.T) {
	m, clk := newTestModel(t, pin.High)
	m = press(m, runes("p"))
	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if clk.Pending() != 0 {
		t.Error("quit should cancel the timer")
	}
	m.sim.Play()
	if m.sim.Running() {
		t.Error("closed simulator should ignore play")
	}
}

func TestNextThemeWraps(t *testing.T) {
	last := Themes[len(Themes)-1]
	if NextTheme(last).Name != Themes[0].Name {
		t.Error("NextTheme should wrap to the first theme")
	}
	if GetTheme("nope").Name != ThemeCyberpunk.Name {
		t.Error("unknown theme should fall back to cyberpunk")
	}
}

func TestStylesUseThemePalette(t *testing.T) {
	for _, th := range Themes {
		st := newStyles(th)
		if th.LEDOn == th.LEDOff {
			t.Errorf("%s: lit and dark LED colors match", th.Name)
		}
		if st.ledOn.GetForeground() != th.LEDOn || st.ledOff.GetForeground() != th.LEDOff {
			t.Errorf("%s: LED styles not taken from the theme", th.Name)
		}
		if st.running.GetForeground() != th.Running || st.paused.GetForeground() != th.Paused {
			t.Errorf("%s: state styles not taken from the theme", th.Name)
		}
		if st.tabActive.GetBackground() != th.Background {
			t.Errorf("%s: active tab should use the theme background", th.Name)
		}
	}
}
