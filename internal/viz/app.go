package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/pinsim/internal/pin"
)

type tab int

const (
	tabSimulator tab = iota
	tabComponents
	tabAbout
	tabCount
)

var tabNames = [tabCount]string{"simulator", "components", "about"}

const (
	defaultWidth = 80
	stripMargin  = 8
)

// Options configures the front end.
type Options struct {
	Theme      string
	ScrollStep int
	Title      string
}

// Model is the Bubble Tea application. The LED is drawn from the level
// delivered by the Notifier, never read back from the simulator.
type Model struct {
	sim       *pin.Simulator
	notifier  *Notifier
	level     pin.Level
	emissions uint64
	active    tab
	strip     Strip
	theme     Theme
	title     string
	width     int
}

func NewModel(sim *pin.Simulator, n *Notifier, opts Options) Model {
	title := opts.Title
	if title == "" {
		title = "PINSIM"
	}
	return Model{
		sim:       sim,
		notifier:  n,
		level:     n.Latest(),
		emissions: n.Count(),
		strip:     NewStrip(defaultCards, opts.ScrollStep),
		theme:     GetTheme(opts.Theme),
		title:     title,
		width:     defaultWidth,
	}
}

func (m Model) Init() tea.Cmd { return m.notifier.Wait() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ChangeMsg:
		m.level, m.emissions = msg.Level, msg.Count
		return m, m.notifier.Wait()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.strip = m.strip.Scroll(0, m.stripView())
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.sim.Close()
		m.notifier.Close()
		return m, tea.Quit
	case "tab":
		m.active = (m.active + 1) % tabCount
		return m, nil
	case "shift+tab":
		m.active = (m.active + tabCount - 1) % tabCount
		return m, nil
	case "1", "2", "3":
		m.active = tab(msg.String()[0] - '1')
		return m, nil
	case "t":
		m.theme = NextTheme(m.theme)
		return m, nil
	}

	switch m.active {
	case tabSimulator:
		m.simulatorKey(msg)
	case tabComponents:
		m.componentsKey(msg)
	}
	return m, nil
}

func (m *Model) simulatorKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "p":
		m.sim.Play()
	case " ", "space":
		m.sim.Pause()
	case "s":
		m.sim.Step()
	case "r":
		m.sim.Reset()
	default:
		return
	}
	// step and reset emit synchronously; show them without waiting for the
	// next ChangeMsg round trip
	m.level, m.emissions = m.notifier.Latest(), m.notifier.Count()
}

func (m *Model) componentsKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "left", "h", "<":
		m.strip = m.strip.Scroll(-1, m.stripView())
	case "right", "l", ">":
		m.strip = m.strip.Scroll(1, m.stripView())
	}
}

func (m Model) stripView() int {
	return max(m.width-stripMargin, cardWidth)
}

func (m Model) View() string {
	st := newStyles(m.theme)
	var b strings.Builder
	b.WriteString(st.title.Render(m.title) + "  " + st.subtle.Render("microcontroller pin simulator") + "\n")
	b.WriteString(m.viewTabs(st) + "\n")

	var body string
	switch m.active {
	case tabSimulator:
		body = m.viewSimulator(st)
	case tabComponents:
		body = m.viewComponents(st)
	case tabAbout:
		body = m.viewAbout(st)
	}
	b.WriteString(st.panel.Render(body) + "\n")
	b.WriteString(st.keyHints("tab", "switch", "t", "theme ("+m.theme.Name+")", "q", "quit"))
	return b.String()
}

func (m Model) viewTabs(st styles) string {
	rendered := make([]string, 0, tabCount)
	for i, name := range tabNames {
		style := st.tabIdle
		if tab(i) == m.active {
			style = st.tabActive
		}
		rendered = append(rendered, style.Render(fmt.Sprintf("%d %s", i+1, name)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)
}

func (m Model) viewSimulator(st styles) string {
	status := st.paused.Render("PAUSED")
	if m.sim.Running() {
		status = st.running.Render("RUNNING")
	}

	var s strings.Builder
	s.WriteString(st.label.Render("State") + status + "\n")
	s.WriteString(st.label.Render("Pin") + st.value.Render(fmt.Sprintf("%s (%s)", m.level, m.level.Name())) + "\n")
	s.WriteString(st.label.Render("Interval") + st.value.Render(m.sim.Interval().String()) + "\n")
	s.WriteString(st.label.Render("Ticks") + st.value.Render(fmt.Sprintf("%d", m.sim.Ticks())) + "\n")
	s.WriteString(st.label.Render("Emissions") + st.value.Render(fmt.Sprintf("%d", m.emissions)) + "\n")

	led := lipgloss.NewStyle().MarginRight(4).Render(RenderLED(m.level, m.theme))
	top := lipgloss.JoinHorizontal(lipgloss.Top, led, s.String())
	return top + "\n\n" + st.keyHints("p", "play", "space", "pause", "s", "step", "r", "reset")
}

func (m Model) viewComponents(st styles) string {
	view := m.stripView()
	left, right := " ", " "
	if m.strip.CanScrollLeft() {
		left = st.arrow.Render("◀")
	}
	if m.strip.CanScrollRight(view) {
		right = st.arrow.Render("▶")
	}
	strip := st.strip.Render(m.strip.View(view))
	row := lipgloss.JoinHorizontal(lipgloss.Center, left+" ", strip, " "+right)
	return row + "\n\n" + st.keyHints("←/h/<", "scroll left", "→/l/>", "scroll right")
}

func (m Model) viewAbout(st styles) string {
	lines := []string{
		st.title.Render("About"),
		"",
		"A single simulated GPIO pin wired to an LED.",
		"Play toggles the pin every interval; pause stops the timer.",
		"Step toggles once while paused. Reset pauses and drives the pin low.",
		"",
		st.separator(40),
		st.subtle.Render("themes: " + strings.Join(ThemeNames(), ", ")),
	}
	return strings.Join(lines, "\n")
}

// Run starts the TUI in the alternate screen and blocks until it exits.
func Run(sim *pin.Simulator, n *Notifier, opts Options) error {
	p := tea.NewProgram(NewModel(sim, n, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
