package viz

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/pinsim/internal/pin"
)

// ChangeMsg carries the latest emitted level into the Bubble Tea loop.
type ChangeMsg struct {
	Level pin.Level
	Count uint64
}

// Notifier coalesces simulator change callbacks. OnChange never blocks, so it
// is safe to call while the simulator holds its lock; the UI always sees the
// most recent level.
type Notifier struct {
	latest atomic.Bool
	count  atomic.Uint64
	ready  chan struct{}
	done   chan struct{}
	once   sync.Once
}

func NewNotifier(initial pin.Level) *Notifier {
	n := &Notifier{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	n.latest.Store(bool(initial))
	return n
}

// OnChange matches pin.ChangeFunc.
func (n *Notifier) OnChange(l pin.Level) {
	n.latest.Store(bool(l))
	n.count.Add(1)
	select {
	case n.ready <- struct{}{}:
	default:
	}
}

func (n *Notifier) Latest() pin.Level { return pin.Level(n.latest.Load()) }

// Count returns the number of emissions seen.
func (n *Notifier) Count() uint64 { return n.count.Load() }

// Wait returns a command that resolves with the next change, or nil once the
// notifier is closed.
func (n *Notifier) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-n.ready:
			return ChangeMsg{Level: n.Latest(), Count: n.Count()}
		case <-n.done:
			return nil
		}
	}
}

func (n *Notifier) Close() {
	n.once.Do(func() { close(n.done) })
}
