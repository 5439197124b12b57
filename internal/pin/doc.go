// Package pin implements a single simulated microcontroller output pin.
//
// A [Simulator] owns the running/stopped state, the current [Level] and the
// one repeating timer that toggles the level while running. It accepts four
// commands and reports every level change through a callback:
//
//   - [Simulator.Play]: start toggling every interval (no-op when running)
//   - [Simulator.Pause]: cancel the timer and stop
//   - [Simulator.Step]: toggle once (only when stopped)
//   - [Simulator.Reset]: stop and force the level low
//
// # Example
//
//	sim := pin.New(func(l pin.Level) { fmt.Println(l) })
//	defer sim.Close()
//	sim.Play()
//
// # Thread Safety
//
// Commands and timer ticks are serialized by an internal mutex, so callers may
// issue commands from any goroutine. The change callback runs while that
// mutex is held and must not call back into the same Simulator.
package pin
