// Package viz provides the terminal front end for the pin simulator.
//
// The package implements a tabbed TUI using the Bubble Tea framework:
//
//   - [Model]: the application with simulator, components and about tabs
//   - [Canvas]: Braille-based pixel canvas used to draw the LED
//   - [Strip]: horizontally scrollable row of component cards
//   - [Notifier]: bridges simulator change callbacks into Bubble Tea messages
//
// # Key Bindings
//
//	P       - Play
//	Space   - Pause
//	S       - Step (only while paused)
//	R       - Reset (pause and force the pin low)
//	Tab/1-3 - Switch tabs
//	←/→     - Scroll the component strip
//	T       - Cycle color themes
//	Q       - Quit
package viz
