// Package viz renders orbital systems in the terminal.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one system, stepping it when it is a sim.Driver
//   - [Browser]: preset picker that opens the live view
//   - [Canvas]: Braille-based pixel canvas for tracks and entities
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	[ ]   - Halve/double the time step multiplier
//	R     - Reset to time zero
//	T     - Cycle color themes
//	Q     - Quit
package viz
