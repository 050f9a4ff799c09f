// Package conn implements the serial links to the display controllers on top of periph.io.
//
// Both links expose the same two operations: Command sends controller instructions and Data
// sends display memory. How the two are told apart depends on the bus: I²C prefixes every
// transfer with a control byte, SPI drives a separate data/command (DC) GPIO line.
package conn
