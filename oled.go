// Package oled contains drivers for monochrome OLED matrix displays.
//
// Two controller families are supported: the Solomon Systech [SSD1306] and the Sino Wealth
// [SH1106]. Both accept a 1-bit [pixel.MonoImage] of the configured size through
// [Device.Display] and pack it into the controller's page addressed memory.
//
// Set the DISPLAY_DEBUG environment variable to get debug logging on stderr.
package oled

import (
	"image"
	"image/color"
	"os"

	"github.com/rs/zerolog"
)

// Logger receives the package debug events. It is disabled unless DISPLAY_DEBUG is set.
var Logger = zerolog.Nop()

func init() {
	if os.Getenv("DISPLAY_DEBUG") != "" {
		Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}
}

// Device is a display.
type Device interface {
	// Display sends the image to the display. The image size must match the display size.
	Display(image.Image) error

	// Show switches the display on.
	Show() error

	// Hide switches the display off, putting it in low-power sleep mode.
	Hide() error

	// Clear the display memory.
	Clear() error

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// ColorModel used by the display.
	ColorModel() color.Model

	// Close hides and clears the display, then releases the connection.
	Close() error
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int
}

func (config *Config) withDefaults(width, height int) Config {
	var c Config
	if config != nil {
		c = *config
	}
	if c.Width == 0 {
		c.Width = width
	}
	if c.Height == 0 {
		c.Height = height
	}
	return c
}
