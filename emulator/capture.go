package emulator

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/rs/zerolog"

	"github.com/BeatGlow/oled"
)

// DefaultTemplate is the default file name template for captured frames.
const DefaultTemplate = "oled_%06d.png"

// Capture is a pseudo display that writes every frame to a numbered PNG file.
type Capture struct {
	*Emulator
	template string
	count    int
	log      zerolog.Logger
}

// NewCapture returns a capture display. The template is a fmt format with one integer verb
// for the frame number, starting at 1. An empty template uses DefaultTemplate.
func NewCapture(config *Config, template string) (*Capture, error) {
	e, err := New(config)
	if err != nil {
		return nil, err
	}
	if template == "" {
		template = DefaultTemplate
	}
	return &Capture{
		Emulator: e,
		template: template,
		log:      oled.Logger,
	}, nil
}

func (c *Capture) String() string {
	return fmt.Sprintf("capture %dx%d %s", c.width, c.height, c.template)
}

// Count is the number of frames written.
func (c *Capture) Count() int {
	return c.count
}

// Display writes the image to the next numbered file.
func (c *Capture) Display(img image.Image) error {
	frame, err := c.Frame(img)
	if err != nil {
		return err
	}

	name := fmt.Sprintf(c.template, c.count+1)
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = png.Encode(f, frame); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	c.count++
	c.log.Info().Str("file", name).Msg("writing frame")
	return nil
}

// Clear writes a blank frame.
func (c *Capture) Clear() error {
	return c.Display(c.Blank())
}

func (c *Capture) Close() error {
	return nil
}

var _ oled.Device = (*Capture)(nil)
