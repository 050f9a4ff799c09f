// Package emulator contains pseudo displays for previewing display output without hardware.
//
// The emulated displays accept any image of the configured size, not only 1-bit images, and
// report [pixel.CRGB16Model] so a [virtual.Canvas] composites in color. Output is optionally
// scaled up with one of the [Transform] algorithms.
package emulator

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/pixel"
)

// ErrTransform is returned for an unknown transform or an invalid scale.
var ErrTransform = errors.New("emulator: invalid transform")

// Config for an emulated display.
type Config struct {
	// Width of the emulated display, default 128.
	Width int

	// Height of the emulated display, default 64.
	Height int

	// Transform applied to every frame, default Scale2x.
	Transform Transform

	// Scale factor, default 2. Ignored for the None transform.
	Scale int
}

// DefaultConfig are the default configuration values.
var DefaultConfig = Config{
	Width:     128,
	Height:    64,
	Transform: Scale2x,
	Scale:     2,
}

// Emulator implements the part shared by all emulated displays: validating, rendering and
// scaling frames. It is not a [oled.Device] by itself.
type Emulator struct {
	width     int
	height    int
	scale     int
	transform Transform
	scaler    scaler
	hidden    bool
	last      *image.RGBA
}

// New returns the emulator core for config, a nil config uses DefaultConfig.
func New(config *Config) (*Emulator, error) {
	c := DefaultConfig
	if config != nil {
		c = *config
	}
	if c.Width == 0 {
		c.Width = DefaultConfig.Width
	}
	if c.Height == 0 {
		c.Height = DefaultConfig.Height
	}
	if c.Transform == "" {
		c.Transform = DefaultConfig.Transform
	}
	if c.Scale == 0 {
		c.Scale = DefaultConfig.Scale
	}
	if c.Width < 0 || c.Height < 0 {
		return nil, fmt.Errorf("emulator: invalid size %dx%d", c.Width, c.Height)
	}
	if c.Transform == None || c.Scale == 1 {
		c.Transform, c.Scale = None, 1
	}

	s, err := newScaler(c.Transform, c.Scale)
	if err != nil {
		return nil, err
	}
	return &Emulator{
		width:     c.Width,
		height:    c.Height,
		scale:     c.Scale,
		transform: c.Transform,
		scaler:    s,
	}, nil
}

func (e *Emulator) Bounds() image.Rectangle {
	return image.Rect(0, 0, e.width, e.height)
}

func (*Emulator) ColorModel() color.Model {
	return pixel.CRGB16Model
}

// Size of the rendered output frames.
func (e *Emulator) Size() image.Point {
	return image.Pt(e.width*e.scale, e.height*e.scale)
}

// Transform used for scaling.
func (e *Emulator) Transform() Transform {
	return e.transform
}

// Show switches the emulated display on.
func (e *Emulator) Show() error {
	e.hidden = false
	return nil
}

// Hide switches the emulated display off, frames render blank until [Emulator.Show].
func (e *Emulator) Hide() error {
	e.hidden = true
	return nil
}

// Hidden reports if the emulated display is switched off.
func (e *Emulator) Hidden() bool {
	return e.hidden
}

// Frame validates img and returns it rendered at the output size.
func (e *Emulator) Frame(img image.Image) (*image.RGBA, error) {
	if img == nil {
		return nil, &oled.ValidationError{Op: "display", Reason: "no image"}
	}
	if size := img.Bounds().Size(); size.X != e.width || size.Y != e.height {
		return nil, &oled.ValidationError{
			Op:     "display",
			Reason: fmt.Sprintf("image size %s does not match display size %dx%d", size, e.width, e.height),
		}
	}

	src := image.NewRGBA(e.Bounds())
	if e.hidden {
		draw.Draw(src, src.Rect, image.Black, image.Point{}, draw.Src)
	} else {
		draw.Draw(src, src.Rect, img, img.Bounds().Min, draw.Src)
	}
	e.last = e.scaler(src)
	return e.last, nil
}

// Blank returns an all black image of the display size.
func (e *Emulator) Blank() image.Image {
	img := image.NewRGBA(e.Bounds())
	draw.Draw(img, img.Rect, image.Black, image.Point{}, draw.Src)
	return img
}

// Last is the most recently rendered frame, or nil.
func (e *Emulator) Last() *image.RGBA {
	return e.last
}
