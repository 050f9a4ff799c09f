package oled

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/BeatGlow/oled/pixel"
)

// ChunkSize is the maximum number of bytes passed to a single [Conn] call.
const ChunkSize = 32

// geometry of a page addressed display, computed once at construction.
type geometry struct {
	width  int
	height int
	pages  int
}

func newGeometry(width, height int) geometry {
	return geometry{
		width:  width,
		height: height,
		pages:  height / 8,
	}
}

func (g geometry) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

func (geometry) ColorModel() color.Model {
	return pixel.MonoModel
}

// device implements the parts shared by all drivers.
type device struct {
	geometry
	c      Conn
	halted bool
	closed bool
}

// command sends one or more command bytes in a single transfer.
func (d *device) command(cmd ...byte) error {
	if len(cmd) > ChunkSize {
		return &ValidationError{
			Op:     "command",
			Reason: fmt.Sprintf("%d bytes exceed the %d byte transfer limit", len(cmd), ChunkSize),
		}
	}
	return d.c.Command(cmd...)
}

// data sends the payload in ordered transfers of at most ChunkSize bytes.
func (d *device) data(data []byte) error {
	if len(data) > ChunkSize {
		Logger.Debug().
			Int("bytes", len(data)).
			Int("chunks", (len(data)+ChunkSize-1)/ChunkSize).
			Msg("chunked data transfer")
	}
	for len(data) > 0 {
		n := min(len(data), ChunkSize)
		if err := d.c.Data(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (d *device) Show() error {
	if err := d.command(setDisplayOn); err != nil {
		return err
	}
	d.halted = false
	return nil
}

func (d *device) Hide() error {
	if err := d.command(setDisplayOff); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// check validates an image before anything is sent to the display.
func (d *device) check(img image.Image) error {
	if img == nil {
		return &ValidationError{Op: "display", Reason: "no image"}
	}
	if img.ColorModel() != pixel.MonoModel {
		return &ValidationError{Op: "display", Reason: "image is not 1-bit monochrome"}
	}
	if size := img.Bounds().Size(); size.X != d.width || size.Y != d.height {
		return &ValidationError{
			Op:     "display",
			Reason: fmt.Sprintf("image size %s does not match display size %dx%d", size, d.width, d.height),
		}
	}
	return nil
}

// blank returns an all-off image of the display size.
func (d *device) blank() *pixel.MonoImage {
	return pixel.NewMonoImage(d.width, d.height)
}

// close hides and clears the display, then releases the connection. The connection is
// released even if the display could not be reached.
func (d *device) close(clear func() error) error {
	if d.closed {
		return nil
	}
	d.closed = true

	var errs []error
	if err := d.Hide(); err != nil {
		errs = append(errs, err)
	}
	if err := clear(); err != nil {
		errs = append(errs, err)
	}
	if err := d.c.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// bitReader returns a function that reports if the pixel at (x, y), relative to the image
// origin, is lit.
func bitReader(img image.Image) func(x, y int) bool {
	origin := img.Bounds().Min
	switch i := img.(type) {
	case *pixel.MonoImage:
		return func(x, y int) bool {
			return i.BitAt(origin.X+x, origin.Y+y)
		}
	case *pixel.MonoVerticalLSBImage:
		return func(x, y int) bool {
			return i.BitAt(origin.X+x, origin.Y+y)
		}
	default:
		return func(x, y int) bool {
			return pixel.MonoModel.Convert(img.At(origin.X+x, origin.Y+y)).(pixel.Mono).On
		}
	}
}
