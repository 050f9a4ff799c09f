package virtual

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/draw"
	"github.com/BeatGlow/oled/pixel"
)

// ErrCanvasSize is returned if the canvas can't contain the display viewport.
var ErrCanvasSize = errors.New("virtual: canvas is smaller than the display")

// Option configures a Canvas.
type Option func(*Canvas)

// WithClock sets the clock used to age snapshot hotspots.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Canvas) {
		c.clock = clock
	}
}

// WithLogger sets the logger, the default is [oled.Logger].
func WithLogger(log zerolog.Logger) Option {
	return func(c *Canvas) {
		c.log = log
	}
}

type placement struct {
	hotspot *Hotspot
	box     image.Rectangle
}

// Canvas is a virtual canvas shown through a display sized viewport.
type Canvas struct {
	dev      oled.Device
	display  image.Point
	size     image.Point
	model    color.Model
	hotspots []placement
	origin   image.Point
	staging  pixel.Image
	frame    pixel.Image
	clock    clockwork.Clock
	log      zerolog.Logger
}

// New returns a width by height canvas shown on dev, with the viewport at (0, 0). Nothing
// is sent to the display until the first refresh pass.
func New(dev oled.Device, width, height int, opts ...Option) (*Canvas, error) {
	display := dev.Bounds().Size()
	if width < display.X || height < display.Y {
		return nil, fmt.Errorf("%w: canvas %dx%d, display %s", ErrCanvasSize, width, height, display)
	}

	c := &Canvas{
		dev:     dev,
		display: display,
		size:    image.Pt(width, height),
		model:   dev.ColorModel(),
		clock:   clockwork.NewRealClock(),
		log:     oled.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.staging = pixel.New(c.model, width, height)
	c.frame = pixel.New(c.model, display.X, display.Y)
	return c, nil
}

// Bounds of the canvas.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rectangle{Max: c.size}
}

// AddHotspot places the hotspot with its top left corner at pos. Hotspots added later are
// painted over earlier ones where they overlap.
func (c *Canvas) AddHotspot(h *Hotspot, pos image.Point) {
	c.hotspots = append(c.hotspots, placement{
		hotspot: h,
		box:     image.Rectangle{Min: pos, Max: pos.Add(h.size)},
	})
}

// RemoveHotspot removes every placement of the hotspot.
func (c *Canvas) RemoveHotspot(h *Hotspot) {
	c.hotspots = slices.DeleteFunc(c.hotspots, func(p placement) bool {
		return p.hotspot == h
	})
}

// Position is the viewport origin in canvas coordinates.
func (c *Canvas) Position() image.Point {
	return c.origin
}

// Viewport is the part of the canvas shown on the display.
func (c *Canvas) Viewport() image.Rectangle {
	return image.Rectangle{Min: c.origin, Max: c.origin.Add(c.display)}
}

// SetPosition moves the viewport origin to pos and refreshes the display.
func (c *Canvas) SetPosition(pos image.Point) error {
	c.origin = pos
	return c.Refresh()
}

// Refresh runs one refresh pass: visible hotspots are rendered when due, composited in
// insertion order, and the viewport is sent to the display. Areas of the viewport not
// covered by a visible hotspot are blank.
func (c *Canvas) Refresh() error {
	var (
		now      = c.clock.Now()
		viewport = c.Viewport()
		visible  int
		rendered int
	)

	c.staging.Clear()
	for _, p := range c.hotspots {
		if !overlaps(viewport, p.box) {
			continue
		}
		visible++

		img, fresh := p.hotspot.update(now, c.model)
		if fresh {
			rendered++
		}
		draw.Draw(c.staging, p.box, img, image.Point{}, draw.Src)
	}

	c.frame.Clear()
	draw.Draw(c.frame, c.frame.Bounds(), c.staging, viewport.Min, draw.Src)

	c.log.Debug().
		Stringer("origin", c.origin).
		Int("visible", visible).
		Int("rendered", rendered).
		Msg("refresh")

	return c.dev.Display(c.frame)
}
