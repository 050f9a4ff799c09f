package virtual

import (
	"image"
	"image/color"
	"time"

	"github.com/BeatGlow/oled/draw"
	"github.com/BeatGlow/oled/pixel"
)

// Renderer paints the content of a hotspot.
type Renderer interface {
	// Render paints onto dst, a blank surface of width by height pixels with its origin at (0, 0).
	Render(dst draw.Image, width, height int)
}

// RenderFunc is a function Renderer.
type RenderFunc func(dst draw.Image, width, height int)

func (f RenderFunc) Render(dst draw.Image, width, height int) {
	f(dst, width, height)
}

// Kind of hotspot.
type Kind uint8

const (
	// Continuous hotspots are rendered on every pass in which they are visible.
	Continuous Kind = iota

	// Snapshot hotspots are rendered at most once per interval and reuse their last image
	// in between.
	Snapshot
)

func (k Kind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Snapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Hotspot is a fixed size renderable region. Its position is given when it is added to a
// [Canvas].
type Hotspot struct {
	kind     Kind
	size     image.Point
	renderer Renderer
	interval time.Duration

	image    pixel.Image
	cached   bool
	rendered time.Time
}

// NewHotspot returns a continuous hotspot.
func NewHotspot(width, height int, r Renderer) *Hotspot {
	return &Hotspot{
		kind:     Continuous,
		size:     image.Pt(width, height),
		renderer: r,
	}
}

// NewSnapshot returns a hotspot that is rendered the first time it becomes visible and
// after that only when its last image is at least interval old.
func NewSnapshot(width, height int, r Renderer, interval time.Duration) *Hotspot {
	return &Hotspot{
		kind:     Snapshot,
		size:     image.Pt(width, height),
		renderer: r,
		interval: interval,
	}
}

func (h *Hotspot) Kind() Kind {
	return h.kind
}

func (h *Hotspot) Size() image.Point {
	return h.size
}

// Interval between renders of a snapshot hotspot, zero for continuous hotspots.
func (h *Hotspot) Interval() time.Duration {
	return h.interval
}

// due reports if the hotspot has to be rendered at now.
func (h *Hotspot) due(now time.Time) bool {
	if h.kind != Snapshot {
		return true
	}
	return !h.cached || now.Sub(h.rendered) >= h.interval
}

// update renders the hotspot if it is due and returns its current image, and whether it was
// rendered.
func (h *Hotspot) update(now time.Time, model color.Model) (pixel.Image, bool) {
	if h.image == nil || h.image.ColorModel() != model {
		h.image = pixel.New(model, h.size.X, h.size.Y)
		h.cached = false
	}
	if !h.due(now) {
		return h.image, false
	}

	h.image.Clear()
	h.renderer.Render(h.image, h.size.X, h.size.Y)
	if h.kind == Snapshot {
		h.cached = true
		h.rendered = now
	}
	return h.image, true
}
