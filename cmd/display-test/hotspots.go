package main

import (
	"image"
	"strings"

	"github.com/jonboulle/clockwork"

	"github.com/BeatGlow/oled/draw"
	"github.com/BeatGlow/oled/pixel"
	"github.com/BeatGlow/oled/virtual"
)

const defaultFontSize = 16

// clockRenderer draws the current time and date.
type clockRenderer struct {
	clock clockwork.Clock
	large draw.Face
	small draw.Face
}

func (r clockRenderer) Render(dst draw.Image, width, height int) {
	now := r.clock.Now()
	drawCentered(dst, image.Rect(0, 0, width, height*2/3), r.large, now.Format("15:04:05"))
	drawCentered(dst, image.Rect(0, height*2/3, width, height), r.small, now.Format("Mon 2 Jan"))
}

// textRenderer draws centered lines of text.
type textRenderer struct {
	text string
	face draw.Face
	box  bool
}

func (r textRenderer) Render(dst draw.Image, width, height int) {
	if r.box {
		draw.RoundedRectangle(dst, image.Rect(0, 0, width, height), 6, pixel.On)
	}

	var (
		face  = r.face
		lines = strings.Split(r.text, "\n")
		line  = height / max(len(lines), 1)
	)
	for i, s := range lines {
		drawCentered(dst, image.Rect(0, i*line, width, (i+1)*line), face, s)
	}
}

func drawCentered(dst draw.Image, r image.Rectangle, face draw.Face, s string) {
	size := draw.TextSize(face, s)
	pt := image.Pt(
		r.Min.X+(r.Dx()-size.X)/2,
		r.Min.Y+(r.Dy()-size.Y)/2,
	)
	draw.Text(dst, pt, face, s, pixel.On)
}

// newHotspot builds the configured hotspot.
func newHotspot(h Hotspot, clock clockwork.Clock) *virtual.Hotspot {
	size := h.Size
	if size == 0 {
		size = defaultFontSize
	}

	var r virtual.Renderer
	switch h.Kind {
	case "clock":
		r = clockRenderer{clock: clock, large: draw.MonoFace(size), small: draw.MonoFace(size / 2)}
	case "box":
		r = textRenderer{text: h.Text, face: draw.MonoFace(size), box: true}
	default:
		r = textRenderer{text: h.Text, face: draw.MonoFace(size)}
	}

	if h.Interval.Duration > 0 {
		return virtual.NewSnapshot(h.Width, h.Height, r, h.Interval.Duration)
	}
	return virtual.NewHotspot(h.Width, h.Height, r)
}
