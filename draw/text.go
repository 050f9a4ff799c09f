package draw

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// Face is an alias for [font.Face].
type Face = font.Face

var (
	monoOnce sync.Once
	monoFont *truetype.Font
	monoErr  error
)

// NewFace parses a TrueType font and returns a face rendered at size points on a 72 DPI grid,
// so one point equals one display pixel.
func NewFace(ttf []byte, size float64) (Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return newFace(f, size), nil
}

// MonoFace returns the bundled Go Mono font at size points.
func MonoFace(size float64) Face {
	monoOnce.Do(func() {
		monoFont, monoErr = truetype.Parse(gomono.TTF)
	})
	if monoErr != nil {
		// gomono.TTF is compiled in, a parse failure is a broken build
		panic(monoErr)
	}
	return newFace(monoFont, size)
}

func newFace(f *truetype.Font, size float64) Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Text draws s with the top left corner of the line box at pt.
func Text(dst Image, pt image.Point, face Face, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(pt.X, pt.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// TextSize returns the width and line height of s in pixels.
func TextSize(face Face, s string) image.Point {
	m := face.Metrics()
	return image.Pt(font.MeasureString(face, s).Ceil(), (m.Ascent + m.Descent).Ceil())
}
