package emulator

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Transform is a scaling algorithm for emulator output.
type Transform string

// Transforms.
const (
	// None does no scaling.
	None Transform = "none"

	// Scale2x doubles the size with the AdvanceMAME Scale2x algorithm, which keeps the edges
	// of pixel art crisp. Only a scale of 2 is supported.
	Scale2x Transform = "scale2x"

	// Scale is nearest neighbour scaling.
	Scale Transform = "scale"

	// SmoothScale is Catmull-Rom scaling.
	SmoothScale Transform = "smoothscale"
)

// Transforms are all supported transforms.
var Transforms = []Transform{None, Scale2x, Scale, SmoothScale}

type scaler func(*image.RGBA) *image.RGBA

func newScaler(t Transform, scale int) (scaler, error) {
	if scale < 1 {
		return nil, fmt.Errorf("%w: scale %d", ErrTransform, scale)
	}
	switch t {
	case None:
		return func(src *image.RGBA) *image.RGBA { return src }, nil
	case Scale2x:
		if scale != 2 {
			return nil, fmt.Errorf("%w: scale2x requires scale 2, got %d", ErrTransform, scale)
		}
		return scale2x, nil
	case Scale:
		return interpolate(xdraw.NearestNeighbor, scale), nil
	case SmoothScale:
		return interpolate(xdraw.CatmullRom, scale), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrTransform, t)
	}
}

func interpolate(s xdraw.Scaler, scale int) scaler {
	return func(src *image.RGBA) *image.RGBA {
		size := src.Rect.Size().Mul(scale)
		dst := image.NewRGBA(image.Rectangle{Max: size})
		s.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)
		return dst
	}
}

// scale2x implements AdvanceMAME Scale2x. Every source pixel E becomes a 2x2 block, each
// corner takes the color of the two matching edge neighbours if they agree:
//
//	  B        E0 E1
//	D E F  ->  E2 E3
//	  H
func scale2x(src *image.RGBA) *image.RGBA {
	var (
		r   = src.Rect
		w   = r.Dx()
		h   = r.Dy()
		dst = image.NewRGBA(image.Rect(0, 0, w*2, h*2))
	)
	at := func(x, y int) color.RGBA {
		x = max(0, min(x, w-1))
		y = max(0, min(y, h-1))
		return src.RGBAAt(r.Min.X+x, r.Min.Y+y)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var (
				b = at(x, y-1)
				d = at(x-1, y)
				e = at(x, y)
				f = at(x+1, y)
				g = at(x, y+1)
			)
			e0, e1, e2, e3 := e, e, e, e
			if b != g && d != f {
				if d == b {
					e0 = d
				}
				if b == f {
					e1 = f
				}
				if d == g {
					e2 = d
				}
				if g == f {
					e3 = f
				}
			}
			dst.SetRGBA(x*2, y*2, e0)
			dst.SetRGBA(x*2+1, y*2, e1)
			dst.SetRGBA(x*2, y*2+1, e2)
			dst.SetRGBA(x*2+1, y*2+1, e3)
		}
	}
	return dst
}
