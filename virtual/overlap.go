package virtual

import "image"

// rangeOverlap reports if the half-open ranges [a0, a1) and [b0, b1) overlap.
func rangeOverlap(a0, a1, b0, b1 int) bool {
	return a0 < b1 && b0 < a1
}

// overlaps reports if two boxes overlap on both axes.
func overlaps(a, b image.Rectangle) bool {
	return rangeOverlap(a.Min.X, a.Max.X, b.Min.X, b.Max.X) &&
		rangeOverlap(a.Min.Y, a.Max.Y, b.Min.Y, b.Max.Y)
}
