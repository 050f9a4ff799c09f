package virtual

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeOverlap(t *testing.T) {
	assert.True(t, rangeOverlap(0, 10, 5, 15))
	assert.True(t, rangeOverlap(5, 15, 0, 10))
	assert.True(t, rangeOverlap(0, 10, 2, 3))
	assert.False(t, rangeOverlap(0, 10, 10, 20), "ranges are half-open")
	assert.False(t, rangeOverlap(10, 20, 0, 10), "ranges are half-open")
	assert.False(t, rangeOverlap(0, 0, 0, 10), "empty range")
}

func TestOverlaps(t *testing.T) {
	boxes := []image.Rectangle{
		image.Rect(0, 0, 64, 64),
		image.Rect(64, 0, 128, 64),
		image.Rect(128, 0, 192, 64),
		image.Rect(192, 0, 256, 64),
	}
	tests := []struct {
		name     string
		viewport image.Rectangle
		want     [4]bool
	}{
		{"over 1 2", image.Rect(0, 0, 128, 64), [4]bool{true, true, false, false}},
		{"over 1 2 3", image.Rect(30, 0, 158, 64), [4]bool{true, true, true, false}},
		{"over 2 3", image.Rect(64, 0, 192, 64), [4]bool{false, true, true, false}},
		{"over 2 3 4", image.Rect(100, 0, 228, 64), [4]bool{false, true, true, true}},
		{"over 3 4", image.Rect(128, 0, 256, 64), [4]bool{false, false, true, true}},
		{"over 4", image.Rect(192, 0, 256, 64), [4]bool{false, false, false, true}},
		{"over none", image.Rect(256, 0, 384, 64), [4]bool{false, false, false, false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, box := range boxes {
				assert.Equal(t, tt.want[i], overlaps(tt.viewport, box), "box at x=%d", box.Min.X)
			}
		})
	}
}

func TestOverlapsBothAxes(t *testing.T) {
	viewport := image.Rect(0, 0, 128, 64)
	assert.False(t, overlaps(viewport, image.Rect(0, 64, 64, 128)), "below the viewport")
	assert.False(t, overlaps(viewport, image.Rect(0, -64, 64, 0)), "above the viewport")
	assert.True(t, overlaps(viewport, image.Rect(-10, -10, 1, 1)))
}
