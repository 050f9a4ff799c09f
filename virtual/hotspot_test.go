package virtual

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BeatGlow/oled/pixel"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "continuous", Continuous.String())
	assert.Equal(t, "snapshot", Snapshot.String())
	assert.Equal(t, "unknown", Kind(9).String())
}

func TestHotspotDue(t *testing.T) {
	var (
		now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		r   = &counter{}
	)

	h := NewHotspot(8, 8, r)
	assert.True(t, h.due(now))
	assert.Equal(t, image.Pt(8, 8), h.Size())
	assert.Zero(t, h.Interval())

	s := NewSnapshot(8, 8, r, time.Minute)
	assert.True(t, s.due(now), "uncached snapshot is due")
	s.update(now, pixel.MonoModel)
	assert.False(t, s.due(now.Add(59*time.Second)))
	assert.True(t, s.due(now.Add(time.Minute)))
}

func TestHotspotModelChange(t *testing.T) {
	var (
		now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		r   = &counter{}
		s   = NewSnapshot(8, 8, r, time.Hour)
	)

	img, fresh := s.update(now, pixel.MonoModel)
	assert.True(t, fresh)
	assert.IsType(t, &pixel.MonoImage{}, img)

	_, fresh = s.update(now, pixel.MonoModel)
	assert.False(t, fresh)

	img, fresh = s.update(now, pixel.CRGB16Model)
	assert.True(t, fresh, "a new surface drops the cache")
	assert.IsType(t, &pixel.CRGB16Image{}, img)
	assert.Equal(t, 2, r.calls)
}
