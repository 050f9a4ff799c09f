package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/oled/draw"
	"github.com/BeatGlow/oled/pixel"
)

type recorder struct {
	frames []*pixel.MonoImage
	err    error
}

func (r *recorder) Display(img image.Image) error {
	if r.err != nil {
		return r.err
	}
	frame := pixel.NewMonoImage(128, 64)
	draw.Draw(frame, frame.Bounds(), img, img.Bounds().Min, draw.Src)
	r.frames = append(r.frames, frame)
	return nil
}

func (r *recorder) Show() error             { return nil }
func (r *recorder) Hide() error             { return nil }
func (r *recorder) Clear() error            { return nil }
func (r *recorder) Close() error            { return nil }
func (r *recorder) Bounds() image.Rectangle { return image.Rect(0, 0, 128, 64) }
func (r *recorder) ColorModel() color.Model { return pixel.MonoModel }

func lit(img *pixel.MonoImage, r image.Rectangle) (n int) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.BitAt(x, y) {
				n++
			}
		}
	}
	return
}

func TestSweeper(t *testing.T) {
	type step struct {
		x     int
		pause bool
	}
	s := newSweeper(10, 4, []int{6, 42, -3, 6})
	assert.Equal(t, []int{0, 6, 10}, s.stops)

	var got []step
	for i := 0; i < 7; i++ {
		x, pause := s.next()
		got = append(got, step{x, pause})
	}
	assert.Equal(t, []step{
		{4, false},
		{6, true},
		{10, true},
		{6, true},
		{2, false},
		{0, true},
		{4, false},
	}, got)
}

func TestSweeperNoTravel(t *testing.T) {
	s := newSweeper(0, 2, nil)
	for i := 0; i < 3; i++ {
		x, pause := s.next()
		assert.Equal(t, 0, x)
		assert.True(t, pause)
	}
}

func TestCarousel(t *testing.T) {
	dev := &recorder{}
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 34, 56, 0, time.UTC))
	c, err := newCarousel(DefaultConfig, dev, clock)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 512, 64), c.canvas.Bounds())
	assert.Equal(t, []int{0, 128, 256, 384}, c.sweep.stops)

	require.NoError(t, c.run(context.Background(), 1))
	require.Len(t, dev.frames, 1)
	assert.NotZero(t, lit(dev.frames[0], dev.Bounds()), "clock is drawn")
}

func TestCarouselCanceled(t *testing.T) {
	dev := &recorder{}
	c, err := newCarousel(DefaultConfig, dev, clockwork.NewFakeClock())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, c.run(ctx, 0))
	assert.Len(t, dev.frames, 1)
}

func TestCarouselDisplayError(t *testing.T) {
	errBus := errors.New("bus error")
	dev := &recorder{err: errBus}
	c, err := newCarousel(DefaultConfig, dev, clockwork.NewFakeClock())
	require.NoError(t, err)
	assert.ErrorIs(t, c.run(context.Background(), 0), errBus)
}

func TestCarouselSmallCanvas(t *testing.T) {
	cfg := DefaultConfig
	cfg.Canvas.Width = 64
	c, err := newCarousel(cfg, &recorder{}, clockwork.NewFakeClock())
	require.NoError(t, err)
	assert.Equal(t, 128, c.canvas.Bounds().Dx(), "canvas is at least as wide as the display")
	assert.Equal(t, 0, c.sweep.limit)
}

func TestHotspotKinds(t *testing.T) {
	clock := clockwork.NewFakeClock()
	for _, h := range DefaultConfig.Hotspots {
		hs := newHotspot(h, clock)
		assert.Equal(t, image.Pt(h.Width, h.Height), hs.Size())
		if h.Interval.Duration > 0 {
			assert.Equal(t, h.Interval.Duration, hs.Interval())
		}
	}
}
