package main

import (
	"context"
	"image"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/virtual"
)

// sweeper moves the viewport back and forth over the canvas, stopping at the stops.
type sweeper struct {
	x     int
	dir   int
	step  int
	limit int
	stops []int
}

// newSweeper sweeps x from 0 to limit and back. Stops outside that range are ignored,
// the range ends are always stops.
func newSweeper(limit, step int, stops []int) *sweeper {
	s := &sweeper{dir: 1, step: step, limit: limit, stops: []int{0, limit}}
	for _, x := range stops {
		if x > 0 && x < limit {
			s.stops = append(s.stops, x)
		}
	}
	slices.Sort(s.stops)
	s.stops = slices.Compact(s.stops)
	return s
}

// next returns the next position and if the viewport should pause there.
func (s *sweeper) next() (int, bool) {
	x := s.x + s.dir*s.step
	if s.dir > 0 {
		for _, stop := range s.stops {
			if stop > s.x && stop < x {
				x = stop
				break
			}
		}
		if x >= s.limit {
			x, s.dir = s.limit, -1
		}
	} else {
		for i := len(s.stops) - 1; i >= 0; i-- {
			if stop := s.stops[i]; stop < s.x && stop > x {
				x = stop
				break
			}
		}
		if x <= 0 {
			x, s.dir = 0, 1
		}
	}
	s.x = x
	return x, slices.Contains(s.stops, x)
}

type carousel struct {
	canvas *virtual.Canvas
	sweep  *sweeper
	clock  clockwork.Clock
	tick   time.Duration
	pause  time.Duration
}

// newCarousel places the configured hotspots on a canvas for dev. The viewport pauses where
// a hotspot starts.
func newCarousel(cfg Config, dev oled.Device, clock clockwork.Clock) (*carousel, error) {
	display := dev.Bounds().Size()
	height := cfg.Canvas.Height
	if height == 0 {
		height = display.Y
	}
	canvas, err := virtual.New(dev, max(cfg.Canvas.Width, display.X), height, virtual.WithClock(clock))
	if err != nil {
		return nil, err
	}

	var stops []int
	for _, h := range cfg.Hotspots {
		canvas.AddHotspot(newHotspot(h, clock), image.Pt(h.X, h.Y))
		stops = append(stops, h.X)
	}

	return &carousel{
		canvas: canvas,
		sweep:  newSweeper(canvas.Bounds().Dx()-display.X, cfg.Canvas.Step, stops),
		clock:  clock,
		tick:   cfg.Canvas.Tick.Duration,
		pause:  cfg.Canvas.Pause.Duration,
	}, nil
}

// run refreshes the canvas until ctx is done, or after frames refreshes if frames > 0.
func (c *carousel) run(ctx context.Context, frames int) error {
	if err := c.canvas.Refresh(); err != nil {
		return err
	}

	ticker := c.clock.NewTicker(c.tick)
	defer ticker.Stop()

	for n := 1; frames <= 0 || n < frames; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		}

		x, pause := c.sweep.next()
		if err := c.canvas.SetPosition(image.Pt(x, 0)); err != nil {
			return err
		}
		if pause {
			log.Debug().Int("x", x).Dur("pause", c.pause).Msg("pausing")
			if err := c.hold(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// hold keeps refreshing in place for the pause duration, so snapshot content stays current.
func (c *carousel) hold(ctx context.Context) error {
	until := c.clock.Now().Add(c.pause)
	for c.clock.Now().Before(until) {
		select {
		case <-ctx.Done():
			return nil
		case <-c.clock.After(min(c.tick*5, until.Sub(c.clock.Now()))):
		}
		if err := c.canvas.Refresh(); err != nil {
			return err
		}
	}
	return nil
}
