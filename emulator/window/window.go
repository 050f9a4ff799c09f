// Package window renders display frames in a desktop window.
package window

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/emulator"
)

// ErrClosed is returned by Display once the window was closed.
var ErrClosed = errors.New("window: closed")

// DefaultFrameRate is the default frame rate limit.
const DefaultFrameRate = 60

// Window is a pseudo display that renders frames in a desktop window. [Window.Run] must be
// called from the main goroutine; Display may be called from any goroutine.
type Window struct {
	*emulator.Emulator
	title    string
	interval time.Duration

	mu      sync.Mutex
	pending *image.RGBA
	last    time.Time
	quit    bool

	done   chan struct{}
	screen *ebiten.Image
}

// New returns a window display limited to fps frames per second, zero selects
// DefaultFrameRate.
func New(config *emulator.Config, fps int) (*Window, error) {
	e, err := emulator.New(config)
	if err != nil {
		return nil, err
	}
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return &Window{
		Emulator: e,
		title:    "OLED Emulator",
		interval: time.Second / time.Duration(fps),
		done:     make(chan struct{}),
	}, nil
}

func (w *Window) String() string {
	size := w.Bounds().Size()
	return fmt.Sprintf("window %dx%d", size.X, size.Y)
}

// Run opens the window and blocks until it is closed, by the user pressing escape, closing
// the window, or by Close.
func (w *Window) Run() error {
	defer close(w.done)

	size := w.Size()
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(size.X, size.Y)
	ebiten.SetTPS(int(time.Second / w.interval))
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// Display queues the image for the next window redraw. Calls are throttled to the frame rate.
func (w *Window) Display(img image.Image) error {
	select {
	case <-w.done:
		return ErrClosed
	default:
	}

	w.mu.Lock()
	wait := time.Until(w.last.Add(w.interval))
	w.mu.Unlock()
	if wait > 0 {
		time.Sleep(wait)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	frame, err := w.Frame(img)
	if err != nil {
		return err
	}
	w.pending = frame
	w.last = time.Now()
	return nil
}

func (w *Window) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Emulator.Show()
}

func (w *Window) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Emulator.Hide()
}

func (w *Window) Clear() error {
	return w.Display(w.Blank())
}

// Close asks the window to close.
func (w *Window) Close() error {
	w.mu.Lock()
	w.quit = true
	w.mu.Unlock()
	return nil
}

// Done is closed when the window is closed.
func (w *Window) Done() <-chan struct{} {
	return w.done
}

func (w *Window) Update() error {
	w.mu.Lock()
	quit := w.quit
	w.mu.Unlock()
	if quit || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	w.mu.Lock()
	frame := w.pending
	w.pending = nil
	w.mu.Unlock()

	if frame != nil {
		if w.screen == nil {
			w.screen = ebiten.NewImage(frame.Rect.Dx(), frame.Rect.Dy())
		}
		w.screen.WritePixels(frame.Pix)
	}
	if w.screen != nil {
		screen.DrawImage(w.screen, nil)
	}
}

func (w *Window) Layout(_, _ int) (int, int) {
	size := w.Size()
	return size.X, size.Y
}

var (
	_ oled.Device = (*Window)(nil)
	_ ebiten.Game = (*Window)(nil)
)
