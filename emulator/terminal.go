package emulator

import (
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/BeatGlow/oled"
)

// upperHalf is drawn with the top pixel as foreground and the bottom pixel as background.
const upperHalf = '▀'

// Terminal is a pseudo display that renders frames on a terminal, two pixel rows per
// character cell.
type Terminal struct {
	*Emulator
	screen tcell.Screen
}

// NewTerminal returns a display on the controlling terminal.
func NewTerminal(config *Config) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalScreen(screen, config)
}

// NewTerminalScreen returns a display on an uninitialized screen.
func NewTerminalScreen(screen tcell.Screen, config *Config) (*Terminal, error) {
	e, err := New(config)
	if err != nil {
		return nil, err
	}
	if err = screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()
	return &Terminal{
		Emulator: e,
		screen:   screen,
	}, nil
}

func (t *Terminal) String() string {
	return fmt.Sprintf("terminal %dx%d", t.width, t.height)
}

// Display renders the image in the top left corner of the terminal.
func (t *Terminal) Display(img image.Image) error {
	frame, err := t.Frame(img)
	if err != nil {
		return err
	}

	size := frame.Rect.Size()
	for y := 0; y < size.Y; y += 2 {
		for x := 0; x < size.X; x++ {
			top := frame.RGBAAt(x, y)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B)))
			if y+1 < size.Y {
				bottom := frame.RGBAAt(x, y+1)
				style = style.Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			} else {
				style = style.Background(tcell.ColorBlack)
			}
			t.screen.SetContent(x, y/2, upperHalf, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// Clear renders a blank frame.
func (t *Terminal) Clear() error {
	return t.Display(t.Blank())
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	t.screen.Fini()
	return nil
}

var _ oled.Device = (*Terminal)(nil)
