package oled

import (
	"fmt"
	"image"

	"github.com/BeatGlow/oled/pixel"
)

const (
	ssd1306DefaultWidth  = 128
	ssd1306DefaultHeight = 64
)

type ssd1306 struct {
	device
	colStart byte
	buf      *pixel.MonoVerticalLSBImage
}

// SSD1306 is a driver for the Solomon Systech SSD1306 OLED display.
//
// The initialization sequence is sent, the display memory cleared and the display switched
// on before SSD1306 returns. A nil config selects the 128x64 default.
func SSD1306(conn Conn, config *Config) (Device, error) {
	cfg := config.withDefaults(ssd1306DefaultWidth, ssd1306DefaultHeight)

	var (
		displayClockDiv byte
		comPins         byte
		colStart        byte
	)
	switch {
	case cfg.Width == 64 && cfg.Height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case cfg.Width == 64 && cfg.Height == 48:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 32
	case cfg.Width == 96 && cfg.Height == 16:
		displayClockDiv, comPins, colStart = 0x60, 0x02, 0
	case cfg.Width == 128 && cfg.Height == 32:
		displayClockDiv, comPins, colStart = 0x80, 0x02, 0
	case cfg.Width == 128 && cfg.Height == 64:
		displayClockDiv, comPins, colStart = 0x80, 0x12, 0
	default:
		return nil, fmt.Errorf("oled: SSD1306 %dx%d: %w", cfg.Width, cfg.Height, ErrUnsupportedSize)
	}

	d := &ssd1306{
		device: device{
			geometry: newGeometry(cfg.Width, cfg.Height),
			c:        conn,
		},
		colStart: colStart,
		buf:      pixel.NewMonoVerticalLSBImage(cfg.Width, cfg.Height),
	}
	if err := d.init(displayClockDiv, comPins); err != nil {
		return nil, &InitError{Chipset: "SSD1306", Err: err}
	}
	return d, nil
}

func (d *ssd1306) String() string {
	return fmt.Sprintf("SSD1306 OLED %dx%d", d.width, d.height)
}

func (d *ssd1306) init(displayClockDiv, comPins byte) (err error) {
	Logger.Debug().Str("driver", d.String()).Str("conn", d.c.String()).Msg("init")

	if err = d.command(
		setDisplayOff,
		setDisplayClockDiv, displayClockDiv,
		setMultiplexRatio, byte(d.height-1),
		setDisplayOffset, 0x00,
		setStartLine,
		setChargePump, 0x14,
		setMemoryMode, 0x00, // horizontal addressing
		setRemap,
		setComScanDec,
		setComPins, comPins,
		setContrast, 0xCF,
		setPrecharge, 0xF1,
		setVComDetect, 0x40,
		setDisplayAllOnResume,
		setNormalDisplay,
	); err != nil {
		return
	}
	if err = d.Clear(); err != nil {
		return
	}
	return d.Show()
}

// Display packs the image into pages of 8 rows. Every page is sent as one byte per column,
// columns ascending, with the top row of the page in the least significant bit.
func (d *ssd1306) Display(img image.Image) error {
	if err := d.check(img); err != nil {
		return err
	}

	if err := d.command(
		setColumnAddr, d.colStart, d.colStart+byte(d.width-1),
		setPageAddr, 0x00, byte(d.pages-1),
	); err != nil {
		return err
	}

	bit := bitReader(img)
	for y := 0; y < d.pages*8; y++ {
		for x := 0; x < d.width; x++ {
			d.buf.SetBit(x, y, bit(x, y))
		}
	}
	return d.data(d.buf.Pix[:d.pages*d.width])
}

func (d *ssd1306) Clear() error {
	return d.Display(d.blank())
}

func (d *ssd1306) Close() error {
	return d.close(d.Clear)
}
