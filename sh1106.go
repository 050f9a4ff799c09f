package oled

import (
	"fmt"
	"image"
)

const (
	sh1106DefaultWidth  = 128
	sh1106DefaultHeight = 64
)

type sh1106 struct {
	device
	buf []byte // one page
}

// SH1106 is a driver for the Sino Wealth SH1106 OLED display.
//
// The initialization sequence is sent, the display memory cleared and the display switched
// on before SH1106 returns. A nil config selects the 128x64 default.
func SH1106(conn Conn, config *Config) (Device, error) {
	cfg := config.withDefaults(sh1106DefaultWidth, sh1106DefaultHeight)

	var (
		multiplexRatio byte
		displayOffset  byte
	)
	switch {
	case cfg.Width == 128 && cfg.Height == 32:
		multiplexRatio, displayOffset = 0x20, 0x0f
	case cfg.Width == 128 && cfg.Height == 64:
		multiplexRatio, displayOffset = 0x3f, 0x00
	case cfg.Width == 128 && cfg.Height == 128:
		multiplexRatio, displayOffset = 0xff, 0x02
	default:
		return nil, fmt.Errorf("oled: SH1106 %dx%d: %w", cfg.Width, cfg.Height, ErrUnsupportedSize)
	}

	d := &sh1106{
		device: device{
			geometry: newGeometry(cfg.Width, cfg.Height),
			c:        conn,
		},
		buf: make([]byte, cfg.Width),
	}
	if err := d.init(multiplexRatio, displayOffset); err != nil {
		return nil, &InitError{Chipset: "SH1106", Err: err}
	}
	return d, nil
}

func (d *sh1106) String() string {
	return fmt.Sprintf("SH1106 OLED %dx%d", d.width, d.height)
}

func (d *sh1106) init(multiplexRatio, displayOffset byte) (err error) {
	Logger.Debug().Str("driver", d.String()).Str("conn", d.c.String()).Msg("init")

	if err = d.command(
		setDisplayOff,
		setMemoryMode,
		setHighColumn, 0xB0, 0xC8,
		setLowColumn, 0x10, 0x40,
		setContrast, 0x7F,
		setSegmentRemap,
		setNormalDisplay,
		setMultiplexRatio, multiplexRatio,
		setDisplayAllOnResume,
		setDisplayOffset, displayOffset,
		setDisplayClockDiv, 0xF0,
		setPrecharge, 0x22,
		setComPins, 0x12,
		setVComDetect, 0x20,
		setChargePump, 0x14,
	); err != nil {
		return
	}
	if err = d.Clear(); err != nil {
		return
	}
	return d.Show()
}

// Display sends the image one page at a time, selecting the page before its data. Within a
// page columns are sent right to left, with the bottom row of the page in the least
// significant bit.
func (d *sh1106) Display(img image.Image) error {
	if err := d.check(img); err != nil {
		return err
	}

	bit := bitReader(img)
	for page := 0; page < d.pages; page++ {
		// select the page, then reset the column address
		if err := d.command(
			setPageStart+byte(page),
			setLowColumn|0x02,
			setHighColumn|0x00, //nolint:staticcheck
		); err != nil {
			return err
		}

		top := page * 8
		for i, x := 0, d.width-1; x >= 0; i, x = i+1, x-1 {
			var b uint
			for n := 0; n < 8; n++ {
				if bit(x, top+7-n) {
					b |= 1 << 8
				}
				b >>= 1
			}
			d.buf[i] = byte(b)
		}
		if err := d.data(d.buf); err != nil {
			return err
		}
	}
	return nil
}

func (d *sh1106) Clear() error {
	return d.Display(d.blank())
}

func (d *sh1106) Close() error {
	return d.close(d.Clear)
}
