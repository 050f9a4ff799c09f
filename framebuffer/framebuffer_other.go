//go:build !linux

package framebuffer

import "github.com/BeatGlow/oled"

func Open(_ string, _, _ int) (oled.Device, error) {
	return nil, ErrNotSupported
}
