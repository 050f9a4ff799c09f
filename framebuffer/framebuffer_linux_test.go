package framebuffer

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/pixel"
)

func screenInfo(xres, yres, bpp uint32, red, green, blue linuxBitField) linuxVarScreenInfo {
	return linuxVarScreenInfo{
		Xres:         xres,
		Yres:         yres,
		BitsPerPixel: bpp,
		Red:          red,
		Green:        green,
		Blue:         blue,
	}
}

var (
	rgb565   = screenInfo(160, 128, 16, linuxBitField{Offset: 11, Length: 5}, linuxBitField{Offset: 5, Length: 6}, linuxBitField{Offset: 0, Length: 5})
	xrgb8888 = screenInfo(300, 100, 32, linuxBitField{Offset: 16, Length: 8}, linuxBitField{Offset: 8, Length: 8}, linuxBitField{Offset: 0, Length: 8})
	rgba8888 = screenInfo(128, 64, 32, linuxBitField{Offset: 0, Length: 8}, linuxBitField{Offset: 8, Length: 8}, linuxBitField{Offset: 16, Length: 8})
)

func TestParsePixelFormat(t *testing.T) {
	tests := []struct {
		name   string
		info   linuxVarScreenInfo
		format linuxPixelFormat
	}{
		{"RGB565", rgb565, linuxRGB565},
		{"XRGB8888", xrgb8888, linuxXRGB8888},
		{"RGBA8888", rgba8888, linuxRGBA8888},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := linuxParsePixelFormat(&tt.info)
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
		})
	}

	bgr555 := screenInfo(160, 128, 15, linuxBitField{Offset: 0, Length: 5}, linuxBitField{Offset: 5, Length: 5}, linuxBitField{Offset: 10, Length: 5})
	_, err := linuxParsePixelFormat(&bgr555)
	assert.ErrorIs(t, err, ErrColorModel)
}

func TestNewFrameBufferErrors(t *testing.T) {
	_, err := newFrameBuffer(make([]byte, 320*128), 320, rgb565, 200, 64)
	assert.Error(t, err, "display wider than the screen")

	_, err = newFrameBuffer(make([]byte, 320*127), 320, rgb565, 64, 32)
	assert.Error(t, err, "short mapping")

	_, err = newFrameBuffer(make([]byte, 320*128), 320, rgb565, 0, 32)
	assert.Error(t, err)
}

func TestDisplayRGB565(t *testing.T) {
	mem := make([]byte, 320*128)
	fb, err := newFrameBuffer(mem, 320, rgb565, 64, 32)
	require.NoError(t, err)
	assert.Equal(t, 2, fb.scale)
	assert.Equal(t, image.Rect(0, 0, 64, 32), fb.Bounds())
	assert.Equal(t, pixel.CRGB16Model, fb.ColorModel())

	img := pixel.NewMonoImage(64, 32)
	img.SetBit(0, 0, true)
	img.SetBit(63, 31, true)
	require.NoError(t, fb.Display(img))

	at := func(x, y int) uint16 { return binary.LittleEndian.Uint16(mem[y*320+x*2:]) }
	assert.Equal(t, uint16(0xffff), at(0, 0))
	assert.Equal(t, uint16(0xffff), at(1, 1))
	assert.Equal(t, uint16(0x0000), at(2, 0))
	assert.Equal(t, uint16(0xffff), at(127, 63))
	assert.Equal(t, uint16(0x0000), at(128, 64), "outside the display area")

	require.NoError(t, fb.Clear())
	assert.Equal(t, uint16(0x0000), at(0, 0))
}

func TestDisplayXRGB8888(t *testing.T) {
	mem := make([]byte, 1200*100)
	fb, err := newFrameBuffer(mem, 1200, xrgb8888, 128, 64)
	require.NoError(t, err)
	assert.Equal(t, 1, fb.scale)

	img := image.NewRGBA(image.Rect(0, 0, 128, 64))
	img.SetRGBA(3, 2, color.RGBA{R: 0xff, A: 0xff})
	require.NoError(t, fb.Display(img))

	i := 2*1200 + 3*4
	assert.Equal(t, []byte{0x00, 0x00, 0xff, 0xff}, mem[i:i+4])
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, fb.surface.At(3, 2))
}

func TestDisplayValidation(t *testing.T) {
	fb, err := newFrameBuffer(make([]byte, 512*64), 512, rgba8888, 128, 64)
	require.NoError(t, err)

	var verr *oled.ValidationError
	assert.True(t, errors.As(fb.Display(pixel.NewMonoImage(64, 64)), &verr))
	assert.True(t, errors.As(fb.Display(nil), &verr))
}

func TestShowHide(t *testing.T) {
	fb, err := newFrameBuffer(make([]byte, 320*128), 320, rgb565, 128, 64)
	require.NoError(t, err)

	var modes []uintptr
	fb.blank = func(mode uintptr) error {
		modes = append(modes, mode)
		return nil
	}
	require.NoError(t, fb.Hide())
	require.NoError(t, fb.Show())
	assert.Equal(t, []uintptr{fbBlankPowerdown, fbBlankUnblank}, modes)

	assert.NoError(t, fb.Close())
	assert.NoError(t, fb.Close())
}
