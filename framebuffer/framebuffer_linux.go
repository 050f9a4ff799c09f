package framebuffer

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"os"
	"syscall"

	xdraw "golang.org/x/image/draw"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/draw"
	"github.com/BeatGlow/oled/internal/ioctl"
	"github.com/BeatGlow/oled/pixel"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo ioctl.Command = 0x4600
	fbioGetFScreenInfo ioctl.Command = 0x4602
	fbioBlank          ioctl.Command = 0x4611

	fbBlankUnblank   = 0
	fbBlankPowerdown = 4
)

type linuxFrameBuffer struct {
	f      *os.File
	mem    []byte
	screen linuxVarScreenInfo

	// surface is the mapped framebuffer memory.
	surface draw.Image
	width   int
	height  int
	scale   int
	blank   func(mode uintptr) error
	closed  bool
}

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x], as a width by
// height display.
func Open(name string, width, height int) (oled.Device, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	var (
		fd     = f.Fd()
		info   linuxFrameBufferInfo
		screen linuxVarScreenInfo
	)
	if err = ioctl.Do(fd, fbioGetFScreenInfo, &info); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = ioctl.Do(fd, fbioGetVScreenInfo, &screen); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Map pixel buffer.
	mem, err := syscall.Mmap(int(fd), 0, int(info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	fb, err := newFrameBuffer(mem, int(info.LineLength), screen, width, height)
	if err != nil {
		_ = syscall.Munmap(mem)
		_ = f.Close()
		return nil, err
	}
	fb.f = f
	fb.blank = func(mode uintptr) error {
		return ioctl.Call(fd, uintptr(fbioBlank), mode)
	}

	oled.Logger.Debug().
		Str("device", name).
		Str("id", string(info.ID[:clen(info.ID[:])])).
		Uint32("bpp", screen.BitsPerPixel).
		Int("scale", fb.scale).
		Msg("framebuffer open")
	return fb, nil
}

func newFrameBuffer(mem []byte, stride int, screen linuxVarScreenInfo, width, height int) (*linuxFrameBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("framebuffer: invalid size %dx%d", width, height)
	}
	xres, yres := int(screen.Xres), int(screen.Yres)
	scale := min(xres/width, yres/height)
	if scale < 1 {
		return nil, fmt.Errorf("framebuffer: %dx%d does not fit on %dx%d screen", width, height, xres, yres)
	}

	format, err := linuxParsePixelFormat(&screen)
	if err != nil {
		return nil, err
	}
	if stride*yres > len(mem) {
		return nil, fmt.Errorf("framebuffer: mapped memory too small for %dx%d screen", xres, yres)
	}

	rect := image.Rect(0, 0, xres, yres)
	var surface draw.Image
	switch format {
	case linuxRGB565:
		surface = &pixel.CRGB16Image{
			Buffer: pixel.Buffer{Rect: rect, Pix: mem, Stride: stride},
			Order:  binary.LittleEndian,
		}
	case linuxXRGB8888:
		surface = &bgraImage{Pix: mem, Stride: stride, Rect: rect}
	case linuxRGBA8888:
		surface = &image.RGBA{Pix: mem, Stride: stride, Rect: rect}
	}

	return &linuxFrameBuffer{
		mem:     mem,
		screen:  screen,
		surface: surface,
		width:   width,
		height:  height,
		scale:   scale,
		blank:   func(uintptr) error { return nil },
	}, nil
}

func (fb *linuxFrameBuffer) String() string {
	return fmt.Sprintf("framebuffer %dx%d (x%d)", fb.width, fb.height, fb.scale)
}

func (fb *linuxFrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

func (fb *linuxFrameBuffer) ColorModel() color.Model {
	return pixel.CRGB16Model
}

// area of the screen covered by the display.
func (fb *linuxFrameBuffer) area() image.Rectangle {
	return image.Rect(0, 0, fb.width*fb.scale, fb.height*fb.scale)
}

func (fb *linuxFrameBuffer) Display(img image.Image) error {
	if img == nil {
		return &oled.ValidationError{Op: "display", Reason: "no image"}
	}
	if size := img.Bounds().Size(); size.X != fb.width || size.Y != fb.height {
		return &oled.ValidationError{
			Op:     "display",
			Reason: fmt.Sprintf("image size %s does not match display size %dx%d", size, fb.width, fb.height),
		}
	}
	xdraw.NearestNeighbor.Scale(fb.surface, fb.area(), img, img.Bounds(), xdraw.Src, nil)
	return nil
}

func (fb *linuxFrameBuffer) Clear() error {
	draw.Draw(fb.surface, fb.area(), image.Black, image.Point{}, draw.Src)
	return nil
}

// Show unblanks the screen.
func (fb *linuxFrameBuffer) Show() error {
	return fb.blank(fbBlankUnblank)
}

// Hide powers down the screen. Not all framebuffers support blanking.
func (fb *linuxFrameBuffer) Hide() error {
	return fb.blank(fbBlankPowerdown)
}

// Close the framebuffer device
func (fb *linuxFrameBuffer) Close() error {
	if fb.closed {
		return nil
	}
	fb.closed = true
	_ = fb.Clear()
	if fb.f == nil {
		return nil
	}
	if err := syscall.Munmap(fb.mem); err != nil {
		_ = fb.f.Close()
		return err
	}
	return fb.f.Close()
}

func clen(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return len(b)
}

// bgraImage is a 32-bit framebuffer surface with the blue channel in the lowest byte.
type bgraImage struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

func (p *bgraImage) ColorModel() color.Model { return color.RGBAModel }
func (p *bgraImage) Bounds() image.Rectangle { return p.Rect }

func (p *bgraImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.RGBA{}
	}
	i := y*p.Stride + x*4
	return color.RGBA{R: p.Pix[i+2], G: p.Pix[i+1], B: p.Pix[i], A: 0xff}
}

func (p *bgraImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	r, g, b, _ := c.RGBA()
	i := y*p.Stride + x*4
	p.Pix[i+0] = byte(b >> 8)
	p.Pix[i+1] = byte(g >> 8)
	p.Pix[i+2] = byte(r >> 8)
	p.Pix[i+3] = 0xff
}

type linuxFrameBufferInfo struct {
	ID         [16]byte  // Identification string eg "TT Builtin"
	SmemStart  uintptr   // Start of frame buffer mem
	SmemLen    uint32    // Length of frame buffer mem
	Type       uint32    // FB_TYPE_
	TypeAux    uint32    // Interleave for interleaved Planes
	Visual     uint32    // FB_VISUAL_
	Xpanstep   uint16    // Zero if no hardware panning
	Ypanstep   uint16    // Zero if no hardware panning
	Ywrapstep  uint16    // Zero if no hardware ywrap
	LineLength uint32    // Length of a line in bytes
	MmioStart  uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32    // Length of Memory Mapped I/O
	Accel      uint32    // Type of acceleration available
	Reserved   [3]uint16 // Reserved for future compatibility
}

// linuxBitField for the color
type linuxBitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// linuxVarScreenInfo contains device independent changeable information about a frame buffer device and a specific video mode.
type linuxVarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha linuxBitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}

// linuxPixelFormat of the framebuffer
type linuxPixelFormat int

const (
	linuxUnknownPixelFormat linuxPixelFormat = iota
	linuxRGB565
	linuxXRGB8888
	linuxRGBA8888
)

func linuxParsePixelFormat(info *linuxVarScreenInfo) (linuxPixelFormat, error) {
	switch info.BitsPerPixel {
	case 16:
		if info.Red.Offset == 11 && info.Red.Length == 5 &&
			info.Green.Offset == 5 && info.Green.Length == 6 &&
			info.Blue.Offset == 0 && info.Blue.Length == 5 {
			return linuxRGB565, nil
		}

	case 32:
		switch {
		case info.Red.Offset == 16 && info.Red.Length == 8 &&
			info.Green.Offset == 8 && info.Green.Length == 8 &&
			info.Blue.Offset == 0 && info.Blue.Length == 8:
			return linuxXRGB8888, nil

		case info.Red.Offset == 0 && info.Red.Length == 8 &&
			info.Green.Offset == 8 && info.Green.Length == 8 &&
			info.Blue.Offset == 16 && info.Blue.Length == 8:
			return linuxRGBA8888, nil
		}
	}

	return linuxUnknownPixelFormat, fmt.Errorf("%w: %d bpp, red %d/%d green %d/%d blue %d/%d",
		ErrColorModel, info.BitsPerPixel,
		info.Red.Offset, info.Red.Length,
		info.Green.Offset, info.Green.Length,
		info.Blue.Offset, info.Blue.Length)
}
