package pixel

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/BeatGlow/oled/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoImage is a 1-bit per pixel monochrome image, stored row-major with the left most
// pixel of every byte in the least significant bit.
type MonoImage struct {
	Buffer
}

func NewMonoImage(w, h int) *MonoImage {
	stride := ((w + 7) & ^7) / 8 // round up to whole bytes
	return &MonoImage{
		Buffer: makeBuffer(w, h, stride, stride*h),
	}
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/8
}

// BitAt reports if the pixel at (x, y) is lit. Out of bounds pixels are off.
func (p *MonoImage) BitAt(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return false
	}
	return p.Pix[p.PixOffset(x, y)]&(1<<uint((x-p.Rect.Min.X)%8)) != 0
}

// SetBit lights or clears the pixel at (x, y).
func (p *MonoImage) SetBit(x, y int, on bool) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	var (
		index = p.PixOffset(x, y)
		bit   = byte(1) << uint((x-p.Rect.Min.X)%8)
	)
	if on {
		p.Pix[index] |= bit
	} else {
		p.Pix[index] &^= bit
	}
}

func (p *MonoImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	if p.BitAt(x, y) {
		return On
	}
	return Off
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	p.SetBit(x, y, monoModel(c).(Mono).On)
}

func (p *MonoImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// MonoVerticalLSBImage is a 1-bit per pixel monochrome image.
//
// Every byte holds 8 vertically stacked pixels of one column, the top most pixel in the
// least significant bit. Bytes are stored page (8 pixel band) major, columns ascending.
//
// This is the native memory layout of SSD1306 OLED displays.
type MonoVerticalLSBImage struct {
	Buffer
}

func NewMonoVerticalLSBImage(w, h int) *MonoVerticalLSBImage {
	bands := ((h + 7) & ^7) / 8 // round up to whole bytes
	return &MonoVerticalLSBImage{
		Buffer: makeBuffer(w, h, w, bands*w),
	}
}

func (p *MonoVerticalLSBImage) ColorModel() color.Model {
	return MonoModel
}

// BitAt reports if the pixel at (x, y) is lit. Out of bounds pixels are off.
func (p *MonoVerticalLSBImage) BitAt(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return false
	}
	var (
		pos = y/8*p.Stride + x
		bit = byte(1) << uint(y&7)
	)
	return p.Pix[pos]&bit != 0
}

// SetBit lights or clears the pixel at (x, y).
func (p *MonoVerticalLSBImage) SetBit(x, y int, on bool) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	var (
		pos = y/8*p.Stride + x
		bit = byte(1) << uint(y&7)
	)
	if on {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

func (p *MonoVerticalLSBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.BitAt(x, y)}
}

func (p *MonoVerticalLSBImage) Set(x, y int, c color.Color) {
	p.SetBit(x, y, monoModel(c).(Mono).On)
}

func (p *MonoVerticalLSBImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// CRGB16Image is a 16-bits per pixel 5-6-5-bit RGB image.
type CRGB16Image struct {
	Buffer
	Order binary.ByteOrder
}

func NewCRGB16Image(w, h int) *CRGB16Image {
	return &CRGB16Image{
		Buffer: makeBuffer(w, h, w*2, w*2*h),
		Order:  binary.BigEndian,
	}
}

func (p *CRGB16Image) ColorModel() color.Model {
	return CRGB16Model
}

func (p *CRGB16Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	v := p.Order.Uint16(p.Pix[x*2+y*p.Stride:])
	return CRGB16{v}
}

func (p *CRGB16Image) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	v := crgb16Model(c).(CRGB16).V
	p.Order.PutUint16(p.Pix[x*2+y*p.Stride:], v)
}

func (p *CRGB16Image) Fill(c color.Color) {
	value := crgb16Model(c).(CRGB16).V
	bytes := make([]byte, 2)
	p.Order.PutUint16(bytes, value)
	for i, l := 0, len(p.Pix); i < l; i += 2 {
		copy(p.Pix[i:], bytes)
	}
}

// New returns a blank image of the requested size for the color model. Monochrome models
// get a [MonoImage], anything else a [CRGB16Image].
func New(model color.Model, w, h int) Image {
	if model == MonoModel {
		return NewMonoImage(w, h)
	}
	return NewCRGB16Image(w, h)
}

// Interface checks.
var (
	_ Image = (*MonoImage)(nil)
	_ Image = (*MonoVerticalLSBImage)(nil)
	_ Image = (*CRGB16Image)(nil)
)
