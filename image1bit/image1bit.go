// Package image1bit provides a bi-level image format for e-paper panels.
//
// Pixels are packed 8 per byte along each row. The most significant bit is the
// leftmost pixel and a set bit is white, which is the layout most Waveshare panels
// expect in their frame RAM, so a HorizontalMSB can be streamed to the device as is.
//
// Memory layout example for a 10-pixel row:
//
//	Pixels: 0 1 2 3 4 5 6 7 | 8 9
//	Values: W B W W B B B W | B W
//	Bytes:  0xB1            | 0x40
//	        (trailing bits of the last byte are padding)
package image1bit

import (
	"image"
	"image/color"
)

// Bit is a bi-level color.
type Bit bool

const (
	Black Bit = false
	White Bit = true
)

// RGBA implements color.Color.
func (c Bit) RGBA() (r, g, b, a uint32) {
	if c {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (c Bit) String() string {
	if c {
		return "White"
	}
	return "Black"
}

// toBit converts any color.Color to Bit by thresholding its luma at half scale.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Bit(y >= 0x8000)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// HorizontalMSB is a 1-bit image with 8 horizontally adjacent pixels per byte.
type HorizontalMSB struct {
	Pix    []byte          // Pixel data (8 pixels per byte, MSB first)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewHorizontalMSB creates a new all-black HorizontalMSB image with the specified
// bounds. Rows are padded to a whole number of bytes.
func NewHorizontalMSB(r image.Rectangle) *HorizontalMSB {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &HorizontalMSB{Rect: r}
	}
	stride := (w + 7) / 8
	return &HorizontalMSB{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *HorizontalMSB) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *HorizontalMSB) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
func (p *HorizontalMSB) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit of the pixel at (x, y). Pixels outside the bounds are Black.
func (p *HorizontalMSB) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Black
	}
	offset, mask := p.pixOffset(x, y)
	return p.Pix[offset]&mask != 0
}

// Set sets the color of the pixel at (x, y).
func (p *HorizontalMSB) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit of the pixel at (x, y).
func (p *HorizontalMSB) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, mask := p.pixOffset(x, y)
	if b {
		p.Pix[offset] |= mask
	} else {
		p.Pix[offset] &^= mask
	}
}

// Fill sets every pixel, including row padding, to b.
func (p *HorizontalMSB) Fill(b Bit) {
	v := byte(0x00)
	if b {
		v = 0xFF
	}
	for i := range p.Pix {
		p.Pix[i] = v
	}
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
func (p *HorizontalMSB) pixOffset(x, y int) (offset int, mask byte) {
	dx := x - p.Rect.Min.X
	offset = (y-p.Rect.Min.Y)*p.Stride + dx/8
	mask = 0x80 >> uint(dx&7)
	return
}
