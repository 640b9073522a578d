package image1bit

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestBitRGBA(t *testing.T) {
	tests := []struct {
		name string
		bit  Bit
		want uint32
	}{
		{"black", Black, 0x0000},
		{"white", White, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.bit.RGBA()
			if r != tt.want || g != tt.want || b != tt.want || a != 0xFFFF {
				t.Errorf("RGBA() = (%x, %x, %x, %x), want (%x, %x, %x, %x)",
					r, g, b, a, tt.want, tt.want, tt.want, uint32(0xFFFF))
			}
		})
	}
}

func TestBitModelConvert(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  Bit
	}{
		{"bit passthrough", White, White},
		{"black", color.Black, Black},
		{"white", color.White, White},
		{"dark gray", color.Gray{Y: 0x40}, Black},
		{"light gray", color.Gray{Y: 0xC0}, White},
		{"pure red", color.RGBA{0xFF, 0x00, 0x00, 0xFF}, Black},
		{"yellow", color.RGBA{0xFF, 0xFF, 0x00, 0xFF}, White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BitModel.Convert(tt.input).(Bit); got != tt.want {
				t.Errorf("BitModel.Convert(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewHorizontalMSB(t *testing.T) {
	tests := []struct {
		name       string
		rect       image.Rectangle
		wantStride int
		wantPixLen int
	}{
		{"176x264", image.Rect(0, 0, 176, 264), 22, 5808},
		{"264x176", image.Rect(0, 0, 264, 176), 33, 5808},
		{"122x250 padded", image.Rect(0, 0, 122, 250), 16, 4000},
		{"1x1", image.Rect(0, 0, 1, 1), 1, 1},
		{"offset rect", image.Rect(10, 20, 26, 22), 2, 4},
		{"empty", image.Rect(0, 0, 0, 0), 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := NewHorizontalMSB(tt.rect)
			if img.Rect != tt.rect {
				t.Errorf("Rect = %v, want %v", img.Rect, tt.rect)
			}
			if img.Stride != tt.wantStride {
				t.Errorf("Stride = %d, want %d", img.Stride, tt.wantStride)
			}
			if len(img.Pix) != tt.wantPixLen {
				t.Errorf("len(Pix) = %d, want %d", len(img.Pix), tt.wantPixLen)
			}
		})
	}
}

func TestHorizontalMSBBitPacking(t *testing.T) {
	img := NewHorizontalMSB(image.Rect(0, 0, 10, 1))

	pattern := []Bit{White, Black, White, White, Black, Black, Black, White, Black, White}
	for x, b := range pattern {
		img.SetBit(x, 0, b)
	}

	if img.Pix[0] != 0xB1 {
		t.Errorf("Pix[0] = 0x%02X, want 0xB1", img.Pix[0])
	}
	if img.Pix[1] != 0x40 {
		t.Errorf("Pix[1] = 0x%02X, want 0x40", img.Pix[1])
	}
}

func TestHorizontalMSBSetGet(t *testing.T) {
	img := NewHorizontalMSB(image.Rect(0, 0, 12, 3))

	for y := 0; y < 3; y++ {
		for x := 0; x < 12; x++ {
			img.SetBit(x, y, Bit((x+y)%3 == 0))
		}
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 12; x++ {
			want := Bit((x+y)%3 == 0)
			if got := img.BitAt(x, y); got != want {
				t.Errorf("BitAt(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	// Clearing a bit must not disturb its neighbours.
	img.SetBit(3, 0, Black)
	if img.BitAt(3, 0) != Black {
		t.Error("SetBit(3, 0, Black) did not clear the pixel")
	}
	if img.BitAt(0, 0) != White || img.BitAt(6, 0) != White {
		t.Error("SetBit(3, 0, Black) cleared a neighbouring pixel")
	}
}

func TestHorizontalMSBSet(t *testing.T) {
	img := NewHorizontalMSB(image.Rect(0, 0, 8, 1))

	img.Set(0, 0, color.White)
	img.Set(1, 0, White)
	img.Set(2, 0, color.Black)

	if got := img.BitAt(0, 0); got != White {
		t.Errorf("after Set(color.White), BitAt = %v", got)
	}
	if got := img.BitAt(1, 0); got != White {
		t.Errorf("after Set(White), BitAt = %v", got)
	}
	if got := img.BitAt(2, 0); got != Black {
		t.Errorf("after Set(color.Black), BitAt = %v", got)
	}
	if c, ok := img.At(0, 0).(Bit); !ok || c != White {
		t.Errorf("At(0, 0) = %v (%T), want White", img.At(0, 0), img.At(0, 0))
	}
}

func TestHorizontalMSBOutOfBounds(t *testing.T) {
	img := NewHorizontalMSB(image.Rect(0, 0, 8, 2))
	img.Fill(White)

	for _, p := range []image.Point{{-1, 0}, {0, -1}, {8, 0}, {0, 2}} {
		if got := img.BitAt(p.X, p.Y); got != Black {
			t.Errorf("BitAt(%v) = %v, want Black (out of bounds)", p, got)
		}
		img.SetBit(p.X, p.Y, Black)
	}

	for _, b := range img.Pix {
		if b != 0xFF {
			t.Fatalf("out-of-bounds SetBit modified Pix: %x", img.Pix)
		}
	}
}

func TestHorizontalMSBOffsetRect(t *testing.T) {
	img := NewHorizontalMSB(image.Rect(100, 50, 116, 52))

	img.SetBit(100, 50, White)
	img.SetBit(115, 51, White)

	if img.Pix[0] != 0x80 {
		t.Errorf("Pix[0] = 0x%02X, want 0x80", img.Pix[0])
	}
	if img.Pix[3] != 0x01 {
		t.Errorf("Pix[3] = 0x%02X, want 0x01", img.Pix[3])
	}
}

func TestHorizontalMSBPixOffset(t *testing.T) {
	img := NewHorizontalMSB(image.Rect(0, 0, 20, 2))

	tests := []struct {
		x, y   int
		offset int
		mask   byte
	}{
		{0, 0, 0, 0x80},
		{7, 0, 0, 0x01},
		{8, 0, 1, 0x80},
		{19, 0, 2, 0x10},
		{0, 1, 3, 0x80},
		{9, 1, 4, 0x40},
	}

	for _, tt := range tests {
		offset, mask := img.pixOffset(tt.x, tt.y)
		if offset != tt.offset || mask != tt.mask {
			t.Errorf("pixOffset(%d, %d) = (%d, 0x%02X), want (%d, 0x%02X)",
				tt.x, tt.y, offset, mask, tt.offset, tt.mask)
		}
	}
}

func TestHorizontalMSBDraw(t *testing.T) {
	img := NewHorizontalMSB(image.Rect(0, 0, 16, 4))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(4, 1, 12, 3), image.Black, image.Point{}, draw.Src)

	for y := 0; y < 4; y++ {
		for x := 0; x < 16; x++ {
			want := White
			if x >= 4 && x < 12 && y >= 1 && y < 3 {
				want = Black
			}
			if got := img.BitAt(x, y); got != want {
				t.Errorf("BitAt(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if img.ColorModel() != BitModel {
		t.Error("ColorModel() did not return BitModel")
	}
}
