package statuspaper

import (
	"fmt"
	"os"

	"github.com/flavioheleno/statuspaper/image1bit"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
)

// Style is the fixed look of a rendered frame.
type Style struct {
	Band       image1bit.Bit // Fill of even rows, ink of odd rows
	Background image1bit.Bit // Canvas color, ink of even rows

	Face     font.Face
	FontSize int // Pixel height the row padding is centered on
	Inset    int // Horizontal text offset from the left edge
}

// Defaults used by DefaultStyle.
const (
	DefaultFontSize = 15
	DefaultInset    = 5
)

// DefaultStyle returns black bands on white with the given face.
func DefaultStyle(face font.Face) Style {
	return Style{
		Band:       image1bit.Black,
		Background: image1bit.White,
		Face:       face,
		FontSize:   DefaultFontSize,
		Inset:      DefaultInset,
	}
}

// LoadFace opens a TrueType or OpenType font at size pixels. An empty path
// selects the embedded Go Mono font.
func LoadFace(path string, size int) (font.Face, error) {
	data := gomono.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("statuspaper: read font: %w", err)
		}
		data = b
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("statuspaper: parse font %q: %w", path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("statuspaper: font face: %w", err)
	}
	return face, nil
}
