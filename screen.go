package statuspaper

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/flavioheleno/statuspaper/image1bit"
)

// Display is a panel that accepts full frames in its native orientation.
//
// epd2in7.Dev and periph.io's waveshare2in13v4.Dev implement it.
type Display interface {
	Bounds() image.Rectangle
	Init() error
	Draw(dst image.Rectangle, src image.Image, sp image.Point) error
	Sleep() error
}

// Compose rotates a landscape canvas 90° counter-clockwise and pastes it at the
// origin of a plane with the native bounds. Pixels the rotated canvas does not
// cover keep the background color; anything outside the plane is dropped.
func Compose(landscape image.Image, native image.Rectangle, background image1bit.Bit) *image1bit.HorizontalMSB {
	rotated := imaging.Rotate90(landscape)

	plane := image1bit.NewHorizontalMSB(native)
	plane.Fill(background)
	draw.Draw(plane, rotated.Bounds().Add(native.Min), rotated, image.Point{}, draw.Src)
	return plane
}

// Screen draws lines on a Display.
type Screen struct {
	display  Display
	renderer *Renderer
}

// NewScreen returns a Screen painting with r onto d.
func NewScreen(d Display, r *Renderer) *Screen {
	return &Screen{display: d, renderer: r}
}

// Canvas returns a blank landscape canvas for the display: its width is the
// display's height and its height the display's width.
func (s *Screen) Canvas() *image1bit.HorizontalMSB {
	native := s.display.Bounds()
	return image1bit.NewHorizontalMSB(image.Rect(0, 0, native.Dy(), native.Dx()))
}

// Render paints lines and returns the frame in the display's orientation.
func (s *Screen) Render(lines []string) (*image1bit.HorizontalMSB, error) {
	canvas := s.Canvas()
	if _, err := s.renderer.Paint(canvas, lines); err != nil {
		return nil, err
	}
	return Compose(canvas, s.display.Bounds(), s.renderer.style.Background), nil
}

// Show renders lines and blocks until the display accepted the frame.
func (s *Screen) Show(lines []string) error {
	frame, err := s.Render(lines)
	if err != nil {
		return err
	}
	if err := s.display.Draw(frame.Bounds(), frame, frame.Bounds().Min); err != nil {
		return fmt.Errorf("statuspaper: present frame: %w", err)
	}
	return nil
}

// Init prepares the display.
func (s *Screen) Init() error {
	return s.display.Init()
}

// Sleep puts the display in its low-power state.
func (s *Screen) Sleep() error {
	return s.display.Sleep()
}
