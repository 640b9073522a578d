package statuspaper

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Placement is where one non-empty line lands on the canvas.
type Placement struct {
	Index  int    // Position in the input lines
	Text   string // The line itself
	Y      int    // Top edge of the row
	Band   int    // Counter the row was placed with
	Filled bool   // Row background is the band color
	Mirror bool   // Row was stacked from the bottom edge
}

// cursor walks the lines of one frame. Rows are stacked downward from the top
// edge until the first empty line; from then on they are stacked upward from
// the bottom edge.
type cursor struct {
	forward  int // Lines seen so far, separators included
	inverted int // Next slot counted from the bottom edge, starts at 1
	mirrored bool
}

func newCursor() cursor {
	return cursor{inverted: 1}
}

// step consumes one line. ok is false for empty lines, which are not drawn.
func (c cursor) step(text string, g Geometry, extent int) (next cursor, p Placement, ok bool) {
	index := c.forward
	c.forward++

	if text == "" {
		c.mirrored = true
		return c, Placement{}, false
	}

	p = Placement{Text: text, Mirror: c.mirrored}
	if !c.mirrored {
		p.Y = g.RowHeight * index
		p.Band = index
	} else {
		p.Y = extent - g.RowHeight*c.inverted
		p.Band = c.inverted
		c.inverted++
	}
	p.Filled = p.Band%2 == 0
	return c, p, true
}

// Layout places lines on a canvas extent pixels tall.
//
// Before the first empty line, row i sits at g.RowHeight*i. After it, the k-th
// following row (k from 1) sits at extent-g.RowHeight*k, so the last group is
// anchored to the bottom edge in input order. Rows whose counter is even are
// filled. Empty lines produce no placement.
func Layout(lines []string, g Geometry, extent int) []Placement {
	out := make([]Placement, 0, len(lines))
	c := newCursor()
	for i, text := range lines {
		var p Placement
		var ok bool
		c, p, ok = c.step(text, g, extent)
		if !ok {
			continue
		}
		p.Index = i
		out = append(out, p)
	}
	return out
}

// Renderer paints lines onto a landscape canvas.
type Renderer struct {
	style Style
}

// NewRenderer returns a Renderer drawing with s.
func NewRenderer(s Style) *Renderer {
	return &Renderer{style: s}
}

// Style returns the renderer's style.
func (r *Renderer) Style() Style {
	return r.style
}

// Paint clears dst and draws lines onto it, one row each, stacked along the
// vertical axis of dst. It returns the geometry used.
func (r *Renderer) Paint(dst draw.Image, lines []string) (Geometry, error) {
	b := dst.Bounds()
	g, err := Plan(b.Dy(), len(lines), r.style.FontSize)
	if err != nil {
		return Geometry{}, err
	}

	band := image.NewUniform(r.style.Band)
	background := image.NewUniform(r.style.Background)
	draw.Draw(dst, b, background, image.Point{}, draw.Src)

	var ascent int
	if r.style.Face != nil {
		ascent = r.style.Face.Metrics().Ascent.Ceil()
	}

	for _, p := range Layout(lines, g, b.Dy()) {
		top := b.Min.Y + p.Y
		ink := band
		if p.Filled {
			row := image.Rect(b.Min.X, top, b.Max.X, top+g.RowHeight).Intersect(b)
			draw.Draw(dst, row, band, image.Point{}, draw.Src)
			ink = background
		}
		if r.style.Face == nil {
			continue
		}
		d := font.Drawer{
			Dst:  dst,
			Src:  ink,
			Face: r.style.Face,
			Dot:  fixed.P(b.Min.X+r.style.Inset, top+g.Padding+ascent),
		}
		d.DrawString(p.Text)
	}
	return g, nil
}
