package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Plane exposes a framebuffer's bitmap plane as a drivers.Displayer so
// TinyGo drawing code, tinyfont in particular, can render into it.
//
// Colours are reduced to one bit: a pixel is lit when the colour is opaque
// and its luma is at least half scale.
type Plane struct {
	fb *Framebuffer
}

var _ drivers.Displayer = Plane{}

// Plane returns the displayer view of the bitmap plane.
func (fb *Framebuffer) Plane() Plane { return Plane{fb: fb} }

// Lit reports whether c maps to a set pixel.
func Lit(c color.RGBA) bool {
	if c.A < 0x80 {
		return false
	}
	// Rec. 601 luma, integer weights summing to 1000.
	y := 299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B)
	return y >= 128*1000
}

func (p Plane) Size() (x, y int16) {
	w, h := p.fb.BitmapSize()
	return int16(w), int16(h)
}

func (p Plane) SetPixel(x, y int16, c color.RGBA) {
	p.fb.Plot(int(x), int(y), Lit(c))
}

// Display is a no-op: the plane is read directly by the rasterizer.
func (p Plane) Display() error { return nil }

// FillRectangle fills a rectangle of the plane in colour c.
func (p Plane) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if !p.fb.HasBitmap() {
		return ErrNoBitmap
	}
	p.fb.FillRect(int(x), int(y), int(width), int(height), Lit(c))
	return nil
}

// Text draws s into the plane with its baseline at y using a tinyfont font.
func (fb *Framebuffer) Text(f tinyfont.Fonter, x, y int, s string, set bool) error {
	if !fb.HasBitmap() {
		return ErrNoBitmap
	}
	c := color.RGBA{A: 0xFF}
	if set {
		c = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	tinyfont.WriteLine(fb.Plane(), f, int16(x), int16(y), s, c)
	return nil
}
