package display

import "fmt"

// WordBits is the width of one plane word in pixels.
const WordBits = 32

// BitmapWords returns the number of words a plane of width x height pixels
// occupies. Width is rounded down to whole words, as AttachBitmap does.
func BitmapWords(width, height int) int {
	if width < 0 || height < 0 {
		return 0
	}
	return (width / WordBits) * height
}

// bitmap is the graphic plane: rows of 32-bit words, pixel x of a row at
// word x/32, bit 31-x%32.
type bitmap struct {
	words  []uint32
	wWords int
	height int

	// Placement in raster space: x in words, y in raster lines.
	originW int
	originY int
}

// AttachBitmap binds caller-owned storage as the graphic plane. width is
// rounded down to a multiple of 32 pixels. The placement is kept.
func (fb *Framebuffer) AttachBitmap(width, height int, storage []uint32) error {
	if width < WordBits || height <= 0 {
		return fmt.Errorf("display: invalid plane %dx%d", width, height)
	}
	need := BitmapWords(width, height)
	if len(storage) < need {
		return fmt.Errorf("display: plane storage is %d words, need %d", len(storage), need)
	}
	fb.plane.words = storage[:need]
	fb.plane.wWords = width / WordBits
	fb.plane.height = height
	fb.px, fb.py = 0, 0
	return nil
}

// DetachBitmap removes the graphic plane.
func (fb *Framebuffer) DetachBitmap() {
	fb.plane.words = nil
	fb.plane.wWords = 0
	fb.plane.height = 0
}

// HasBitmap reports whether a plane is attached.
func (fb *Framebuffer) HasBitmap() bool { return fb.plane.words != nil }

// BitmapSize returns the plane's extent in pixels.
func (fb *Framebuffer) BitmapSize() (width, height int) {
	return fb.plane.wWords * WordBits, fb.plane.height
}

// PositionBitmap places the plane's origin in raster space. x is in pixels
// and is rounded down to a word boundary; y is a raster line.
func (fb *Framebuffer) PositionBitmap(x, y int) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	fb.plane.originW = x / WordBits
	fb.plane.originY = y
}

// BitmapOrigin returns the plane placement: x in words, y in raster lines.
func (fb *Framebuffer) BitmapOrigin() (xWords, y int) {
	return fb.plane.originW, fb.plane.originY
}

// BitmapLine returns the plane words that fall on raster line y together
// with the word column they start at. ok is false when no plane is attached
// or the plane does not cover y.
func (fb *Framebuffer) BitmapLine(y int) (words []uint32, startW int, ok bool) {
	p := &fb.plane
	if p.words == nil || y < p.originY || y >= p.originY+p.height {
		return nil, 0, false
	}
	off := (y - p.originY) * p.wWords
	return p.words[off : off+p.wWords], p.originW, true
}

// ClearBitmap sets every plane pixel to filled. It does nothing without a
// plane.
func (fb *Framebuffer) ClearBitmap(filled bool) {
	var w uint32
	if filled {
		w = 0xFFFFFFFF
	}
	for i := range fb.plane.words {
		fb.plane.words[i] = w
	}
}

func (fb *Framebuffer) inPlane(x, y int) bool {
	return x >= 0 && x < fb.plane.wWords*WordBits && y >= 0 && y < fb.plane.height
}

// Plot sets or clears one plane pixel, checked against the plane's own
// extent.
func (fb *Framebuffer) Plot(x, y int, set bool) error {
	if fb.plane.words == nil {
		return ErrNoBitmap
	}
	if !fb.inPlane(x, y) {
		return ErrOutOfBounds
	}
	i := y*fb.plane.wWords + x/WordBits
	mask := uint32(0x80000000) >> uint(x%WordBits)
	if set {
		fb.plane.words[i] |= mask
	} else {
		fb.plane.words[i] &^= mask
	}
	return nil
}

// Pixel reads one plane pixel.
func (fb *Framebuffer) Pixel(x, y int) (bool, error) {
	if fb.plane.words == nil {
		return false, ErrNoBitmap
	}
	if !fb.inPlane(x, y) {
		return false, ErrOutOfBounds
	}
	w := fb.plane.words[y*fb.plane.wWords+x/WordBits]
	return w&(uint32(0x80000000)>>uint(x%WordBits)) != 0, nil
}

// MoveTo sets the path cursor used by LineTo.
func (fb *Framebuffer) MoveTo(x, y int) error {
	if fb.plane.words == nil {
		return ErrNoBitmap
	}
	if !fb.inPlane(x, y) {
		return ErrOutOfBounds
	}
	fb.px, fb.py = x, y
	return nil
}

// PathCursor returns the path cursor.
func (fb *Framebuffer) PathCursor() (x, y int) { return fb.px, fb.py }

// LineTo draws from the path cursor to (x, y) when the target lies inside
// the plane, then moves the path cursor there regardless. The returned
// error describes the target.
func (fb *Framebuffer) LineTo(x, y int, set bool) error {
	if fb.plane.words == nil {
		return ErrNoBitmap
	}
	var err error
	if fb.inPlane(x, y) {
		fb.Line(fb.px, fb.py, x, y, set)
	} else {
		err = ErrOutOfBounds
	}
	fb.px, fb.py = x, y
	return err
}
