package display

// half selects the left or right half of a filled circle.
type half uint8

const (
	halfRight half = 1 << iota
	halfLeft
)

// FillRect fills a w x h rectangle with its top-left at (x, y).
func (fb *Framebuffer) FillRect(x, y, w, h int, set bool) {
	for i := 0; i < h; i++ {
		fb.hline(x, y+i, w, set)
	}
}

// fillArcs fills the halves of a circle of radius r about (x0, y0) selected
// by which, as vertical spans either side of the centre column. Each span is
// extended downwards by delta pixels so it meets a rectangle of that height
// below the centre.
func (fb *Framebuffer) fillArcs(x0, y0, r int, which half, delta int, set bool) {
	f := 1 - r
	ddx := 1
	ddy := -2 * r
	x, y := 0, r

	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx

		if which&halfRight != 0 {
			fb.vline(x0+x, y0-y, 2*y+1+delta, set)
			fb.vline(x0+y, y0-x, 2*x+1+delta, set)
		}
		if which&halfLeft != 0 {
			fb.vline(x0-x, y0-y, 2*y+1+delta, set)
			fb.vline(x0-y, y0-x, 2*x+1+delta, set)
		}
	}
}

// FillCircle fills a circle of radius r centred on (x0, y0).
func (fb *Framebuffer) FillCircle(x0, y0, r int, set bool) {
	if r < 0 {
		return
	}
	fb.vline(x0, y0-r, 2*r+1, set)
	fb.fillArcs(x0, y0, r, halfRight|halfLeft, 0, set)
}

// FillRoundRect fills a rectangle with corners of radius r, except the
// corners named in square which are filled out to the full rectangle.
func (fb *Framebuffer) FillRoundRect(x, y, w, h, r int, square Corner, set bool) {
	if w <= 0 || h <= 0 {
		return
	}
	r = clampRadius(w, h, r)
	if r == 0 {
		fb.FillRect(x, y, w, h, set)
		return
	}

	fb.FillRect(x+r, y, w-2*r, h, set)

	if square&TopLeft != 0 {
		fb.FillRect(x, y, r, r, set)
	}
	if square&TopRight != 0 {
		fb.FillRect(x+w-r, y, r, r, set)
	}
	if square&BottomLeft != 0 {
		fb.FillRect(x, y+h-r, r, r, set)
	}
	if square&BottomRight != 0 {
		fb.FillRect(x+w-r, y+h-r, r, r, set)
	}

	delta := h - 2*r - 1
	fb.fillArcs(x+w-r-1, y+r, r, halfRight, delta, set)
	fb.fillArcs(x+r, y+r, r, halfLeft, delta, set)
}
