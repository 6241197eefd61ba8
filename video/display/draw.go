package display

// Corner selects rectangle corners. In RoundRect and FillRoundRect the
// selected corners are drawn square instead of rounded.
type Corner uint8

const (
	TopLeft Corner = 1 << iota
	TopRight
	BottomLeft
	BottomRight

	AllCorners = TopLeft | TopRight | BottomLeft | BottomRight
)

// Edge selects rectangle edges to leave out of an outline.
type Edge uint8

const (
	TopEdge Edge = 1 << iota
	BottomEdge
	LeftEdge
	RightEdge

	NoEdges Edge = 0
)

// quadrant picks which quarters of a circle the midpoint walk plots.
type quadrant uint8

const (
	quadTopLeft quadrant = 1 << iota
	quadTopRight
	quadBottomLeft
	quadBottomRight

	quadAll = quadTopLeft | quadTopRight | quadBottomLeft | quadBottomRight
)

// Line draws from (x0, y0) to (x1, y1), both endpoints included.
//
// Endpoints are taken top-most first (then left-most) so a line and its
// reverse light the same pixels.
func (fb *Framebuffer) Line(x0, y0, x1, y1 int, set bool) {
	if y0 > y1 || (y0 == y1 && x0 > x1) {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	dx, sx := x1-x0, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y1-y0, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}

	err := dx - dy
	for {
		fb.Plot(x0, y0, set)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// hline draws n pixels rightwards from (x, y).
func (fb *Framebuffer) hline(x, y, n int, set bool) {
	if n <= 0 {
		return
	}
	fb.Line(x, y, x+n-1, y, set)
}

// vline draws n pixels downwards from (x, y).
func (fb *Framebuffer) vline(x, y, n int, set bool) {
	if n <= 0 {
		return
	}
	fb.Line(x, y, x, y+n-1, set)
}

// arcs walks the midpoint circle of radius r about (x0, y0) and plots the
// quarters selected by q. The four axis points are not plotted.
func (fb *Framebuffer) arcs(x0, y0, r int, q quadrant, set bool) {
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

		if q&quadBottomRight != 0 {
			fb.Plot(x0+x, y0+y, set)
			fb.Plot(x0+y, y0+x, set)
		}
		if q&quadTopRight != 0 {
			fb.Plot(x0+x, y0-y, set)
			fb.Plot(x0+y, y0-x, set)
		}
		if q&quadBottomLeft != 0 {
			fb.Plot(x0-y, y0+x, set)
			fb.Plot(x0-x, y0+y, set)
		}
		if q&quadTopLeft != 0 {
			fb.Plot(x0-y, y0-x, set)
			fb.Plot(x0-x, y0-y, set)
		}
	}
}

// Circle outlines a circle of radius r centred on (x0, y0).
func (fb *Framebuffer) Circle(x0, y0, r int, set bool) {
	if r < 0 {
		return
	}
	fb.Plot(x0, y0+r, set)
	fb.Plot(x0, y0-r, set)
	fb.Plot(x0+r, y0, set)
	fb.Plot(x0-r, y0, set)
	fb.arcs(x0, y0, r, quadAll, set)
}

// clampRadius keeps a corner radius within half the shorter side.
func clampRadius(w, h, r int) int {
	if r < 0 {
		return 0
	}
	if m := w / 2; r > m {
		r = m
	}
	if m := h / 2; r > m {
		r = m
	}
	return r
}

// Rect outlines a w x h rectangle with its top-left at (x, y). Edges in
// hidden are left out.
func (fb *Framebuffer) Rect(x, y, w, h int, hidden Edge, set bool) {
	fb.RoundRect(x, y, w, h, 0, AllCorners, hidden, set)
}

// RoundRect outlines a rectangle whose corners are arcs of radius r, except
// the corners named in square. Edges in hidden are left out; an edge next
// to a rounded corner stops where the arc begins.
func (fb *Framebuffer) RoundRect(x, y, w, h, r int, square Corner, hidden Edge, set bool) {
	if w <= 0 || h <= 0 {
		return
	}
	r = clampRadius(w, h, r)
	if r == 0 {
		square = AllCorners
	}
	inset := func(c Corner) int {
		if square&c != 0 {
			return 0
		}
		return r
	}

	if hidden&TopEdge == 0 {
		a, b := inset(TopLeft), inset(TopRight)
		fb.hline(x+a, y, w-a-b, set)
	}
	if hidden&BottomEdge == 0 {
		a, b := inset(BottomLeft), inset(BottomRight)
		fb.hline(x+a, y+h-1, w-a-b, set)
	}
	if hidden&LeftEdge == 0 {
		a, b := inset(TopLeft), inset(BottomLeft)
		fb.vline(x, y+a, h-a-b, set)
	}
	if hidden&RightEdge == 0 {
		a, b := inset(TopRight), inset(BottomRight)
		fb.vline(x+w-1, y+a, h-a-b, set)
	}

	if square&TopLeft == 0 {
		fb.arcs(x+r, y+r, r, quadTopLeft, set)
	}
	if square&TopRight == 0 {
		fb.arcs(x+w-r-1, y+r, r, quadTopRight, set)
	}
	if square&BottomRight == 0 {
		fb.arcs(x+w-r-1, y+h-r-1, r, quadBottomRight, set)
	}
	if square&BottomLeft == 0 {
		fb.arcs(x+r, y+h-r-1, r, quadBottomLeft, set)
	}
}

// Triangle outlines the triangle with the given vertices.
func (fb *Framebuffer) Triangle(x0, y0, x1, y1, x2, y2 int, set bool) {
	fb.Line(x0, y0, x1, y1, set)
	fb.Line(x1, y1, x2, y2, set)
	fb.Line(x2, y2, x0, y0, set)
}
