package display

// fixedScale is the fixed-point scale of the triangle edge walk. Spans are
// computed with truncating division by it, which fixes the rounding of
// every filled row.
const fixedScale = 100000

// FillTriangle fills the triangle with the given vertices scanline by
// scanline. Rows from the top vertex up to (not including) the middle one
// are bounded by the top-middle and top-bottom edges, rows from the middle
// vertex up to the bottom one by the middle-bottom and top-bottom edges.
func (fb *Framebuffer) FillTriangle(x0, y0, x1, y1, x2, y2 int, set bool) {
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	if y1 > y2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	if y0 == y2 {
		lo, hi := x0, x0
		for _, x := range [...]int{x1, x2} {
			if x < lo {
				lo = x
			}
			if x > hi {
				hi = x
			}
		}
		fb.Line(lo, y0, hi, y0, set)
		return
	}

	slope := func(xa, ya, xb, yb int) int {
		if yb-ya > 0 {
			return (xb - xa) * fixedScale / (yb - ya)
		}
		return 0
	}
	dTopMid := slope(x0, y0, x1, y1)
	dTopBot := slope(x0, y0, x2, y2)
	dMidBot := slope(x1, y1, x2, y2)

	span := func(sx1, sx2, y int) {
		a := sx1 / fixedScale
		fb.Line(a, y, a+(sx2-sx1)/fixedScale, y, set)
	}

	sx1 := x0 * fixedScale
	sx2 := sx1
	y := y0
	if dTopMid > dTopBot {
		for ; y < y1; y++ {
			span(sx1, sx2, y)
			sx1 += dTopBot
			sx2 += dTopMid
		}
		sx2 = x1 * fixedScale
		for ; y < y2; y++ {
			span(sx1, sx2, y)
			sx1 += dTopBot
			sx2 += dMidBot
		}
		return
	}
	for ; y < y1; y++ {
		span(sx1, sx2, y)
		sx1 += dTopMid
		sx2 += dTopBot
	}
	sx1 = x1 * fixedScale
	for ; y < y2; y++ {
		span(sx1, sx2, y)
		sx1 += dMidBot
		sx2 += dTopBot
	}
}
