package app

import (
	"fmt"
	"math/rand"

	"vidout/video/display"

	"tinygo.org/x/tinyfont/proggy"
)

const (
	demoPlaneW = 6 * 32
	demoPlaneH = 80
	demoZMax   = 300
)

// demo is the sample screen: a numbered grid, a character table and a
// bitmap that bounces down the screen under a moving caption.
type demo struct {
	fb *display.Framebuffer
	z  int
	zd int
}

func newDemo(fb *display.Framebuffer) (*demo, error) {
	const gx, gy = demoPlaneW, demoPlaneH

	if err := fb.AttachBitmap(gx, gy, make([]uint32, display.BitmapWords(gx, gy))); err != nil {
		return nil, fmt.Errorf("app: demo plane: %w", err)
	}
	fb.PositionBitmap(32, 20)
	fb.ClearBitmap(false)

	fb.Line(0, 0, gx, gy, true)
	fb.Line(gx, 0, 0, gy, true)
	fb.Circle(gx/2, gy/2, 20, true)

	for t := 16; t <= gx-16; t += 16 {
		fb.Line(t, 0, t, 5, true)
		fb.Line(t, gy, t, gy-5, true)
	}
	for t := 8; t <= gy-8; t += 8 {
		fb.Line(0, t, 5, t, true)
		fb.Line(gx, t, gx-5, t, true)
	}

	rnd := rand.New(rand.NewSource(1))
	for t := -gx; t < gx; t += 4 {
		fb.LineTo(gx/2+t, rnd.Intn(gy-10), true)
	}

	fb.FillRoundRect(8, gy-22, 40, 14, 4, 0, true)
	fb.FillTriangle(gx-40, gy-8, gx-24, gy-24, gx-8, gy-8, true)
	fb.Text(&proggy.TinySZ8pt7b, 12, gy-11, "vidout", false)

	cols, rows := fb.Columns(), fb.Rows()
	for e := 0; e < cols; e++ {
		fb.SetCell(e, 0, byte('0'+e%10))
	}
	for e := 1; e < rows; e++ {
		tens := byte(' ')
		if e >= 10 {
			tens = byte('0' + e/10)
		}
		fb.SetCell(0, e, tens)
		fb.SetCell(1, e, byte('0'+e%10))
	}
	fb.MoveCursor(cols/2-5, 4)
	fb.WriteString("Testing")

	for t := 0; t < 256; t++ {
		fb.SetCell(4+t%(cols-5), 10+t/(cols-5), byte(t))
	}
	fb.SetCell(cols-1, rows-1, 'X')

	return &demo{fb: fb, zd: 1}, nil
}

// step moves the plane one line and slides the caption along row 4.
func (d *demo) step(uint64) {
	d.z += d.zd
	if d.z == demoZMax || d.z == 0 {
		d.zd = -d.zd
	}

	fb := d.fb
	fb.PositionBitmap(110, d.z)
	fb.MoveCursor(2, 4)
	fb.FillToRowEnd(' ')
	fb.MoveCursor(2+(d.z/8)%(fb.Columns()-10), 4)
	fb.WriteString(" Testing")
}
