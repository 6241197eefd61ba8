package display

import (
	"errors"
	"testing"
)

func newPlane(t *testing.T, w, h int) *Framebuffer {
	t.Helper()
	fb := newGrid(t, 8, 2)
	if err := fb.AttachBitmap(w, h, make([]uint32, BitmapWords(w, h))); err != nil {
		t.Fatalf("AttachBitmap(%d, %d): %v", w, h, err)
	}
	return fb
}

func lit(fb *Framebuffer) map[[2]int]bool {
	w, h := fb.BitmapSize()
	out := make(map[[2]int]bool)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if on, _ := fb.Pixel(x, y); on {
				out[[2]int{x, y}] = true
			}
		}
	}
	return out
}

func TestAttachBitmapRoundsWidthDown(t *testing.T) {
	fb := newGrid(t, 4, 1)
	if err := fb.AttachBitmap(70, 3, make([]uint32, 6)); err != nil {
		t.Fatal(err)
	}
	if w, h := fb.BitmapSize(); w != 64 || h != 3 {
		t.Fatalf("BitmapSize() = (%d, %d), want (64, 3)", w, h)
	}
	if err := fb.AttachBitmap(64, 4, make([]uint32, 7)); err == nil {
		t.Fatal("AttachBitmap() with short storage: err = nil, want error")
	}
	if err := fb.AttachBitmap(31, 4, make([]uint32, 8)); err == nil {
		t.Fatal("AttachBitmap() narrower than a word: err = nil, want error")
	}
}

func TestPlotWithoutBitmap(t *testing.T) {
	fb := newGrid(t, 4, 1)
	if err := fb.Plot(0, 0, true); !errors.Is(err, ErrNoBitmap) {
		t.Fatalf("Plot() err = %v, want ErrNoBitmap", err)
	}
	fb.ClearBitmap(true)
	if fb.HasBitmap() {
		t.Fatal("HasBitmap() = true, want false")
	}
}

func TestPlotBoundsAreLocal(t *testing.T) {
	fb := newPlane(t, 32, 4)
	fb.PositionBitmap(64, 100)
	tests := []struct {
		x, y int
		err  error
	}{
		{0, 0, nil},
		{31, 3, nil},
		{32, 0, ErrOutOfBounds},
		{0, 4, ErrOutOfBounds},
		{-1, 0, ErrOutOfBounds},
		{64, 100, ErrOutOfBounds},
	}
	for _, tt := range tests {
		if err := fb.Plot(tt.x, tt.y, true); !errors.Is(err, tt.err) {
			t.Fatalf("Plot(%d, %d) err = %v, want %v", tt.x, tt.y, err, tt.err)
		}
	}
}

func TestPlotBitOrder(t *testing.T) {
	fb := newPlane(t, 64, 2)
	fb.Plot(0, 0, true)
	fb.Plot(33, 1, true)
	if got := fb.plane.words[0]; got != 0x80000000 {
		t.Fatalf("word 0 = %#08x, want 0x80000000", got)
	}
	if got := fb.plane.words[3]; got != 0x40000000 {
		t.Fatalf("word 3 = %#08x, want 0x40000000", got)
	}
}

func TestPlotRoundTrip(t *testing.T) {
	fb := newPlane(t, 32, 4)
	fb.plane.words[2] = 0xA5A5A5A5
	prior := append([]uint32(nil), fb.plane.words...)
	for x := 0; x < 32; x++ {
		was, _ := fb.Pixel(x, 2)
		fb.Plot(x, 2, !was)
		fb.Plot(x, 2, was)
	}
	for i := range prior {
		if fb.plane.words[i] != prior[i] {
			t.Fatalf("word %d = %#08x, want %#08x", i, fb.plane.words[i], prior[i])
		}
	}
}

func TestClearBitmapRoundTrip(t *testing.T) {
	fb := newPlane(t, 64, 3)
	fb.ClearBitmap(true)
	for i, w := range fb.plane.words {
		if w != 0xFFFFFFFF {
			t.Fatalf("word %d = %#08x after ClearBitmap(true)", i, w)
		}
	}
	fb.ClearBitmap(false)
	for i, w := range fb.plane.words {
		if w != 0 {
			t.Fatalf("word %d = %#08x after ClearBitmap(false)", i, w)
		}
	}
}

func TestBitmapLinePlacement(t *testing.T) {
	fb := newPlane(t, 64, 3)
	fb.PositionBitmap(70, 10)
	if xw, y := fb.BitmapOrigin(); xw != 2 || y != 10 {
		t.Fatalf("BitmapOrigin() = (%d, %d), want (2, 10)", xw, y)
	}
	fb.Plot(0, 1, true)
	for _, line := range []int{9, 13} {
		if _, _, ok := fb.BitmapLine(line); ok {
			t.Fatalf("BitmapLine(%d) ok = true, want false", line)
		}
	}
	words, start, ok := fb.BitmapLine(11)
	if !ok || start != 2 || len(words) != 2 || words[0] != 0x80000000 {
		t.Fatalf("BitmapLine(11) = (%v, %d, %v)", words, start, ok)
	}
}

func TestLineToUpdatesCursorUnconditionally(t *testing.T) {
	fb := newPlane(t, 32, 8)
	if err := fb.MoveTo(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := fb.LineTo(4, 1, true); err != nil {
		t.Fatalf("LineTo(4, 1) err = %v", err)
	}
	if got := len(lit(fb)); got != 4 {
		t.Fatalf("lit pixels = %d, want 4", got)
	}
	if err := fb.LineTo(40, 1, true); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("LineTo(40, 1) err = %v, want ErrOutOfBounds", err)
	}
	if got := len(lit(fb)); got != 4 {
		t.Fatalf("LineTo out of plane drew: lit = %d, want 4", got)
	}
	if x, y := fb.PathCursor(); x != 40 || y != 1 {
		t.Fatalf("PathCursor() = (%d, %d), want (40, 1)", x, y)
	}
	if err := fb.MoveTo(40, 1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("MoveTo(40, 1) err = %v, want ErrOutOfBounds", err)
	}
}
