package raster

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"vidout/video/display"
	"vidout/video/fonts"
)

// twoRowFont has glyphs for 'A' and 'B' only: A = {0xAA, 0x11}, B = {0xBB, 0x22}.
func twoRowFont(t *testing.T) *fonts.Raster {
	t.Helper()
	f, err := fonts.New(2, 'A', 'B', []byte{0xAA, 0x11, 0xBB, 0x22})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func grid(t *testing.T, cols, rows int) *display.Framebuffer {
	t.Helper()
	fb, err := display.Make(cols, rows, ' ')
	if err != nil {
		t.Fatal(err)
	}
	return fb
}

type recorder struct {
	channels []uint8
	words    []uint32
}

func (r *recorder) Emit(ch uint8, w uint32) {
	r.channels = append(r.channels, ch)
	r.words = append(r.words, w)
}

func TestLineBytes(t *testing.T) {
	for _, tc := range []struct{ cols, want int }{{1, 4}, {4, 4}, {5, 8}, {50, 52}, {100, 100}} {
		if got := LineBytes(tc.cols); got != tc.want {
			t.Fatalf("LineBytes(%d) = %d, want %d", tc.cols, got, tc.want)
		}
	}
}

func TestLineText(t *testing.T) {
	f := twoRowFont(t)
	fb := grid(t, 4, 1)
	fb.WriteString("AB")

	dst := make([]byte, LineBytes(4))
	for _, tc := range []struct {
		target int
		want   uint32
	}{
		{0, 0xAABB0000},
		{1, 0x11220000},
		{2, 0}, // below the grid
	} {
		if n := Line(dst, fb, f, tc.target, nil); n != 1 {
			t.Fatalf("Line(%d) = %d words, want 1", tc.target, n)
		}
		if got := binary.BigEndian.Uint32(dst); got != tc.want {
			t.Fatalf("Line(%d) word = %#08x, want %#08x", tc.target, got, tc.want)
		}
	}
}

func TestLinePartialWord(t *testing.T) {
	f := twoRowFont(t)
	fb := grid(t, 5, 1)
	fb.Fill('A', 5)

	dst := make([]byte, LineBytes(5))
	if n := Line(dst, fb, f, 0, nil); n != 2 {
		t.Fatalf("Line() = %d words, want 2", n)
	}
	want := []byte{0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("dst = % x, want % x", dst, want)
		}
	}
}

func TestLineBitmapPixel(t *testing.T) {
	f := twoRowFont(t)
	fb := grid(t, 8, 2)
	if err := fb.AttachBitmap(32, 4, make([]uint32, display.BitmapWords(32, 4))); err != nil {
		t.Fatal(err)
	}
	if err := fb.Plot(5, 2, true); err != nil {
		t.Fatal(err)
	}

	dst := make([]byte, LineBytes(8))
	Line(dst, fb, f, 2, nil)
	if dst[0] != 0x04 {
		t.Fatalf("dst[0] = %#02x, want 0x04", dst[0])
	}
	for i := 1; i < len(dst); i++ {
		if dst[i] != 0 {
			t.Fatalf("dst[%d] = %#02x, want 0", i, dst[i])
		}
	}
}

func TestLineBitmapPlacement(t *testing.T) {
	f := twoRowFont(t)
	fb := grid(t, 12, 2) // three words per line
	fb.WriteString("A")
	if err := fb.AttachBitmap(64, 2, make([]uint32, display.BitmapWords(64, 2))); err != nil {
		t.Fatal(err)
	}
	fb.ClearBitmap(true)
	fb.PositionBitmap(40, 1) // word column 1, raster lines 1..2

	dst := make([]byte, LineBytes(12))

	Line(dst, fb, f, 0, nil)
	if got := binary.BigEndian.Uint32(dst[4:]); got != 0 {
		t.Fatalf("line 0 word 1 = %#08x, want 0 above the plane", got)
	}

	Line(dst, fb, f, 1, nil)
	want := []uint32{0x11000000, 0xFFFFFFFF, 0xFFFFFFFF}
	for i, w := range want {
		if got := binary.BigEndian.Uint32(dst[i*4:]); got != w {
			t.Fatalf("line 1 word %d = %#08x, want %#08x", i, got, w)
		}
	}

	// Plane wider than the remaining line is cut at the line end.
	fb.PositionBitmap(64, 1)
	Line(dst, fb, f, 1, nil)
	if got := binary.BigEndian.Uint32(dst[8:]); got != 0xFFFFFFFF {
		t.Fatalf("line 1 word 2 = %#08x, want 0xffffffff", got)
	}
	if got := binary.BigEndian.Uint32(dst[4:]); got != 0 {
		t.Fatalf("line 1 word 1 = %#08x, want 0", got)
	}
}

func TestLineTraceOrder(t *testing.T) {
	f := twoRowFont(t)
	fb := grid(t, 8, 1)
	fb.WriteString("A   B")

	var rec recorder
	dst := make([]byte, LineBytes(8))
	if n := Line(dst, fb, f, 0, &rec); n != 2 {
		t.Fatalf("Line() = %d words, want 2", n)
	}
	if len(rec.words) != 2 {
		t.Fatalf("traced %d words, want 2", len(rec.words))
	}
	if rec.words[0] != 0xAA000000 || rec.words[1] != 0xBB000000 {
		t.Fatalf("traced %#08x, want [0xaa000000 0xbb000000]", rec.words)
	}
	for i, ch := range rec.channels {
		if ch != TraceData {
			t.Fatalf("channel[%d] = %d, want TraceData", i, ch)
		}
	}
}

func TestOpenScreenRoundTrip(t *testing.T) {
	w := OpenScreen(800, 576, 1)
	gw, gh, gd, ok := DecodeOpenScreen(w)
	if !ok || gw != 800 || gh != 576 || gd != 1 {
		t.Fatalf("DecodeOpenScreen(%#08x) = (%d, %d, %d, %v), want (800, 576, 1, true)", w, gw, gh, gd, ok)
	}
	if _, _, _, ok := DecodeOpenScreen(0xAA000000); ok {
		t.Fatal("DecodeOpenScreen(data word) ok = true, want false")
	}
}

func TestWireResync(t *testing.T) {
	var buf []byte
	buf = append(buf, 0x00, 0x13) // noise before the first marker
	buf = AppendWire(buf, TraceCommand, OpenScreen(400, 288, 1))
	buf = append(buf, WireMarker, 9, 1, 2, 3, 4) // unknown channel
	buf = AppendWire(buf, TraceData, 0xDEADBEEF)

	r := NewWireReader(bytes.NewReader(buf))
	ch, w, err := r.Next()
	if err != nil || ch != TraceCommand || w != OpenScreen(400, 288, 1) {
		t.Fatalf("Next() = (%d, %#08x, %v), want open screen", ch, w, err)
	}
	ch, w, err = r.Next()
	if err != nil || ch != TraceData || w != 0xDEADBEEF {
		t.Fatalf("Next() = (%d, %#08x, %v), want (1, 0xdeadbeef, nil)", ch, w, err)
	}
	if _, _, err := r.Next(); err != io.EOF {
		t.Fatalf("Next() err = %v, want EOF", err)
	}
	if got := r.Skipped(); got != 2+WireFrameSize {
		t.Fatalf("Skipped() = %d, want %d", got, 2+WireFrameSize)
	}
}
