package main

import (
	"testing"

	"vidout/video/raster"
)

func TestAssemblerFrames(t *testing.T) {
	var a assembler

	// Words before the first open-screen command belong to no frame.
	if img := a.feed(raster.TraceData, 0xFFFFFFFF); img != nil {
		t.Fatal("feed() returned a frame before any command")
	}
	if img := a.feed(raster.TraceCommand, raster.OpenScreen(40, 2, 1)); img != nil {
		t.Fatal("feed() returned an empty frame")
	}
	// Two words per line: 32 + 8 pixels.
	for _, w := range []uint32{0x80000001, 0xFF000000, 0, 0x80000000, 0xFFFFFFFF} {
		a.feed(raster.TraceData, w)
	}
	img := a.feed(raster.TraceCommand, raster.OpenScreen(40, 2, 1))
	if img == nil {
		t.Fatal("feed() = nil on the next command, want the finished frame")
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 2 {
		t.Fatalf("frame bounds = %v, want 40x2", b)
	}
	for _, tc := range []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0xFF}, {1, 0, 0}, {31, 0, 0xFF}, {32, 0, 0xFF}, {39, 0, 0xFF},
		{0, 1, 0}, {32, 1, 0xFF}, {33, 1, 0},
	} {
		if got := img.GrayAt(tc.x, tc.y).Y; got != tc.want {
			t.Fatalf("pixel (%d,%d) = %#02x, want %#02x", tc.x, tc.y, got, tc.want)
		}
	}

	if img := a.flush(); img != nil {
		t.Fatal("flush() with no words = frame, want nil")
	}
}
