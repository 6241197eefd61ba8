// Package raster composes one output line from the text grid, the font and
// the bitmap plane.
package raster

import (
	"encoding/binary"

	"vidout/video/display"
	"vidout/video/fonts"
)

// CharsPerWord is the number of 8 pixel glyph columns packed into one word.
const CharsPerWord = 4

// LineBytes returns the buffer size needed for cols text columns: whole
// words, so cols rounded up to a multiple of four.
func LineBytes(cols int) int {
	return (cols + CharsPerWord - 1) / CharsPerWord * CharsPerWord
}

// Line rasterizes raster line target into dst and returns the number of
// 32-bit words written.
//
// Text row target/Height supplies the glyphs; every four columns form one
// word with the leftmost column in the most significant byte. Where the
// bitmap plane covers target its words are ORed in from the plane's word
// column onwards. Words are stored big-endian, so dst holds pixels in
// transmission order, MSB first. Each word is passed to tr, if set, in left
// to right order.
//
// dst must hold LineBytes(fb.Columns()) bytes. Lines below the grid produce
// blank text.
func Line(dst []byte, fb *display.Framebuffer, f *fonts.Raster, target int, tr Tracer) int {
	words := len(dst) / 4
	if n := LineBytes(fb.Columns()) / 4; n < words {
		words = n
	}

	row, _ := fb.Row(target / f.Height)
	sub := target % f.Height
	gfx, gfxStart, hasGfx := fb.BitmapLine(target)

	for w := 0; w < words; w++ {
		var word uint32
		for i := 0; i < CharsPerWord; i++ {
			col := w*CharsPerWord + i
			if col < len(row) {
				word |= uint32(f.Row(row[col], sub)) << (24 - 8*i)
			}
		}
		if hasGfx {
			if g := w - gfxStart; g >= 0 && g < len(gfx) {
				word |= gfx[g]
			}
		}
		binary.BigEndian.PutUint32(dst[w*4:], word)
		if tr != nil {
			tr.Emit(TraceData, word)
		}
	}
	return words
}
