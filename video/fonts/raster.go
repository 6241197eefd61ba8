// Package fonts holds the fixed-width glyph tables the rasterizer reads.
//
// A Raster is an 8 pixel wide font: one byte per glyph row, leftmost pixel
// in the most significant bit. Tables can be built from any tinyfont.Fonter
// or x/image font.Face, or declared directly as data.
package fonts

import (
	"errors"
	"fmt"
)

// Width is the glyph width in pixels. It is fixed: one glyph row is one byte.
const Width = 8

// Raster is an immutable glyph table.
//
// Data is addressed as (ch-First)*Height + row.
type Raster struct {
	Height int
	First  byte
	Last   byte
	Data   []byte
}

var errEmptyRange = errors.New("fonts: last character before first")

// New validates and returns a glyph table.
func New(height int, first, last byte, data []byte) (*Raster, error) {
	if height <= 0 || height > 255 {
		return nil, fmt.Errorf("fonts: invalid glyph height %d", height)
	}
	if last < first {
		return nil, errEmptyRange
	}
	want := TableSize(height, first, last)
	if len(data) != want {
		return nil, fmt.Errorf("fonts: table is %d bytes, want %d", len(data), want)
	}
	return &Raster{Height: height, First: first, Last: last, Data: data}, nil
}

// TableSize returns the number of bytes a table of the given shape occupies.
func TableSize(height int, first, last byte) int {
	if last < first || height <= 0 {
		return 0
	}
	return (int(last) - int(first) + 1) * height
}

// Glyphs returns the number of characters in the table.
func (f *Raster) Glyphs() int {
	return int(f.Last) - int(f.First) + 1
}

// Has reports whether ch has a glyph.
func (f *Raster) Has(ch byte) bool {
	return ch >= f.First && ch <= f.Last
}

// Row returns one glyph row. Characters or rows outside the table are blank.
func (f *Raster) Row(ch byte, row int) byte {
	if ch < f.First || ch > f.Last || row < 0 || row >= f.Height {
		return 0
	}
	return f.Data[int(ch-f.First)*f.Height+row]
}

// Glyph returns the rows of one character, or nil if ch is outside the table.
func (f *Raster) Glyph(ch byte) []byte {
	if !f.Has(ch) {
		return nil
	}
	off := int(ch-f.First) * f.Height
	return f.Data[off : off+f.Height]
}
