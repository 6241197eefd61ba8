package fonts

import (
	"errors"
	"fmt"
	"image/color"

	"tinygo.org/x/tinyfont"
)

// LineMetrics derives the cell height and baseline offset of a tinyfont
// font by scanning the glyph boxes of characters first..last.
//
// height is the distance from the highest glyph top to the lowest glyph
// bottom; ascent is the baseline's offset from the top of that box.
func LineMetrics(f tinyfont.Fonter, first, last byte) (height, ascent int, err error) {
	if f == nil {
		return 0, 0, errors.New("fonts: nil fonter")
	}
	minY, maxY := 0, 0
	seen := false
	for ch := int(first); ch <= int(last); ch++ {
		info := f.GetGlyph(rune(ch)).Info()
		if info.Height == 0 {
			continue
		}
		top := int(info.YOffset)
		bottom := top + int(info.Height)
		if !seen {
			minY, maxY = top, bottom
			seen = true
			continue
		}
		if top < minY {
			minY = top
		}
		if bottom > maxY {
			maxY = bottom
		}
	}
	if !seen {
		return 0, 0, errors.New("fonts: no glyphs in range")
	}
	height = maxY - minY
	ascent = -minY
	if height <= 0 || ascent < 0 {
		return 0, 0, fmt.Errorf("fonts: invalid metrics height=%d ascent=%d", height, ascent)
	}
	return height, ascent, nil
}

// FromFonter renders characters first..last of a tinyfont font into a table
// of the given glyph height. Glyphs taller than the cell are clipped at the
// bottom, narrower line boxes are centred.
func FromFonter(f tinyfont.Fonter, height int, first, last byte) (*Raster, error) {
	size := TableSize(height, first, last)
	if size == 0 {
		return nil, fmt.Errorf("fonts: invalid shape height=%d first=%#x last=%#x", height, first, last)
	}
	lineHeight, ascent, err := LineMetrics(f, first, last)
	if err != nil {
		return nil, err
	}
	baseline := ascent
	if lineHeight < height {
		baseline += (height - lineHeight) / 2
	}

	data := make([]byte, size)
	c := &glyphCell{h: int16(height)}
	on := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	for ch := int(first); ch <= int(last); ch++ {
		off := (ch - int(first)) * height
		c.rows = data[off : off+height]
		f.GetGlyph(rune(ch)).Draw(c, 0, int16(baseline), on)
	}
	return New(height, first, last, data)
}

// glyphCell captures one glyph drawn through drivers.Displayer.
type glyphCell struct {
	rows []byte
	h    int16
}

func (c *glyphCell) Size() (x, y int16) { return Width, c.h }

func (c *glyphCell) SetPixel(x, y int16, col color.RGBA) {
	if x < 0 || x >= Width || y < 0 || y >= c.h || col.A == 0 {
		return
	}
	c.rows[y] |= 0x80 >> uint(x)
}

func (c *glyphCell) Display() error { return nil }
