package fonts

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FromFace renders characters first..last of face into a table of the given
// glyph height. The face's line box is centred vertically in the cell and
// anything right of column 7 is dropped.
//
// Character codes are taken as Latin-1, so 0xA0..0xFF map to U+00A0..U+00FF.
// Codes the face has no glyph for come out blank.
func FromFace(face font.Face, height int, first, last byte) (*Raster, error) {
	if face == nil {
		return nil, errors.New("fonts: nil face")
	}
	size := TableSize(height, first, last)
	if size == 0 {
		return nil, fmt.Errorf("fonts: invalid shape height=%d first=%#x last=%#x", height, first, last)
	}

	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()
	if ascent+descent > height {
		return nil, fmt.Errorf("fonts: face needs %d rows, cell has %d", ascent+descent, height)
	}
	baseline := (height-ascent-descent)/2 + ascent

	data := make([]byte, size)
	img := image.NewGray(image.Rect(0, 0, Width, height))
	d := font.Drawer{Dst: img, Src: image.White, Face: face}

	for ch := int(first); ch <= int(last); ch++ {
		clear(img.Pix)
		d.Dot = fixed.P(0, baseline)
		d.DrawString(string(rune(ch)))

		off := (ch - int(first)) * height
		packRows(img, data[off:off+height])
	}
	return New(height, first, last, data)
}

// packRows packs each row of an 8 pixel wide grey image MSB-first.
func packRows(img *image.Gray, dst []byte) {
	for y := range dst {
		var b byte
		for x := 0; x < Width; x++ {
			if img.GrayAt(x, y).Y >= 128 {
				b |= 0x80 >> x
			}
		}
		dst[y] = b
	}
}

// DefaultHeight is the glyph height of Default.
const DefaultHeight = 16

var (
	defaultOnce sync.Once
	defaultFont *Raster
)

// Default returns the 8x16 table built from basicfont.Face7x13, covering
// 0x20..0xFF.
func Default() *Raster {
	defaultOnce.Do(func() {
		f, err := FromFace(basicfont.Face7x13, DefaultHeight, 0x20, 0xFF)
		if err != nil {
			panic(err)
		}
		defaultFont = f
	})
	return defaultFont
}
