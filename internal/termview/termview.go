// Package termview draws 1bpp frames on a text terminal with half-block
// characters, two pixel rows per text row.
package termview

import (
	"bufio"
	"image"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	home      = "\x1b[H"
	clearScr  = "\x1b[2J"
	defCols   = 80
	defRows   = 24
	lit       = 0x80
	upperHalf = "▀"
	lowerHalf = "▄"
	fullBlock = "█"
)

// Size returns the terminal size of f, or 80x24 when f is not a terminal.
func Size(f *os.File) (cols, rows int) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return defCols, defRows
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil || cols <= 0 || rows <= 0 {
		return defCols, defRows
	}
	return cols, rows
}

// Render draws img scaled down to fit cols x rows text cells. A cell shows
// a pixel as lit when any source pixel it covers is lit. When redraw is set
// the cursor is homed first so successive frames overwrite each other.
func Render(w io.Writer, img *image.Gray, cols, rows int, redraw bool) error {
	b := img.Bounds()
	if b.Empty() || cols <= 0 || rows <= 0 {
		return nil
	}
	sx := ceilDiv(b.Dx(), cols)
	sy := ceilDiv(b.Dy(), rows*2)
	if sx < 1 {
		sx = 1
	}
	if sy < 1 {
		sy = 1
	}
	outW := ceilDiv(b.Dx(), sx)
	outH := ceilDiv(b.Dy(), sy)

	bw := bufio.NewWriter(w)
	if redraw {
		bw.WriteString(home)
	}
	for y := 0; y < outH; y += 2 {
		for x := 0; x < outW; x++ {
			top := cellLit(img, b.Min.X+x*sx, b.Min.Y+y*sy, sx, sy)
			bot := y+1 < outH && cellLit(img, b.Min.X+x*sx, b.Min.Y+(y+1)*sy, sx, sy)
			switch {
			case top && bot:
				bw.WriteString(fullBlock)
			case top:
				bw.WriteString(upperHalf)
			case bot:
				bw.WriteString(lowerHalf)
			default:
				bw.WriteByte(' ')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Clear blanks the terminal.
func Clear(w io.Writer) error {
	_, err := io.WriteString(w, clearScr+home)
	return err
}

func cellLit(img *image.Gray, x0, y0, sx, sy int) bool {
	b := img.Bounds()
	for y := y0; y < y0+sy && y < b.Max.Y; y++ {
		for x := x0; x < x0+sx && x < b.Max.X; x++ {
			if img.GrayAt(x, y).Y >= lit {
				return true
			}
		}
	}
	return false
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
