// Package display implements the frame content model: a character grid plus
// an optional 1bpp bitmap plane positioned over it, and the drawing
// primitives that operate on that plane.
//
// Storage is supplied by the caller; the package does not allocate after
// construction. Every operation validates its coordinates and either clips
// or reports failure.
package display

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBitmap is returned by plane operations when no plane is attached.
	ErrNoBitmap = errors.New("display: no bitmap attached")
	// ErrOutOfBounds is returned for coordinates outside the plane.
	ErrOutOfBounds = errors.New("display: coordinate out of bounds")
	// ErrScreenFull is returned by Write when the cursor runs off the grid.
	ErrScreenFull = errors.New("display: text cursor past last row")
)

// Exhausted is returned by the cursor advance operations once the cursor has
// moved below the last row.
const Exhausted = -1

// Framebuffer is one frame's worth of content.
//
// Text and bitmap storage never alias. Reads from the rasterizer are not
// synchronised with writes; a line may show a partially updated frame.
type Framebuffer struct {
	cols  int
	rows  int
	cells []byte

	cx int
	cy int

	plane bitmap

	// Path cursor for MoveTo/LineTo, in plane pixels.
	px int
	py int
}

// CellBytes returns the storage needed for a cols x rows grid.
func CellBytes(cols, rows int) int { return cols * rows }

// New builds a framebuffer over caller-provided cell storage, fills it with
// fill and homes the cursor.
func New(cols, rows int, storage []byte, fill byte) (*Framebuffer, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("display: invalid grid %dx%d", cols, rows)
	}
	if len(storage) < CellBytes(cols, rows) {
		return nil, fmt.Errorf("display: cell storage is %d bytes, need %d", len(storage), CellBytes(cols, rows))
	}
	fb := &Framebuffer{
		cols:  cols,
		rows:  rows,
		cells: storage[:CellBytes(cols, rows)],
	}
	fb.Clear(fill)
	return fb, nil
}

// Make is New with freshly allocated storage.
func Make(cols, rows int, fill byte) (*Framebuffer, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("display: invalid grid %dx%d", cols, rows)
	}
	return New(cols, rows, make([]byte, CellBytes(cols, rows)), fill)
}

// Columns returns the grid width in characters.
func (fb *Framebuffer) Columns() int { return fb.cols }

// Rows returns the grid height in characters.
func (fb *Framebuffer) Rows() int { return fb.rows }

// Cursor returns the text cursor. y == Rows() means the grid is exhausted.
func (fb *Framebuffer) Cursor() (x, y int) { return fb.cx, fb.cy }

func (fb *Framebuffer) inGrid(x, y int) bool {
	return x >= 0 && x < fb.cols && y >= 0 && y < fb.rows
}

// SetCell writes one character. It reports false, writing nothing, when
// (x, y) is outside the grid.
func (fb *Framebuffer) SetCell(x, y int, ch byte) bool {
	if !fb.inGrid(x, y) {
		return false
	}
	fb.cells[y*fb.cols+x] = ch
	return true
}

// Cell reads one character.
func (fb *Framebuffer) Cell(x, y int) (byte, bool) {
	if !fb.inGrid(x, y) {
		return 0, false
	}
	return fb.cells[y*fb.cols+x], true
}

// MoveCursor places the text cursor. Out of range positions are refused and
// the cursor stays where it was.
func (fb *Framebuffer) MoveCursor(x, y int) bool {
	if !fb.inGrid(x, y) {
		return false
	}
	fb.cx, fb.cy = x, y
	return true
}

// AdvanceRow moves the cursor to column 0 of the next row and returns the new
// row. Moving off the last row parks the cursor one row below the grid and
// returns Exhausted, as does every call after that.
func (fb *Framebuffer) AdvanceRow() int {
	if fb.cy >= fb.rows {
		return Exhausted
	}
	fb.cy++
	fb.cx = 0
	if fb.cy >= fb.rows {
		return Exhausted
	}
	return fb.cy
}

// AdvanceColumn moves the cursor one column right, wrapping onto the next
// row, and returns the new column or Exhausted.
func (fb *Framebuffer) AdvanceColumn() int {
	if fb.cy >= fb.rows {
		return Exhausted
	}
	fb.cx++
	if fb.cx >= fb.cols {
		if fb.AdvanceRow() == Exhausted {
			return Exhausted
		}
	}
	return fb.cx
}

// WriteString writes s at the cursor, advancing as it goes. '\n' moves to
// the start of the next row without using a column. It stops when the
// cursor leaves the grid and returns the number of bytes of s consumed.
func (fb *Framebuffer) WriteString(s string) int {
	n := 0
	for n < len(s) {
		if !fb.inGrid(fb.cx, fb.cy) {
			break
		}
		ch := s[n]
		n++
		if ch == '\n' {
			fb.AdvanceRow()
			continue
		}
		fb.cells[fb.cy*fb.cols+fb.cx] = ch
		fb.AdvanceColumn()
	}
	return n
}

// Write implements io.Writer over WriteString so fmt.Fprintf can target the
// grid. A short write returns ErrScreenFull.
func (fb *Framebuffer) Write(p []byte) (int, error) {
	n := fb.WriteString(string(p))
	if n < len(p) {
		return n, ErrScreenFull
	}
	return n, nil
}

// Fill writes ch count times from the cursor, advancing it, and returns how
// many cells were written.
func (fb *Framebuffer) Fill(ch byte, count int) int {
	n := 0
	for n < count && fb.inGrid(fb.cx, fb.cy) {
		fb.cells[fb.cy*fb.cols+fb.cx] = ch
		n++
		fb.AdvanceColumn()
	}
	return n
}

// FillToRowEnd overwrites from the cursor to the end of its row without
// moving the cursor, returning the number of cells written.
func (fb *Framebuffer) FillToRowEnd(ch byte) int {
	if !fb.inGrid(fb.cx, fb.cy) {
		return 0
	}
	row := fb.cells[fb.cy*fb.cols : (fb.cy+1)*fb.cols]
	for i := fb.cx; i < fb.cols; i++ {
		row[i] = ch
	}
	return fb.cols - fb.cx
}

// Clear fills the whole grid with ch and homes the cursor.
func (fb *Framebuffer) Clear(ch byte) {
	for i := range fb.cells {
		fb.cells[i] = ch
	}
	fb.cx, fb.cy = 0, 0
}

// Row returns the characters of row y. The slice aliases the grid.
func (fb *Framebuffer) Row(y int) ([]byte, bool) {
	if y < 0 || y >= fb.rows {
		return nil, false
	}
	return fb.cells[y*fb.cols : (y+1)*fb.cols], true
}
