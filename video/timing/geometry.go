// Package timing generates the frame: sync pulses, blanking and the double
// buffered hand-off of rasterized lines to the output peripheral.
package timing

import (
	"errors"
	"fmt"
	"time"

	"vidout/video/raster"
)

// Geometry is the constant protocol table. Line numbers count line periods
// from the start of the frame; horizontal values count timer clocks.
type Geometry struct {
	FrameStart     int // first line of the vertical sync pulse
	BackPorchStart int // sync released, top blanking begins
	BackPorchEnd   int
	Displacement   int // extra blank lines before the picture
	FrameEnd       int // last line of the frame

	Stretch int // each raster line is sent Stretch+1 times

	TimerHz       int // line timer clock
	LinePeriod    int
	HSyncWidth    int
	SyncPlusPorch int // line interrupt point
	PixelDivider  int // timer clock / pixel clock

	Columns     int
	Rows        int
	GlyphHeight int
}

// LowRes is 50 columns of 8x16 text on an 800x600@56Hz style frame driven
// from a 72MHz timer.
var LowRes = Geometry{
	FrameStart:     0,
	BackPorchStart: 2,
	BackPorchEnd:   22,
	Displacement:   10,
	FrameEnd:       624,
	Stretch:        1,
	TimerHz:        72_000_000,
	LinePeriod:     2048,
	HSyncWidth:     144,
	SyncPlusPorch:  280,
	PixelDivider:   4,
	Columns:        50,
	Rows:           18,
	GlyphHeight:    16,
}

// HighRes doubles the pixel clock for 100 columns on the same frame.
var HighRes = func() Geometry {
	g := LowRes
	g.PixelDivider = 2
	g.Columns = 100
	return g
}()

// ActiveStart is the first line carrying picture data.
func (g Geometry) ActiveStart() int { return g.BackPorchEnd + g.Displacement }

// ActiveEnd is the last line carrying picture data (inclusive).
func (g Geometry) ActiveEnd() int {
	return g.ActiveStart() + g.TextLines()*(g.Stretch+1) + 1
}

// TextLines is the number of distinct raster lines in the text grid.
func (g Geometry) TextLines() int { return g.Rows * g.GlyphHeight }

// LineBytes is the size of one line buffer, rounded up to whole words.
func (g Geometry) LineBytes() int { return raster.LineBytes(g.Columns) }

// ArmLength is the number of bytes handed to the sink per line.
func (g Geometry) ArmLength() int { return g.Columns }

// Width and Height give the picture size in pixels, before stretching.
func (g Geometry) Width() int  { return g.Columns * 8 }
func (g Geometry) Height() int { return g.TextLines() }

// LineDuration is the wall time of one line period.
func (g Geometry) LineDuration() time.Duration {
	if g.TimerHz <= 0 {
		return 0
	}
	return time.Duration(int64(g.LinePeriod) * int64(time.Second) / int64(g.TimerHz))
}

// FrameDuration is the wall time of one frame.
func (g Geometry) FrameDuration() time.Duration {
	return g.LineDuration() * time.Duration(g.FrameEnd+1)
}

var errBadOrder = errors.New("timing: frame regions out of order")

// Validate checks that the regions nest and the picture fits the frame.
func (g Geometry) Validate() error {
	if g.Columns <= 0 || g.Rows <= 0 || g.GlyphHeight <= 0 {
		return fmt.Errorf("timing: empty text grid %dx%d glyph height %d", g.Columns, g.Rows, g.GlyphHeight)
	}
	if g.Stretch < 0 || g.Displacement < 0 {
		return fmt.Errorf("timing: negative stretch %d or displacement %d", g.Stretch, g.Displacement)
	}
	if g.FrameStart < 0 || g.FrameStart >= g.BackPorchStart || g.BackPorchStart > g.BackPorchEnd {
		return errBadOrder
	}
	if g.ActiveEnd() >= g.FrameEnd {
		return fmt.Errorf("timing: picture ends on line %d, frame ends on line %d", g.ActiveEnd(), g.FrameEnd)
	}
	if g.TimerHz <= 0 || g.PixelDivider <= 0 {
		return fmt.Errorf("timing: invalid clock %d Hz / %d", g.TimerHz, g.PixelDivider)
	}
	if g.HSyncWidth <= 0 || g.HSyncWidth >= g.SyncPlusPorch || g.SyncPlusPorch >= g.LinePeriod {
		return fmt.Errorf("timing: horizontal timing %d/%d/%d out of order", g.HSyncWidth, g.SyncPlusPorch, g.LinePeriod)
	}
	if px := g.SyncPlusPorch + g.Width()*g.PixelDivider; px > g.LinePeriod {
		return fmt.Errorf("timing: %d pixels overrun the line period (%d > %d clocks)", g.Width(), px, g.LinePeriod)
	}
	return nil
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d text, %dx%d px, stretch %d, lines %d..%d of %d, line %v",
		g.Columns, g.Rows, g.Width(), g.Height(), g.Stretch,
		g.ActiveStart(), g.ActiveEnd(), g.FrameEnd+1, g.LineDuration())
}

// PixelHz is the pixel shift rate.
func (g Geometry) PixelHz() int {
	if g.PixelDivider <= 0 {
		return 0
	}
	return g.TimerHz / g.PixelDivider
}

// HSyncDuration is the wall time of the horizontal sync pulse.
func (g Geometry) HSyncDuration() time.Duration {
	if g.TimerHz <= 0 {
		return 0
	}
	return time.Duration(int64(g.HSyncWidth) * int64(time.Second) / int64(g.TimerHz))
}
