package timing

import (
	"errors"
	"sync/atomic"

	"vidout/video/display"
	"vidout/video/fonts"
	"vidout/video/raster"
)

// Sink is the output peripheral: a pixel shifter plus the vertical sync pin.
//
// ArmLine queues line for transmission on the next line period. When notify
// is set the sink must report, once the line has been shifted out, that the
// buffer may be rewritten (on hardware, the DMA complete interrupt that runs
// Prepare).
type Sink interface {
	ArmLine(line []byte, notify bool)
	SyncHigh()
	SyncLow()
}

// Pin is an optional busy indicator raised while a handler runs.
type Pin interface {
	High()
	Low()
}

// Controller is the line state machine for one video output.
//
// Tick runs once per line period at high priority; Prepare runs at lower
// priority whenever a notified line has been consumed. Prepare only writes
// the buffer Tick is not reading, and Tick only flips buffers on a notified
// line, so the two never touch the same buffer at once.
type Controller struct {
	geo    Geometry
	fb     *display.Framebuffer
	font   *fonts.Raster
	sink   Sink
	tracer raster.Tracer
	busy   Pin

	lines       [2][]byte
	armLen      int
	activeStart int
	activeEnd   int
	textLines   int32
	openScreen  uint32

	// Tick only.
	scanLine int
	stretch  int

	readIndex  atomic.Int32
	outputLine atomic.Int32
	frames     atomic.Uint64
}

// New builds a controller. The line buffers start blank; the first frame
// shows blank lines until Prepare has primed it.
func New(geo Geometry, fb *display.Framebuffer, f *fonts.Raster, sink Sink) (*Controller, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	if fb == nil || f == nil || sink == nil {
		return nil, errors.New("timing: framebuffer, font and sink are required")
	}
	if f.Height != geo.GlyphHeight {
		return nil, errors.New("timing: font height does not match geometry")
	}
	if fb.Columns() != geo.Columns || fb.Rows() != geo.Rows {
		return nil, errors.New("timing: framebuffer size does not match geometry")
	}
	c := &Controller{
		geo:         geo,
		fb:          fb,
		font:        f,
		sink:        sink,
		armLen:      geo.ArmLength(),
		activeStart: geo.ActiveStart(),
		activeEnd:   geo.ActiveEnd(),
		textLines:   int32(geo.TextLines()),
		openScreen:  raster.OpenScreen(geo.Width(), geo.Height(), 1),
		scanLine:    geo.FrameStart,
	}
	for i := range c.lines {
		c.lines[i] = make([]byte, geo.LineBytes())
	}
	return c, nil
}

// SetTracer mirrors every rasterized word and the per-frame open-screen
// command to tr. Call before the first Tick.
func (c *Controller) SetTracer(tr raster.Tracer) { c.tracer = tr }

// SetBusy drives p high for the duration of each handler. Call before the
// first Tick.
func (c *Controller) SetBusy(p Pin) { c.busy = p }

func (c *Controller) arm(i int32, notify bool) {
	c.sink.ArmLine(c.lines[i][:c.armLen], notify)
}

// Tick advances the frame by one line period.
func (c *Controller) Tick() {
	if c.busy != nil {
		c.busy.High()
	}

	line := c.scanLine
	c.scanLine++
	g := &c.geo

	switch {
	case line >= g.FrameStart && line < g.BackPorchStart:
		c.sink.SyncHigh()

	case line >= g.BackPorchStart && line < c.activeStart:
		c.sink.SyncLow()
		c.outputLine.Store(0)
		c.readIndex.Store(0)
		c.stretch = 0
		c.arm(1, false)

	case line >= c.activeStart && line <= c.activeEnd:
		r := c.readIndex.Load()
		if c.stretch == g.Stretch {
			c.arm(r, true)
			c.readIndex.Store(1 - r)
			c.stretch = 0
		} else {
			c.arm(r, false)
			c.stretch++
		}

	case line > c.activeEnd && line < g.FrameEnd:
		c.arm(1, false)

	case line == g.FrameEnd:
		c.scanLine = 0
		c.frames.Add(1)
	}

	if c.busy != nil {
		c.busy.Low()
	}
}

// Prepare rasterizes the next line into the buffer Tick is not reading.
// Past the last text line it primes the next frame instead: line 0 into
// buffer 0, buffer 1 zeroed for blanking.
func (c *Controller) Prepare() {
	if c.busy != nil {
		c.busy.High()
	}

	out := c.outputLine.Load()
	if out >= c.textLines {
		raster.Line(c.lines[0], c.fb, c.font, 0, c.tracer)
		c.readIndex.Store(0)
		if c.tracer != nil && out == c.textLines {
			c.tracer.Emit(raster.TraceCommand, c.openScreen)
		}
		clear(c.lines[1])
	} else {
		raster.Line(c.lines[1-c.readIndex.Load()], c.fb, c.font, int(out), c.tracer)
		c.outputLine.Store(out + 1)
	}

	if c.busy != nil {
		c.busy.Low()
	}
}

// Geometry returns the table the controller was built with.
func (c *Controller) Geometry() Geometry { return c.geo }

// ScanLine is the line the next Tick handles.
func (c *Controller) ScanLine() int { return c.scanLine }

// ReadIndex is the buffer Tick is currently handing to the sink.
func (c *Controller) ReadIndex() int { return int(c.readIndex.Load()) }

// OutputLine is the next raster line Prepare will produce.
func (c *Controller) OutputLine() int { return int(c.outputLine.Load()) }

// Frames counts completed frames.
func (c *Controller) Frames() uint64 { return c.frames.Load() }

// Buffer exposes line buffer i (0 or 1).
func (c *Controller) Buffer(i int) []byte { return c.lines[i] }
