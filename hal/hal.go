package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// Video is the pixel shifter plus the vertical sync pin.
//
// ArmLine queues one line for the next line period. When notify is set the
// function registered with OnConsumed is called once the line has been
// shifted out.
type Video interface {
	ArmLine(line []byte, notify bool)
	SyncHigh()
	SyncLow()
	OnConsumed(fn func())
}

// Tracer mirrors output words to an external monitor. Emit never blocks.
type Tracer interface {
	Emit(channel uint8, word uint32)
}

// HAL provides the only contact point between the video core and the
// outside world.
type HAL interface {
	Logger() Logger
	// LED is the busy indicator, raised while a video handler runs.
	LED() LED
	Video() Video
	// Tracer returns nil when no monitor is attached.
	Tracer() Tracer
}
