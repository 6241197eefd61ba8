//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// HostConfig selects optional host devices.
type HostConfig struct {
	// TraceDevice is a serial port that receives the trace stream.
	TraceDevice string
	TraceBaud   int
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	video  *CaptureVideo
	tracer *StreamTracer
}

// New returns a host HAL implementation.
func New(cfg HostConfig) (HAL, error) {
	h := &hostHAL{
		logger: &hostLogger{w: os.Stdout},
		led:    &hostLED{},
		video:  NewCaptureVideo(),
	}
	if cfg.TraceDevice != "" {
		tr, err := OpenSerialTracer(cfg.TraceDevice, cfg.TraceBaud)
		if err != nil {
			return nil, fmt.Errorf("hal: trace port: %w", err)
		}
		h.tracer = tr
		h.logger.WriteLineString(fmt.Sprintf("trace: %s @ %d baud", cfg.TraceDevice, cfg.TraceBaud))
	}
	return h, nil
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) LED() LED       { return h.led }
func (h *hostHAL) Video() Video   { return h.video }

func (h *hostHAL) Tracer() Tracer {
	if h.tracer == nil {
		return nil
	}
	return h.tracer
}

// Close releases the trace port.
func (h *hostHAL) Close() error {
	if h.tracer == nil {
		return nil
	}
	return h.tracer.Close()
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// hostLED counts busy periods; toggling at line rate is too fast to log.
type hostLED struct {
	on    atomic.Bool
	highs atomic.Uint64
}

func (l *hostLED) High() {
	l.on.Store(true)
	l.highs.Add(1)
}

func (l *hostLED) Low() { l.on.Store(false) }
