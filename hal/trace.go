package hal

import (
	"io"
	"sync"
	"time"

	"vidout/kernel"
	"vidout/video/raster"
)

const traceBatch = 256

// StreamTracer queues trace words in a lock-free ring and writes them as
// wire frames to w from a background goroutine. Emit never blocks; words
// are dropped when the writer falls behind.
type StreamTracer struct {
	ring kernel.WordRing
	w    io.Writer
	c    io.Closer

	poll time.Duration
	stop chan struct{}
	done sync.WaitGroup

	mu  sync.Mutex
	err error
}

// NewStreamTracer starts draining to w. If w is also an io.Closer, Close
// closes it.
func NewStreamTracer(w io.Writer, poll time.Duration) *StreamTracer {
	if poll <= 0 {
		poll = time.Millisecond
	}
	t := &StreamTracer{w: w, poll: poll, stop: make(chan struct{})}
	if c, ok := w.(io.Closer); ok {
		t.c = c
	}
	t.done.Add(1)
	go t.drain()
	return t
}

// Emit queues one word.
func (t *StreamTracer) Emit(channel uint8, word uint32) {
	t.ring.Emit(channel, word)
}

// Dropped returns the number of words lost to a full ring.
func (t *StreamTracer) Dropped() uint64 {
	return t.ring.Dropped()
}

// Err returns the first write error; the tracer stops writing after it.
func (t *StreamTracer) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *StreamTracer) drain() {
	defer t.done.Done()

	words := make([]kernel.Word, traceBatch)
	buf := make([]byte, 0, traceBatch*raster.WireFrameSize)
	tick := time.NewTicker(t.poll)
	defer tick.Stop()

	flush := func() bool {
		for {
			n := t.ring.Drain(words)
			if n == 0 {
				return true
			}
			buf = buf[:0]
			for _, w := range words[:n] {
				buf = raster.AppendWire(buf, w.Channel, w.Value)
			}
			if _, err := t.w.Write(buf); err != nil {
				t.mu.Lock()
				t.err = err
				t.mu.Unlock()
				return false
			}
		}
	}

	for {
		select {
		case <-t.stop:
			flush()
			return
		case <-tick.C:
			if !flush() {
				<-t.stop
				return
			}
		}
	}
}

// Close flushes queued words and stops the drain goroutine.
func (t *StreamTracer) Close() error {
	close(t.stop)
	t.done.Wait()
	if t.c != nil {
		if err := t.c.Close(); err != nil {
			return err
		}
	}
	return t.Err()
}
