package hal

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"vidout/video/raster"
)

type lockedBuffer struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func TestStreamTracerWritesFrames(t *testing.T) {
	out := &lockedBuffer{}
	tr := NewStreamTracer(out, time.Millisecond)

	tr.Emit(raster.TraceCommand, raster.OpenScreen(400, 288, 1))
	for i := uint32(0); i < 1000; i++ {
		tr.Emit(raster.TraceData, i)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close() = %v, want nil", err)
	}
	if !out.closed {
		t.Fatal("Close() did not close the writer")
	}

	r := raster.NewWireReader(bytes.NewReader(out.buf.Bytes()))
	ch, w, err := r.Next()
	if err != nil || ch != raster.TraceCommand {
		t.Fatalf("Next() = (%d, %#x, %v), want the open screen command", ch, w, err)
	}
	for i := uint32(0); i < 1000; i++ {
		ch, w, err := r.Next()
		if err != nil || ch != raster.TraceData || w != i {
			t.Fatalf("Next() = (%d, %d, %v), want (%d, %d, nil)", ch, w, err, raster.TraceData, i)
		}
	}
	if _, _, err := r.Next(); err != io.EOF {
		t.Fatalf("Next() err = %v, want EOF", err)
	}
}

type failWriter struct{}

var errPortGone = errors.New("port gone")

func (failWriter) Write(p []byte) (int, error) { return 0, errPortGone }

func TestStreamTracerReportsWriteError(t *testing.T) {
	tr := NewStreamTracer(failWriter{}, time.Millisecond)
	tr.Emit(raster.TraceData, 1)
	if err := tr.Close(); !errors.Is(err, errPortGone) {
		t.Fatalf("Close() = %v, want %v", err, errPortGone)
	}
}
