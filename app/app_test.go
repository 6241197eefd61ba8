package app

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"vidout/hal"
	"vidout/video/raster"
	"vidout/video/timing"
)

type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *testLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *testLogger) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

type testLED struct{ highs, lows int }

func (l *testLED) High() { l.highs++ }
func (l *testLED) Low()  { l.lows++ }

type testTracer struct{ cmds, data int }

func (t *testTracer) Emit(ch uint8, _ uint32) {
	if ch == raster.TraceCommand {
		t.cmds++
		return
	}
	t.data++
}

type testHAL struct {
	log    *testLogger
	led    *testLED
	video  *hal.CaptureVideo
	tracer hal.Tracer
}

func newTestHAL() *testHAL {
	return &testHAL{log: &testLogger{}, led: &testLED{}, video: hal.NewCaptureVideo()}
}

func (h *testHAL) Logger() hal.Logger { return h.log }
func (h *testHAL) LED() hal.LED       { return h.led }
func (h *testHAL) Video() hal.Video   { return h.video }
func (h *testHAL) Tracer() hal.Tracer { return h.tracer }

func TestSystemStepsFrames(t *testing.T) {
	h := newTestHAL()
	tr := &testTracer{}
	h.tracer = tr
	s, err := NewSystem(h, Config{Geometry: timing.LowRes})
	if err != nil {
		t.Fatalf("NewSystem(): %v", err)
	}
	if !h.log.contains("video: 50x18 text") {
		t.Fatalf("startup log = %q, want the video mode", h.log.lines)
	}

	for i := 0; i < 3; i++ {
		if err := s.Step(); err != nil {
			t.Fatalf("Step() = %v, want nil", err)
		}
	}

	sched := s.Scheduler()
	if got, want := sched.Ticks(), uint64(3*625); got != want {
		t.Fatalf("Ticks() = %d, want %d", got, want)
	}
	// 578 active lines per frame, stretched by two: one Prepare per pair.
	if got, want := sched.LowRuns(), uint64(3*289); got != want {
		t.Fatalf("LowRuns() = %d, want %d", got, want)
	}
	if sched.Overruns() != 0 {
		t.Fatalf("Overruns() = %d, want 0", sched.Overruns())
	}
	if got := s.Controller().Frames(); got != 3 {
		t.Fatalf("Frames() = %d, want 3", got)
	}
	if got := h.video.Frames(); got != 2 {
		t.Fatalf("captured frames = %d, want 2", got)
	}
	if tr.cmds != 3 {
		t.Fatalf("open screen commands = %d, want 3", tr.cmds)
	}
	if h.led.highs != h.led.lows || h.led.highs == 0 {
		t.Fatalf("busy pin high/low = %d/%d, want equal and non-zero", h.led.highs, h.led.lows)
	}

	img := h.video.Snapshot()
	if img == nil {
		t.Fatal("Snapshot() = nil, want a frame")
	}
	if bytes.IndexByte(img.Pix, 0xFF) < 0 {
		t.Fatal("captured frame is blank, want the banner")
	}
}

func TestDemoScreen(t *testing.T) {
	h := newTestHAL()
	s, err := NewSystem(h, Config{Geometry: timing.LowRes, Demo: true})
	if err != nil {
		t.Fatalf("NewSystem(): %v", err)
	}
	fb := s.Framebuffer()

	row, _ := fb.Row(0)
	if got := string(row[:12]); got != "012345678901" {
		t.Fatalf("row 0 = %q, want the column ruler", got)
	}
	row, _ = fb.Row(12)
	if got := string(row[:2]); got != "12" {
		t.Fatalf("row 12 = %q, want the row number", got)
	}
	if ch, _ := fb.Cell(49, 17); ch != 'X' {
		t.Fatalf("Cell(49, 17) = %q, want 'X'", ch)
	}
	if ch, _ := fb.Cell(4, 10); ch != 0 {
		t.Fatalf("Cell(4, 10) = %#x, want the first table entry 0", ch)
	}
	if w, hgt := fb.BitmapSize(); w != demoPlaneW || hgt != demoPlaneH {
		t.Fatalf("BitmapSize() = (%d, %d), want (%d, %d)", w, hgt, demoPlaneW, demoPlaneH)
	}
	if on, _ := fb.Pixel(0, 0); !on {
		t.Fatal("plane corner is clear, want the diagonal")
	}

	for i := 0; i < 16; i++ {
		if err := s.Step(); err != nil {
			t.Fatal(err)
		}
	}
	if xw, y := fb.BitmapOrigin(); xw != 110/32 || y != 16 {
		t.Fatalf("BitmapOrigin() = (%d, %d), want (%d, 16)", xw, y, 110/32)
	}
	row, _ = fb.Row(4)
	if got := string(row[4:12]); got != " Testing" {
		t.Fatalf("row 4 = %q, want the caption at column 4", row)
	}
}

func TestStepRecoversPanic(t *testing.T) {
	h := newTestHAL()
	s, err := NewSystem(h, Config{Geometry: timing.LowRes, Demo: true})
	if err != nil {
		t.Fatal(err)
	}
	calls := 0
	s.animate = func(uint64) {
		calls++
		panic("boom")
	}

	if err := s.Step(); err != nil {
		t.Fatalf("Step() = %v, want nil", err)
	}
	if !s.Panicked() {
		t.Fatal("Panicked() = false, want true")
	}
	if err := s.Step(); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("animate calls = %d, want 1", calls)
	}

	fb := s.Framebuffer()
	row, _ := fb.Row(0)
	if !strings.HasPrefix(string(row), "vidout panic:") {
		t.Fatalf("row 0 = %q, want the panic header", row)
	}
	row, _ = fb.Row(2)
	if !strings.HasPrefix(string(row), "panic: boom") {
		t.Fatalf("row 2 = %q, want the panic value", row)
	}
	if fb.HasBitmap() {
		t.Fatal("HasBitmap() = true, want the plane detached")
	}
	if !h.log.contains("panic: boom") {
		t.Fatal("panic not logged")
	}
}

func TestNewWithConfigReportsError(t *testing.T) {
	geo := timing.LowRes
	geo.Rows = 40
	step := NewWithConfig(newTestHAL(), Config{Geometry: geo})
	if err := step(); err == nil {
		t.Fatal("step() = nil, want the geometry error")
	}
}

func TestTakeRunes(t *testing.T) {
	for _, tc := range []struct {
		in         string
		n          int
		head, tail string
	}{
		{"abcdef", 4, "abcd", "ef"},
		{"abc", 4, "abc", ""},
		{"", 4, "", ""},
	} {
		head, tail := takeRunes(tc.in, tc.n)
		if head != tc.head || tail != tc.tail {
			t.Fatalf("takeRunes(%q, %d) = (%q, %q), want (%q, %q)", tc.in, tc.n, head, tail, tc.head, tc.tail)
		}
	}
}
