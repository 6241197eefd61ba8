package hal

import (
	"image"
	"sync"
)

// CaptureVideo is a Video that records what a monitor would show. Every
// armed line becomes one raster row; the rising edge of vertical sync ends
// the frame.
type CaptureVideo struct {
	mu         sync.Mutex
	onConsumed func()
	vsync      bool

	rows  [][]byte
	n     int
	last  [][]byte
	lastN int

	frames uint64
	width  int
}

// NewCaptureVideo returns an empty capture.
func NewCaptureVideo() *CaptureVideo {
	return &CaptureVideo{}
}

// OnConsumed registers the line-consumed notification.
func (v *CaptureVideo) OnConsumed(fn func()) {
	v.mu.Lock()
	v.onConsumed = fn
	v.mu.Unlock()
}

// ArmLine copies line into the frame in progress. A host line is consumed
// as soon as it is copied, so a notification fires immediately.
func (v *CaptureVideo) ArmLine(line []byte, notify bool) {
	v.mu.Lock()
	if v.n == len(v.rows) {
		v.rows = append(v.rows, nil)
	}
	v.rows[v.n] = append(v.rows[v.n][:0], line...)
	v.n++
	if len(line) > v.width {
		v.width = len(line)
	}
	fn := v.onConsumed
	v.mu.Unlock()

	if notify && fn != nil {
		fn()
	}
}

// SyncHigh starts the vertical sync pulse; its rising edge completes the
// frame in progress.
func (v *CaptureVideo) SyncHigh() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.vsync {
		return
	}
	v.vsync = true
	if v.n == 0 {
		return
	}
	v.rows, v.last = v.last, v.rows
	v.lastN = v.n
	v.n = 0
	v.frames++
}

func (v *CaptureVideo) SyncLow() {
	v.mu.Lock()
	v.vsync = false
	v.mu.Unlock()
}

// Frames returns the number of completed frames.
func (v *CaptureVideo) Frames() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frames
}

// Snapshot renders the last completed frame, one pixel per bit, MSB first.
// It returns nil before the first frame completes.
func (v *CaptureVideo) Snapshot() *image.Gray {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.lastN == 0 {
		return nil
	}
	img := image.NewGray(image.Rect(0, 0, v.width*8, v.lastN))
	for y, row := range v.last[:v.lastN] {
		pix := img.Pix[y*img.Stride:]
		for i, b := range row {
			for bit := 0; bit < 8; bit++ {
				if b&(0x80>>bit) != 0 {
					pix[i*8+bit] = 0xFF
				}
			}
		}
	}
	return img
}
