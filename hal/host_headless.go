//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"os"
	"time"

	"vidout/internal/termview"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host HostConfig
	// Hz is the step rate; one step is one video frame.
	Hz int
	// Frames stops the runner after that many steps; 0 runs until ctx ends.
	Frames uint64
	// ANSI redraws the captured frame on the terminal every ANSIEvery steps.
	ANSI      bool
	ANSIEvery int
}

// RunHeadless runs the video pipeline without opening a window.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.ANSIEvery <= 0 {
		cfg.ANSIEvery = 15
	}

	hh, err := New(cfg.Host)
	if err != nil {
		return err
	}
	h := hh.(*hostHAL)
	defer h.Close()
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	cols, rows := termview.Size(os.Stdout)
	if cfg.ANSI {
		termview.Clear(os.Stdout)
	}

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.ANSI && tick%uint64(cfg.ANSIEvery) == 0 {
				if img := h.video.Snapshot(); img != nil {
					termview.Render(os.Stdout, img, cols, rows-1, true)
				}
			}
			if cfg.Frames > 0 && tick >= cfg.Frames {
				h.logger.WriteLineString(fmt.Sprintf("headless: %d steps, %d frames captured, %d busy periods",
					tick, h.video.Frames(), h.led.highs.Load()))
				return nil
			}
		}
	}
}
