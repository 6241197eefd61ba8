package app

import (
	"context"
	"fmt"

	"vidout/hal"
	"vidout/internal/buildinfo"
	"vidout/kernel"
	"vidout/video/display"
	"vidout/video/fonts"
	"vidout/video/timing"
)

// Config selects the video mode and the content shown.
type Config struct {
	Geometry timing.Geometry
	// Font defaults to the built-in 8x16 table.
	Font *fonts.Raster
	// Demo draws the sample screen and animates it; otherwise a banner.
	Demo bool
}

// System is one running video output.
type System struct {
	h     hal.HAL
	geo   timing.Geometry
	fb    *display.Framebuffer
	ctl   *timing.Controller
	sched *kernel.LineScheduler

	animate   func(frame uint64)
	frame     uint64
	overruns  uint64
	panicked  bool
}

// NewSystem wires the framebuffer, controller and scheduler to h.
func NewSystem(h hal.HAL, cfg Config) (*System, error) {
	geo := cfg.Geometry
	if geo.Columns == 0 {
		geo = timing.LowRes
	}
	f := cfg.Font
	if f == nil {
		f = fonts.Default()
	}
	fb, err := display.Make(geo.Columns, geo.Rows, ' ')
	if err != nil {
		return nil, fmt.Errorf("app: framebuffer: %w", err)
	}
	ctl, err := timing.New(geo, fb, f, h.Video())
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	if led := h.LED(); led != nil {
		ctl.SetBusy(led)
	}
	if tr := h.Tracer(); tr != nil {
		ctl.SetTracer(tr)
	}

	s := &System{
		h:     h,
		geo:   geo,
		fb:    fb,
		ctl:   ctl,
		sched: kernel.NewLineScheduler(ctl.Tick, ctl.Prepare),
	}
	h.Video().OnConsumed(s.sched.Raise)

	if cfg.Demo {
		d, err := newDemo(fb)
		if err != nil {
			return nil, err
		}
		s.animate = d.step
	} else {
		drawBanner(fb, geo)
	}

	if l := h.Logger(); l != nil {
		l.WriteLineString("vidout " + buildinfo.String())
		l.WriteLineString("video: " + geo.String())
	}
	return s, nil
}

// Framebuffer returns the screen content.
func (s *System) Framebuffer() *display.Framebuffer { return s.fb }

// Controller returns the line state machine.
func (s *System) Controller() *timing.Controller { return s.ctl }

// Scheduler returns the line scheduler.
func (s *System) Scheduler() *kernel.LineScheduler { return s.sched }

// Step runs one whole frame of line periods, then advances the animation.
// A panic paints the panic screen and stops the animation; the video keeps
// running.
func (s *System) Step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.showPanic(r)
		}
	}()

	for i := 0; i <= s.geo.FrameEnd; i++ {
		s.sched.Step()
	}
	s.frame++
	s.checkOverruns()

	if s.animate != nil && !s.panicked {
		s.animate(s.frame)
	}
	return nil
}

// Run drives the scheduler in real time until ctx ends. The animation runs
// in its own goroutine at the frame rate, mutating the framebuffer while
// lines are rasterized.
func (s *System) Run(ctx context.Context) error {
	if s.animate != nil {
		go s.animateLoop(ctx)
	}
	return s.sched.Run(ctx, s.geo.LineDuration(), 1)
}

func (s *System) checkOverruns() {
	n := s.sched.Overruns()
	if n == s.overruns {
		return
	}
	if l := s.h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("video: %d prepare overruns by frame %d", n-s.overruns, s.frame))
	}
	s.overruns = n
}

// NewWithConfig builds a system and returns its per-frame step for the host
// runners.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s, err := NewSystem(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return s.Step
}

// Run starts the system and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL, cfg Config) {
	s, err := NewSystem(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString(err.Error())
		}
		select {}
	}
	s.Run(context.Background())
}
