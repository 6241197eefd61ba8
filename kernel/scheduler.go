package kernel

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"
)

// LineScheduler runs two handlers at two priority levels.
//
// The high handler runs once per line period. The low handler runs only
// after Raise, and always after the high handler of the same period has
// returned, so the high handler always wins.
type LineScheduler struct {
	high func()
	low  func()

	pending  atomic.Uint32
	ticks    atomic.Uint64
	lowRuns  atomic.Uint64
	overruns atomic.Uint64
}

// NewLineScheduler creates a scheduler for the given handlers.
func NewLineScheduler(high, low func()) *LineScheduler {
	return &LineScheduler{high: high, low: low}
}

// Raise requests one run of the low handler. Raising again before that run
// happened is an overrun: the two requests collapse into one.
func (s *LineScheduler) Raise() {
	if s.pending.Swap(1) != 0 {
		s.overruns.Add(1)
	}
}

// Step runs one line period.
func (s *LineScheduler) Step() {
	s.high()
	s.ticks.Add(1)
	if s.pending.Swap(0) != 0 {
		s.low()
		s.lowRuns.Add(1)
	}
}

// Run steps the scheduler until ctx is done. A host cannot wake once per
// line period, so it wakes every period*batch and catches up batch lines.
func (s *LineScheduler) Run(ctx context.Context, period time.Duration, batch int) error {
	if batch < 1 {
		batch = 1
	}
	if period <= 0 {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := 0; i < batch; i++ {
				s.Step()
			}
			runtime.Gosched()
		}
	}

	t := time.NewTicker(period * time.Duration(batch))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			for i := 0; i < batch; i++ {
				s.Step()
			}
		}
	}
}

// Ticks returns the number of line periods run.
func (s *LineScheduler) Ticks() uint64 {
	return s.ticks.Load()
}

// LowRuns returns the number of low handler runs.
func (s *LineScheduler) LowRuns() uint64 {
	return s.lowRuns.Load()
}

// Overruns returns the number of collapsed Raise calls.
func (s *LineScheduler) Overruns() uint64 {
	return s.overruns.Load()
}
