package app

import (
	"context"
	"time"
)

func (s *System) animateLoop(ctx context.Context) {
	t := time.NewTicker(s.geo.FrameDuration())
	defer t.Stop()
	var frame uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			frame++
			s.safeAnimate(frame)
		}
	}
}

func (s *System) safeAnimate(frame uint64) {
	defer func() {
		if r := recover(); r != nil {
			s.showPanic(r)
		}
	}()
	if !s.panicked {
		s.animate(frame)
	}
}
