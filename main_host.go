//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"vidout/app"
	"vidout/hal"
	"vidout/video/timing"
)

func main() {
	var cfg hal.HeadlessConfig
	var headless, hires, demo bool
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 0, "Frame rate (0 = the video mode's own rate).")
	flag.Uint64Var(&cfg.Frames, "frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.BoolVar(&hires, "hires", false, "100 columns instead of 50.")
	flag.StringVar(&cfg.Host.TraceDevice, "trace", "", "Serial port to mirror output words to.")
	flag.IntVar(&cfg.Host.TraceBaud, "baud", hal.DefaultTraceBaud, "Trace port baud rate.")
	flag.BoolVar(&cfg.ANSI, "ansi", false, "Draw frames on the terminal in headless mode.")
	flag.BoolVar(&demo, "demo", true, "Show the demo screen instead of the banner.")
	flag.Parse()

	geo := timing.LowRes
	if hires {
		geo = timing.HighRes
	}
	if cfg.Hz <= 0 {
		if d := geo.FrameDuration(); d > 0 {
			cfg.Hz = int((1e9 + d/2) / d)
		}
	}
	acfg := app.Config{Geometry: geo, Demo: demo}

	if headless {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, func(h hal.HAL) func() error {
			return app.NewWithConfig(h, acfg)
		}, cfg); err != nil {
			if err == context.Canceled {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(func(h hal.HAL) func() error {
		return app.NewWithConfig(h, acfg)
	}, hal.WindowConfig{Host: cfg.Host, Hz: cfg.Hz, Width: 800, Height: 600}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
