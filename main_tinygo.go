//go:build tinygo && baremetal

package main

import (
	"vidout/app"
	"vidout/hal"
	"vidout/video/timing"
)

func main() {
	geo := timing.LowRes
	h := hal.New(hal.BoardConfig{
		PixelHz:    uint32(geo.PixelHz()),
		LinePeriod: geo.LineDuration(),
		HSyncWidth: geo.HSyncDuration(),
	})
	app.Run(h, app.Config{Geometry: geo, Demo: true})
}
