package app

import (
	"fmt"

	"vidout/internal/buildinfo"
	"vidout/video/display"
	"vidout/video/timing"
)

// drawBanner shows the build and video mode on an otherwise blank screen.
func drawBanner(fb *display.Framebuffer, geo timing.Geometry) {
	fb.Clear(' ')
	fb.MoveCursor(1, 1)
	fmt.Fprintf(fb, "vidout %s", buildinfo.Short())
	fb.MoveCursor(1, 3)
	fmt.Fprintf(fb, "%dx%d text, %dx%d pixels", geo.Columns, geo.Rows, geo.Width(), geo.Height())
	fb.MoveCursor(1, 4)
	fmt.Fprintf(fb, "line %d ns, frame %v", geo.LineDuration().Nanoseconds(), geo.FrameDuration())
}
