//go:build !tinygo && cgo

package hal

import (
	"image"

	"vidout/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop preview.
type WindowConfig struct {
	Host HostConfig
	// Hz is the step rate; one step is one video frame.
	Hz int
	// Width and Height size the window before the first frame arrives.
	Width, Height int
}

// RunWindow starts a desktop window that shows the captured video frames.
// It blocks until the window closes.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	hh, err := New(cfg.Host)
	if err != nil {
		return err
	}
	h := hh.(*hostHAL)
	defer h.Close()
	step := newApp(h)

	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}

	g := &hostGame{h: h, step: step, w: cfg.Width, h0: cfg.Height}
	ebiten.SetWindowTitle("vidout (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Hz)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	w, h0 int
	rgba  []byte
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	src := g.h.video.Snapshot()
	if src == nil {
		return
	}
	b := src.Bounds()
	if g.fbImg == nil || g.fbImg.Bounds() != b {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(b.Dx(), b.Dy())
		g.rgba = make([]byte, b.Dx()*b.Dy()*4)
	}

	grayToRGBA(g.rgba, src)
	g.fbImg.WritePixels(g.rgba)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(b.Dx()), float64(sh)/float64(b.Dy()))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(g.fbImg, op)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.w, g.h0
}

// grayToRGBA paints lit pixels green on black, like a monochrome monitor.
func grayToRGBA(dst []byte, src *image.Gray) {
	for i, y := range src.Pix {
		j := i * 4
		dst[j+0] = 0
		dst[j+1] = y
		dst[j+2] = 0
		dst[j+3] = 0xFF
	}
}
