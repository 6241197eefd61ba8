//go:build !tinygo && !cgo

package hal

import "errors"

// WindowConfig controls the desktop preview.
type WindowConfig struct {
	Host          HostConfig
	Hz            int
	Width, Height int
}

func RunWindow(_ func(h HAL) func() error, _ WindowConfig) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
