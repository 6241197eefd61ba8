//go:build !tinygo

package hal

import (
	"fmt"

	"go.bug.st/serial"
)

// DefaultTraceBaud is used when no baud rate is given.
const DefaultTraceBaud = 921600

// OpenSerialTracer streams trace frames to a serial port, 8N1.
func OpenSerialTracer(device string, baud int) (*StreamTracer, error) {
	if baud <= 0 {
		baud = DefaultTraceBaud
	}
	port, err := serial.Open(device, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	return NewStreamTracer(port, 0), nil
}
