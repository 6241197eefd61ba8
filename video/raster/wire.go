package raster

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Trace words travel over a byte stream as 6 byte frames: a marker, the
// channel, the word big-endian. A reader that starts mid-stream skips to
// the next marker.
const (
	WireMarker    = 0xA5
	WireFrameSize = 6
)

// AppendWire appends one trace frame to dst.
func AppendWire(dst []byte, channel uint8, word uint32) []byte {
	dst = append(dst, WireMarker, channel)
	return binary.BigEndian.AppendUint32(dst, word)
}

// WireReader decodes trace frames from a byte stream.
type WireReader struct {
	r       *bufio.Reader
	skipped int
}

// NewWireReader wraps r.
func NewWireReader(r io.Reader) *WireReader {
	return &WireReader{r: bufio.NewReader(r)}
}

// Next returns the next frame. Garbage before a marker is skipped and
// counted; a frame with an unknown channel is dropped whole.
func (d *WireReader) Next() (channel uint8, word uint32, err error) {
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return 0, 0, err
		}
		if b != WireMarker {
			d.skipped++
			continue
		}
		var buf [WireFrameSize - 1]byte
		if _, err := io.ReadFull(d.r, buf[:]); err != nil {
			return 0, 0, err
		}
		if buf[0] != TraceData && buf[0] != TraceCommand {
			d.skipped += WireFrameSize
			continue
		}
		return buf[0], binary.BigEndian.Uint32(buf[1:]), nil
	}
}

// Skipped returns the number of bytes discarded while resynchronising.
func (d *WireReader) Skipped() int { return d.skipped }
