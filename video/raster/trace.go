package raster

// Trace channels. Data carries every rasterized word; Command carries frame
// framing words such as OpenScreen.
const (
	TraceData    uint8 = 1
	TraceCommand uint8 = 2
)

// Tracer mirrors output to an external monitor. Emit must not block and may
// drop words; a missing tracer changes nothing about the output.
type Tracer interface {
	Emit(channel uint8, word uint32)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(channel uint8, word uint32)

func (f TracerFunc) Emit(channel uint8, word uint32) { f(channel, word) }

// Command opcodes in the top nibble of a TraceCommand word.
const (
	CmdOpenScreen = 0x1
)

// OpenScreen encodes the command sent at the start of every frame so a
// monitor that joins late can size its canvas: width and height in pixels
// (13 bits each) and the colour depth in bits (2 bits, 1..4).
func OpenScreen(width, height, depth int) uint32 {
	return uint32(CmdOpenScreen)<<28 |
		uint32((depth-1)&0x3)<<26 |
		uint32(width&0x1FFF)<<13 |
		uint32(height&0x1FFF)
}

// DecodeOpenScreen reverses OpenScreen. ok is false for other commands.
func DecodeOpenScreen(word uint32) (width, height, depth int, ok bool) {
	if word>>28 != CmdOpenScreen {
		return 0, 0, 0, false
	}
	depth = int(word>>26&0x3) + 1
	width = int(word >> 13 & 0x1FFF)
	height = int(word & 0x1FFF)
	return width, height, depth, true
}
