//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

// Pins (Raspberry Pi Pico):
//
//	GP16 = VSYNC
//	GP17 = HSYNC (PWM0 B)
//	GP18 = SPI0 SCK (unused by the monitor)
//	GP19 = SPI0 SDO, the video signal
//	LED  = busy indicator
const (
	pinVSync = machine.GP16
	pinHSync = machine.GP17
	pinSCK   = machine.GP18
	pinSDO   = machine.GP19
)

// BoardConfig carries the line timing the peripherals are set up for.
type BoardConfig struct {
	PixelHz    uint32
	LinePeriod time.Duration
	HSyncWidth time.Duration
	// Trace mirrors output words over UART0 when set.
	Trace bool
}

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	video  *spiVideo
	tracer *StreamTracer
}

// New returns a Pico HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New(cfg BoardConfig) HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	h := &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    &pinLED{pin: ledPin},
		video:  newSPIVideo(cfg),
	}
	if cfg.Trace {
		h.tracer = NewStreamTracer(&uartSerial{uart: uart}, 0)
	}
	return h
}

func (h *tinyGoHAL) Logger() Logger { return h.logger }
func (h *tinyGoHAL) LED() LED       { return h.led }
func (h *tinyGoHAL) Video() Video   { return h.video }

func (h *tinyGoHAL) Tracer() Tracer {
	if h.tracer == nil {
		return nil
	}
	return h.tracer
}

// spiVideo shifts lines out of SPI0 and drives the sync pins. HSYNC is a
// free-running PWM at the line rate.
type spiVideo struct {
	spi        *machine.SPI
	vsync      machine.Pin
	onConsumed func()
}

func newSPIVideo(cfg BoardConfig) *spiVideo {
	pinVSync.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pinVSync.Low()

	spi := machine.SPI0
	spi.Configure(machine.SPIConfig{
		Frequency: cfg.PixelHz,
		SCK:       pinSCK,
		SDO:       pinSDO,
		SDI:       machine.NoPin,
		Mode:      0,
	})

	pwm := machine.PWM0
	if err := pwm.Configure(machine.PWMConfig{Period: uint64(cfg.LinePeriod.Nanoseconds())}); err == nil {
		if ch, err := pwm.Channel(pinHSync); err == nil {
			pwm.Set(ch, uint32(uint64(pwm.Top())*uint64(cfg.HSyncWidth)/uint64(cfg.LinePeriod)))
		}
	}

	return &spiVideo{spi: spi, vsync: pinVSync}
}

func (v *spiVideo) OnConsumed(fn func()) { v.onConsumed = fn }

func (v *spiVideo) ArmLine(line []byte, notify bool) {
	v.spi.Tx(line, nil)
	if notify && v.onConsumed != nil {
		v.onConsumed()
	}
}

func (v *spiVideo) SyncHigh() { v.vsync.High() }
func (v *spiVideo) SyncLow()  { v.vsync.Low() }
