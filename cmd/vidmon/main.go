package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"

	"vidout/hal"
	"vidout/internal/termview"
	"vidout/video/raster"

	"go.bug.st/serial"
)

func main() {
	var (
		port  = flag.String("port", "", "Serial port carrying the trace stream.")
		baud  = flag.Int("baud", hal.DefaultTraceBaud, "Serial baud rate.")
		in    = flag.String("in", "", "Read a captured trace file instead of a port (- for stdin).")
		every = flag.Int("every", 1, "Draw every Nth frame.")
		list  = flag.Bool("list", false, "List serial ports and exit.")
	)
	flag.Parse()

	if *list {
		ports, err := serial.GetPortsList()
		if err != nil {
			fatalf("list ports: %v", err)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	r, err := open(*port, *baud, *in)
	if err != nil {
		fatalf("%v", err)
	}
	defer r.Close()

	if *every < 1 {
		*every = 1
	}
	cols, rows := termview.Size(os.Stdout)
	termview.Clear(os.Stdout)

	var a assembler
	frames := 0
	wr := raster.NewWireReader(r)
	for {
		ch, w, err := wr.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				if img := a.flush(); img != nil {
					termview.Render(os.Stdout, img, cols, rows-1, true)
				}
				return
			}
			fatalf("read: %v", err)
		}
		img := a.feed(ch, w)
		if img == nil {
			continue
		}
		frames++
		if frames%*every == 0 {
			termview.Render(os.Stdout, img, cols, rows-1, true)
			fmt.Printf("frame %d  %dx%d  skipped %d bytes\n", frames, img.Bounds().Dx(), img.Bounds().Dy(), wr.Skipped())
		}
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func open(port string, baud int, in string) (io.ReadCloser, error) {
	switch {
	case in == "-":
		return io.NopCloser(os.Stdin), nil
	case in != "":
		return os.Open(in)
	case port != "":
		p, err := serial.Open(port, &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		})
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", port, err)
		}
		return p, nil
	default:
		return nil, errors.New("usage: vidmon -port /dev/ttyUSB0 [-baud 921600] | vidmon -in trace.bin")
	}
}

// assembler rebuilds frames from the trace stream. An open-screen command
// starts a frame; data words fill it left to right, top to bottom. Words
// before the first command or past the bottom are ignored.
type assembler struct {
	img    *image.Gray
	words  int // words per line
	next   int // next word index
	opened bool
}

// feed consumes one trace word and returns the previous frame when a new
// one starts.
func (a *assembler) feed(ch uint8, w uint32) *image.Gray {
	if ch == raster.TraceCommand {
		width, height, _, ok := raster.DecodeOpenScreen(w)
		if !ok || width <= 0 || height <= 0 {
			return nil
		}
		done := a.flush()
		a.img = image.NewGray(image.Rect(0, 0, width, height))
		a.words = (width + 31) / 32
		a.next = 0
		a.opened = true
		return done
	}
	if !a.opened {
		return nil
	}
	y := a.next / a.words
	x := a.next % a.words * 32
	a.next++
	b := a.img.Bounds()
	if y >= b.Dy() {
		return nil
	}
	row := a.img.Pix[y*a.img.Stride:]
	for bit := 0; bit < 32 && x+bit < b.Dx(); bit++ {
		if w&(0x80000000>>bit) != 0 {
			row[x+bit] = 0xFF
		}
	}
	return nil
}

// flush returns the frame in progress, if it received any words.
func (a *assembler) flush() *image.Gray {
	if !a.opened || a.next == 0 {
		return nil
	}
	img := a.img
	a.opened = false
	a.next = 0
	return img
}
