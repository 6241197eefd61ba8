package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"io"
	"os"
	"strings"

	"vidout/video/fonts"

	"golang.org/x/image/font/basicfont"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

func main() {
	var (
		outPath = flag.String("out", "", "Output Go file (default stdout).")
		pkg     = flag.String("pkg", "fonts", "Package name of the generated file.")
		name    = flag.String("var", "Font8x16", "Variable name of the generated table.")
		src     = flag.String("src", "basic", "basic|proggy.")
		height  = flag.Int("height", fonts.DefaultHeight, "Glyph height in rows.")
		first   = flag.Int("first", 0x20, "First character.")
		last    = flag.Int("last", 0xFF, "Last character.")
		preview = flag.String("preview", "", "Print these characters as text art instead of generating code.")
	)
	flag.Parse()

	if *first < 0 || *last > 0xFF || *first > *last {
		fatalf("character range %#x..%#x out of order or outside 0..0xff", *first, *last)
	}

	f, err := build(*src, *height, byte(*first), byte(*last))
	if err != nil {
		fatalf("%s: %v", *src, err)
	}

	if *preview != "" {
		printPreview(os.Stdout, f, *preview)
		return
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fatalf("create: %v", err)
		}
		defer file.Close()
		out = file
	}
	if err := writeGo(out, *pkg, *name, *src, f); err != nil {
		fatalf("write: %v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

func build(src string, height int, first, last byte) (*fonts.Raster, error) {
	switch strings.ToLower(src) {
	case "basic":
		return fonts.FromFace(basicfont.Face7x13, height, first, last)
	case "proggy":
		var f tinyfont.Fonter = &proggy.TinySZ8pt7b
		return fonts.FromFonter(f, height, first, last)
	default:
		return nil, fmt.Errorf("unknown font source")
	}
}

// writeGo emits a gofmt'ed source file declaring the table as a
// *fonts.Raster.
func writeGo(w io.Writer, pkg, name, src string, f *fonts.Raster) error {
	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by mkfont -src %s; DO NOT EDIT.\n\n", src)
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	if pkg != "fonts" {
		b.WriteString("import \"vidout/video/fonts\"\n\n")
	}
	prefix := "fonts."
	if pkg == "fonts" {
		prefix = ""
	}
	fmt.Fprintf(&b, "var %s = &%sRaster{\n", name, prefix)
	fmt.Fprintf(&b, "Height: %d,\nFirst: %#02x,\nLast: %#02x,\n", f.Height, f.First, f.Last)
	b.WriteString("Data: []byte{\n")
	for i := 0; i < f.Glyphs(); i++ {
		ch := f.First + byte(i)
		for j, row := range f.Glyph(ch) {
			if j > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%#02x,", row)
		}
		fmt.Fprintf(&b, " // %s\n", label(ch))
	}
	b.WriteString("},\n}\n")

	out, err := format.Source(b.Bytes())
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func label(ch byte) string {
	if ch >= 0x21 && ch < 0x7F {
		return fmt.Sprintf("%#02x %c", ch, ch)
	}
	return fmt.Sprintf("%#02x", ch)
}

func printPreview(w io.Writer, f *fonts.Raster, s string) {
	for row := 0; row < f.Height; row++ {
		var line strings.Builder
		for i := 0; i < len(s); i++ {
			bits := f.Row(s[i], row)
			for x := 0; x < fonts.Width; x++ {
				if bits&(0x80>>x) != 0 {
					line.WriteByte('#')
				} else {
					line.WriteByte('.')
				}
			}
		}
		fmt.Fprintln(w, line.String())
	}
}
