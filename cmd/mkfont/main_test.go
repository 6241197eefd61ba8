package main

import (
	"bytes"
	"strings"
	"testing"

	"vidout/video/fonts"
)

func TestWriteGo(t *testing.T) {
	f, err := fonts.New(2, 'A', 'B', []byte{0x81, 0x42, 0x24, 0x18})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := writeGo(&buf, "glyphs", "Tiny", "basic", f); err != nil {
		t.Fatalf("writeGo(): %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"// Code generated by mkfont -src basic; DO NOT EDIT.",
		"package glyphs",
		`import "vidout/video/fonts"`,
		"var Tiny = &fonts.Raster{",
		"0x81, 0x42, // 0x41 A",
		"0x24, 0x18, // 0x42 B",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("writeGo() output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildSources(t *testing.T) {
	for _, src := range []string{"basic", "proggy"} {
		f, err := build(src, 16, 'A', 'Z')
		if err != nil {
			t.Fatalf("build(%q): %v", src, err)
		}
		if f.Glyphs() != 26 {
			t.Fatalf("build(%q) glyphs = %d, want 26", src, f.Glyphs())
		}
	}
	if _, err := build("nope", 16, 'A', 'Z'); err == nil {
		t.Fatal("build(\"nope\") err = nil, want error")
	}
}

func TestPrintPreview(t *testing.T) {
	f, _ := fonts.New(2, 'A', 'A', []byte{0x80, 0x01})
	var buf bytes.Buffer
	printPreview(&buf, f, "A")
	want := "#.......\n.......#\n"
	if got := buf.String(); got != want {
		t.Fatalf("printPreview() = %q, want %q", got, want)
	}
}
