package app

import (
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"
)

// showPanic logs v with the stack and replaces the screen with a report. The
// bitmap plane is detached so the text is readable.
func (s *System) showPanic(v any) {
	s.panicked = true

	lines := []string{
		"vidout panic:",
		fmt.Sprintf("frame: %d", s.frame),
		fmt.Sprintf("panic: %v", v),
	}
	if stack := debug.Stack(); len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if l := s.h.Logger(); l != nil {
		for _, line := range lines {
			l.WriteLineString(line)
		}
	}

	fb := s.fb
	fb.DetachBitmap()
	fb.Clear(' ')
	cols, rows := fb.Columns(), fb.Rows()
	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y >= rows {
				return
			}
			chunk, rest := takeRunes(line, cols)
			fb.MoveCursor(0, y)
			fb.WriteString(chunk)
			y++
			line = strings.TrimLeft(rest, " ")
		}
	}
}

// Panicked reports whether a panic has replaced the screen.
func (s *System) Panicked() bool { return s.panicked }

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
