package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetromino/internal/games/tetromino/engine"
)

func TestFormatRotations(t *testing.T) {
	want := strings.Join([]string{
		".....   .....",
		".....   ..O..",
		"..OO.   ..OO.",
		".OO..   ...O.",
		".....   .....",
	}, "\n")
	if got := formatRotations(engine.ShapeS); got != want {
		t.Errorf("formatRotations(S) =\n%s\nwant\n%s", got, want)
	}

	for _, s := range engine.AllShapes() {
		lines := strings.Split(formatRotations(s), "\n")
		if len(lines) != engine.TemplateSize {
			t.Errorf("%s: %d lines, want %d", s, len(lines), engine.TemplateSize)
		}
		wantW := s.Rotations()*engine.TemplateSize + (s.Rotations()-1)*3
		if len(lines[0]) != wantW {
			t.Errorf("%s: width %d, want %d", s, len(lines[0]), wantW)
		}
	}
}
