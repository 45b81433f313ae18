package tetromino

import (
	"strings"

	"github.com/vovakirdan/tui-tetromino/internal/games/tetromino/engine"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Score    int
	Level    int
	FallFreq float64
	Phase    string
	Paused   bool

	Falling    bool
	Shape      engine.Shape
	Rotation   int
	X, Y       int
	NextShape  engine.Shape
	NextRotate int

	// Board is the settled grid, one line per row: '.' for empty, the color
	// index digit otherwise.
	Board string
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	snap := Snapshot{
		Tick:       g.tick,
		Score:      s.Score(),
		Level:      s.Level(),
		FallFreq:   s.FallFreq(),
		Phase:      s.Phase().String(),
		Paused:     s.Paused(),
		NextShape:  s.Next().Shape,
		NextRotate: s.Next().Rotation,
		Board:      boardString(s.Board()),
	}
	if p, ok := s.Falling(); ok {
		snap.Falling = true
		snap.Shape = p.Shape
		snap.Rotation = p.Rotation
		snap.X = p.X
		snap.Y = p.Y
	}
	return snap
}

func boardString(b *engine.Board) string {
	var sb strings.Builder
	sb.Grow((b.Width() + 1) * b.Height())
	for y := range b.Height() {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range b.Width() {
			c := b.At(x, y)
			if c.IsEmpty() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(byte('0' + c%10))
			}
		}
	}
	return sb.String()
}
