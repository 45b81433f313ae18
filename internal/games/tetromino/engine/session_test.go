package engine

import (
	"math"
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

// newTestSession returns a session whose falling piece is replaced by p.
func newTestSession(p Piece) *Session {
	s := NewSession(DefaultConfig(), 42, t0)
	s.falling = &p
	return s
}

func TestNewSession(t *testing.T) {
	s := NewSession(DefaultConfig(), 1, t0)

	if _, ok := s.Falling(); !ok {
		t.Fatal("new session should have a falling piece")
	}
	if s.Phase() != PhaseSpawned {
		t.Errorf("Phase() = %v, want spawned", s.Phase())
	}
	if s.Score() != 0 || s.Level() != 1 {
		t.Errorf("score/level = %d/%d, want 0/1", s.Score(), s.Level())
	}
	if math.Abs(s.FallFreq()-0.25) > 1e-9 {
		t.Errorf("FallFreq() = %f, want 0.25", s.FallFreq())
	}
	if !sameBoard(s.Board(), BlankBoard(10, 20)) {
		t.Error("new session board should be blank")
	}
}

func TestSessionFallTimer(t *testing.T) {
	s := newTestSession(Piece{Shape: ShapeO, X: 3, Y: 0})

	s.Step(at(100), Intents{})
	if p, _ := s.Falling(); p.Y != 0 {
		t.Errorf("piece fell before the fall interval: Y = %d", p.Y)
	}
	if s.Phase() != PhaseFalling {
		t.Errorf("Phase() = %v, want falling", s.Phase())
	}

	s.Step(at(300), Intents{})
	if p, _ := s.Falling(); p.Y != 1 {
		t.Errorf("Y = %d after one interval, want 1", p.Y)
	}

	// Timer restarts from the last fall.
	s.Step(at(500), Intents{})
	if p, _ := s.Falling(); p.Y != 1 {
		t.Errorf("Y = %d before the next interval, want 1", p.Y)
	}
	s.Step(at(600), Intents{})
	if p, _ := s.Falling(); p.Y != 2 {
		t.Errorf("Y = %d after two intervals, want 2", p.Y)
	}
}

func TestSessionLandAndSpawn(t *testing.T) {
	s := newTestSession(Piece{Shape: ShapeO, X: 3, Y: 16, Color: 3})
	next := s.Next()

	res := s.Step(at(300), Intents{})
	if !res.Landed {
		t.Fatal("piece on the floor should land when the fall timer fires")
	}
	if _, ok := s.Falling(); ok {
		t.Error("no piece should be falling after landing")
	}
	if s.Phase() != PhaseLanded {
		t.Errorf("Phase() = %v, want landed", s.Phase())
	}
	if s.Board().At(4, 19) != 3 || s.Board().At(5, 18) != 3 {
		t.Error("landed piece not merged into the board")
	}

	res = s.Step(at(310), Intents{})
	if !res.Spawned {
		t.Fatal("next step should spawn a piece")
	}
	p, ok := s.Falling()
	if !ok || p != next {
		t.Errorf("falling piece = %+v, want the queued %+v", p, next)
	}
	if s.Phase() != PhaseSpawned {
		t.Errorf("Phase() = %v, want spawned", s.Phase())
	}
}

func TestSessionLineClearScores(t *testing.T) {
	// Horizontal I covers template row 2, columns 0-3.
	s := newTestSession(Piece{Shape: ShapeI, Rotation: 1, X: 3, Y: 17})
	b := s.Board()
	for x := range b.Width() {
		if x < 3 || x > 6 {
			b.Set(x, 19, 0)
			b.Set(x, 18, 1)
		}
	}

	res := s.Step(at(300), Intents{})
	if !res.Landed || res.LinesCleared != 1 {
		t.Fatalf("result = %+v, want landed with one line", res)
	}
	if s.Score() != 1 {
		t.Errorf("Score() = %d, want 1", s.Score())
	}
	// Row 18 dropped into row 19.
	if b.At(0, 19) != 1 || !b.At(3, 19).IsEmpty() {
		t.Error("row above the cleared line should have shifted down")
	}
}

func TestSessionLevelUp(t *testing.T) {
	s := newTestSession(Piece{Shape: ShapeI, Rotation: 1, X: 3, Y: 17})
	s.score = 9
	b := s.Board()
	for x := range b.Width() {
		if x < 3 || x > 6 {
			b.Set(x, 19, 0)
		}
	}

	s.Step(at(300), Intents{})
	if s.Level() != 2 {
		t.Errorf("Level() = %d, want 2", s.Level())
	}
	if math.Abs(s.FallFreq()-0.23) > 1e-9 {
		t.Errorf("FallFreq() = %f, want 0.23", s.FallFreq())
	}
}

func TestSessionRotateRollback(t *testing.T) {
	// Horizontal I at row 7, columns 3-6. Vertical would cover column 5, rows 5-8.
	s := newTestSession(Piece{Shape: ShapeI, Rotation: 1, X: 3, Y: 5})
	s.Board().Set(5, 8, 2)

	if s.Rotate(1) {
		t.Error("rotation into a block should fail")
	}
	if p, _ := s.Falling(); p.Rotation != 1 {
		t.Errorf("Rotation = %d after rollback, want 1", p.Rotation)
	}

	s.Step(at(10), Intents{RotateCCW: 1})
	if p, _ := s.Falling(); p.Rotation != 1 {
		t.Errorf("Rotation = %d after counter-clockwise rollback, want 1", p.Rotation)
	}

	s.Board().Set(5, 8, Empty)
	if !s.Rotate(1) {
		t.Error("rotation into free space should succeed")
	}
	if p, _ := s.Falling(); p.Rotation != 0 {
		t.Errorf("Rotation = %d, want 0 after wrapping", p.Rotation)
	}
}

func TestSessionRotateAgainstWall(t *testing.T) {
	// Vertical I at column 0 cannot turn horizontal (needs column -2).
	s := newTestSession(Piece{Shape: ShapeI, Rotation: 0, X: -2, Y: 5})
	if s.Rotate(1) {
		t.Error("rotation through the wall should fail without kicks")
	}
	if p, _ := s.Falling(); p.X != -2 || p.Rotation != 0 {
		t.Errorf("piece moved to %+v, want unchanged", p)
	}
}

func TestSessionSidewaysRepeat(t *testing.T) {
	s := newTestSession(Piece{Shape: ShapeO, X: 3, Y: 5})

	s.Step(at(0), Intents{Left: 1})
	if p, _ := s.Falling(); p.X != 2 {
		t.Fatalf("X = %d after left press, want 2", p.X)
	}

	s.Step(at(100), Intents{})
	if p, _ := s.Falling(); p.X != 2 {
		t.Errorf("X = %d before repeat interval, want 2", p.X)
	}

	s.Step(at(200), Intents{})
	if p, _ := s.Falling(); p.X != 1 {
		t.Errorf("X = %d after repeat interval, want 1", p.X)
	}

	s.Step(at(210), Intents{ReleaseLeft: true})
	s.Step(at(500), Intents{})
	if p, _ := s.Falling(); p.X != 1 {
		t.Errorf("X = %d after release, want 1", p.X)
	}
}

func TestSessionSidewaysBlockedByWall(t *testing.T) {
	s := newTestSession(Piece{Shape: ShapeO, X: 7, Y: 5})
	s.Step(at(0), Intents{Right: 1})
	if p, _ := s.Falling(); p.X != 7 {
		t.Errorf("X = %d, want 7 against the right wall", p.X)
	}
}

func TestSessionRepeatedTapsInOneFrame(t *testing.T) {
	tests := []struct {
		name    string
		in      Intents
		wantX   int
		wantRot int
	}{
		{"two rotations", Intents{RotateCW: 2}, 3, 2},
		{"rotate both ways", Intents{RotateCW: 1, RotateCCW: 1}, 3, 0},
		{"two lefts", Intents{Left: 2}, 1, 0},
		{"left then right", Intents{Left: 1, Right: 1}, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(Piece{Shape: ShapeT, X: 3, Y: 5})
			s.Step(at(10), tt.in)
			p, _ := s.Falling()
			if p.X != tt.wantX || p.Rotation != tt.wantRot {
				t.Errorf("piece at x=%d rot=%d, want x=%d rot=%d", p.X, p.Rotation, tt.wantX, tt.wantRot)
			}
		})
	}
}

func TestSessionLeftThenRightHoldsRight(t *testing.T) {
	s := newTestSession(Piece{Shape: ShapeO, X: 3, Y: 5})
	s.Step(at(10), Intents{Left: 1, Right: 1})
	s.Step(at(200), Intents{})
	if p, _ := s.Falling(); p.X != 4 {
		t.Errorf("X = %d after repeat, want 4 (right held)", p.X)
	}
}

func TestSessionDoublePauseInOneFrame(t *testing.T) {
	s := newTestSession(Piece{Shape: ShapeO, X: 3, Y: 0})
	s.Step(at(10), Intents{Pause: 2})
	if s.Paused() {
		t.Error("two pause presses should cancel out")
	}
}

func TestIntentsMerge(t *testing.T) {
	a := Intents{Left: 1, RotateCW: 1, ReleaseDown: true}
	b := Intents{Left: 1, HardDrop: 1, ReleaseRight: true}
	want := Intents{Left: 2, RotateCW: 1, HardDrop: 1, ReleaseDown: true, ReleaseRight: true}
	if got := a.Merge(b); got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
	if !(Intents{}).Empty() || want.Empty() {
		t.Error("Empty reports wrong result")
	}
}

func TestSessionSoftDrop(t *testing.T) {
	s := newTestSession(Piece{Shape: ShapeO, X: 3, Y: 5})

	s.Step(at(0), Intents{SoftDrop: 1})
	if p, _ := s.Falling(); p.Y != 6 {
		t.Fatalf("Y = %d after soft drop, want 6", p.Y)
	}
	s.Step(at(150), Intents{})
	if p, _ := s.Falling(); p.Y != 7 {
		t.Errorf("Y = %d after held soft drop, want 7", p.Y)
	}
	s.Step(at(160), Intents{ReleaseDown: true})
	s.Step(at(240), Intents{})
	if p, _ := s.Falling(); p.Y != 7 {
		t.Errorf("Y = %d after release, want 7", p.Y)
	}
}

func TestSessionHardDrop(t *testing.T) {
	s := newTestSession(Piece{Shape: ShapeO, X: 3, Y: SpawnRow})
	if d := s.DropDistance(); d != 18 {
		t.Errorf("DropDistance() = %d, want 18", d)
	}

	res := s.Step(at(10), Intents{HardDrop: 1})
	if res.Landed {
		t.Error("hard drop lands on the next fall tick, not immediately")
	}
	if p, _ := s.Falling(); p.Y != 16 {
		t.Errorf("Y = %d after hard drop, want 16", p.Y)
	}

	res = s.Step(at(300), Intents{})
	if !res.Landed {
		t.Error("piece should land on the fall tick after a hard drop")
	}
}

func TestSessionPause(t *testing.T) {
	s := newTestSession(Piece{Shape: ShapeO, X: 3, Y: 0})

	s.Step(at(0), Intents{Pause: 1})
	if !s.Paused() {
		t.Fatal("Pause intent should pause the session")
	}
	s.Step(at(10000), Intents{Left: 1, HardDrop: 1})
	if p, _ := s.Falling(); p.X != 3 || p.Y != 0 {
		t.Errorf("piece moved while paused: %+v", p)
	}

	s.Step(at(10000), Intents{Pause: 1})
	if s.Paused() {
		t.Fatal("second Pause intent should resume")
	}
	s.Step(at(10100), Intents{})
	if p, _ := s.Falling(); p.Y != 0 {
		t.Errorf("fall timer should restart on resume, Y = %d", p.Y)
	}
	s.Step(at(10300), Intents{})
	if p, _ := s.Falling(); p.Y != 1 {
		t.Errorf("Y = %d one interval after resume, want 1", p.Y)
	}
}

func TestSessionGameOver(t *testing.T) {
	s := newTestSession(Piece{Shape: ShapeO, X: 3, Y: 16})
	for y := range 4 {
		fillRow(s.Board(), y, 1, 0)
	}

	res := s.Step(at(300), Intents{})
	if !res.Landed {
		t.Fatal("expected the piece to land")
	}
	res = s.Step(at(310), Intents{})
	if !res.Spawned || !res.GameOver {
		t.Fatalf("result = %+v, want spawn into game over", res)
	}
	if !s.GameOver() || s.Phase() != PhaseGameOver {
		t.Error("session should report game over")
	}

	res = s.Step(at(1000), Intents{Left: 1})
	if res != (StepResult{}) {
		t.Errorf("step after game over = %+v, want no-op", res)
	}
}

func TestSessionDeterminism(t *testing.T) {
	a := NewSession(DefaultConfig(), 99, t0)
	b := NewSession(DefaultConfig(), 99, t0)

	for i := range 2000 {
		in := Intents{}
		switch i % 37 {
		case 3:
			in.Left = 1
		case 11:
			in.RotateCW = 1
		case 19:
			in.Right = 1
		case 29:
			in.HardDrop = 1
		}
		ra := a.Step(at(i*20), in)
		rb := b.Step(at(i*20), in)
		if ra != rb {
			t.Fatalf("step %d: results differ: %+v vs %+v", i, ra, rb)
		}
	}

	pa, oka := a.Falling()
	pb, okb := b.Falling()
	if pa != pb || oka != okb || a.Next() != b.Next() {
		t.Error("pieces differ between identical sessions")
	}
	if !sameBoard(a.Board(), b.Board()) || a.Score() != b.Score() {
		t.Error("boards differ between identical sessions")
	}
}

func TestSessionProgressionConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       func(c *Config)
		score     int
		wantLevel int
		wantFreq  float64
	}{
		{"default", func(c *Config) {}, 25, 3, 0.21},
		{"start level", func(c *Config) { c.StartLevel = 3 }, 0, 3, 0.21},
		{"start level plus score", func(c *Config) { c.StartLevel = 3 }, 10, 4, 0.19},
		{"fixed", func(c *Config) { c.Progression = false }, 50, 1, 0.25},
		{"unclamped", func(c *Config) { c.StartLevel = 20 }, 0, 20, -0.13},
		{"clamped", func(c *Config) { c.StartLevel = 20; c.MinFallFreq = 50 * time.Millisecond }, 0, 20, 0.05},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.cfg(&cfg)
			s := NewSession(cfg, 1, t0)
			s.score = tc.score
			s.updateLevel()
			if s.Level() != tc.wantLevel {
				t.Errorf("Level() = %d, want %d", s.Level(), tc.wantLevel)
			}
			if math.Abs(s.FallFreq()-tc.wantFreq) > 1e-9 {
				t.Errorf("FallFreq() = %f, want %f", s.FallFreq(), tc.wantFreq)
			}
		})
	}
}
