package engine

import (
	"math/rand"
	"time"
)

// Phase is the lifecycle stage of the current falling piece.
type Phase int

const (
	PhaseSpawned  Phase = iota // piece just entered play
	PhaseFalling               // piece under player control
	PhaseLanded                // piece merged, waiting for the next one
	PhaseGameOver              // the next piece did not fit
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSpawned:
		return "spawned"
	case PhaseFalling:
		return "falling"
	case PhaseLanded:
		return "landed"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Config holds the tunables of a session.
type Config struct {
	Width  int
	Height int
	Colors int

	MoveSidewaysFreq time.Duration // repeat interval while left/right is held
	MoveDownFreq     time.Duration // repeat interval while soft drop is held
	MinFallFreq      time.Duration // lower bound for the fall interval; 0 disables it

	Progression bool // level follows the score
	StartLevel  int  // level at score zero
}

// DefaultConfig returns the classic 10x20 setup.
func DefaultConfig() Config {
	return Config{
		Width:            10,
		Height:           20,
		Colors:           4,
		MoveSidewaysFreq: 150 * time.Millisecond,
		MoveDownFreq:     100 * time.Millisecond,
		Progression:      true,
		StartLevel:       1,
	}
}

// Intents is the player input sampled for one frame. Presses are counts so
// that repeated taps within one frame are all applied.
type Intents struct {
	Left      int
	Right     int
	RotateCW  int
	RotateCCW int
	SoftDrop  int
	HardDrop  int
	Pause     int

	// Releases end a held movement started by Left, Right or SoftDrop.
	ReleaseLeft  bool
	ReleaseRight bool
	ReleaseDown  bool
}

// Merge returns the input of both frames as one. Presses add up and releases
// are kept from either.
func (in Intents) Merge(other Intents) Intents {
	return Intents{
		Left:         in.Left + other.Left,
		Right:        in.Right + other.Right,
		RotateCW:     in.RotateCW + other.RotateCW,
		RotateCCW:    in.RotateCCW + other.RotateCCW,
		SoftDrop:     in.SoftDrop + other.SoftDrop,
		HardDrop:     in.HardDrop + other.HardDrop,
		Pause:        in.Pause + other.Pause,
		ReleaseLeft:  in.ReleaseLeft || other.ReleaseLeft,
		ReleaseRight: in.ReleaseRight || other.ReleaseRight,
		ReleaseDown:  in.ReleaseDown || other.ReleaseDown,
	}
}

// Empty reports whether the intents hold no press and no release.
func (in Intents) Empty() bool {
	return in == Intents{}
}

// StepResult describes what happened during one Step.
type StepResult struct {
	Spawned      bool // a new piece entered play
	Landed       bool // the falling piece was merged into the board
	LinesCleared int
	GameOver     bool // the game ended during this step
}

// Session is one game: the board, the falling and next pieces, score and
// timers. It is not safe for concurrent use.
type Session struct {
	cfg   Config
	rng   *rand.Rand
	board *Board

	falling *Piece
	next    Piece

	score    int
	level    int
	fallFreq float64
	phase    Phase
	paused   bool

	movingLeft  bool
	movingRight bool
	movingDown  bool

	lastFall         time.Time
	lastMoveDown     time.Time
	lastMoveSideways time.Time
}

// NewSession starts a game on a blank board. now is the clock reading the
// session timers start from.
func NewSession(cfg Config, seed int64, now time.Time) *Session {
	if cfg.StartLevel < 1 {
		cfg.StartLevel = 1
	}
	s := &Session{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		board: BlankBoard(cfg.Width, cfg.Height),
		phase: PhaseSpawned,
	}
	first := s.spawn()
	s.falling = &first
	s.next = s.spawn()
	s.updateLevel()
	s.resetTimers(now)
	return s
}

func (s *Session) spawn() Piece {
	return SpawnPiece(s.rng, s.cfg.Width, s.cfg.Colors)
}

func (s *Session) resetTimers(now time.Time) {
	s.lastFall = now
	s.lastMoveDown = now
	s.lastMoveSideways = now
}

// updateLevel recomputes level and fall frequency from the score.
func (s *Session) updateLevel() {
	score := s.score
	if !s.cfg.Progression {
		score = 0
	}
	s.level = Level(score) + s.cfg.StartLevel - 1
	s.fallFreq = FallFrequency(s.level)
	if minFreq := s.cfg.MinFallFreq.Seconds(); minFreq > 0 && s.fallFreq < minFreq {
		s.fallFreq = minFreq
	}
}

// Step runs one frame: it promotes the next piece when none is falling,
// otherwise applies the intents, the held-key repeats and the fall timer.
func (s *Session) Step(now time.Time, in Intents) StepResult {
	var res StepResult
	if s.phase == PhaseGameOver {
		return res
	}

	if s.falling == nil {
		p := s.next
		s.falling = &p
		s.next = s.spawn()
		s.lastFall = now
		res.Spawned = true
		s.phase = PhaseSpawned
		if !s.board.IsValidPosition(p, 0, 0) {
			s.phase = PhaseGameOver
			res.GameOver = true
		}
		return res
	}

	if in.Pause > 0 {
		s.paused = s.paused != (in.Pause%2 == 1)
		if !s.paused {
			s.resetTimers(now)
		}
	}
	if s.paused {
		return res
	}
	s.phase = PhaseFalling

	s.applyIntents(now, in)

	if (s.movingLeft || s.movingRight) && now.Sub(s.lastMoveSideways).Seconds() > s.cfg.MoveSidewaysFreq.Seconds() {
		switch {
		case s.movingLeft && s.canMove(-1, 0):
			s.falling.X--
		case s.movingRight && s.canMove(1, 0):
			s.falling.X++
		}
		s.lastMoveSideways = now
	}

	if s.movingDown && now.Sub(s.lastMoveDown).Seconds() > s.cfg.MoveDownFreq.Seconds() && s.canMove(0, 1) {
		s.falling.Y++
		s.lastMoveDown = now
	}

	if now.Sub(s.lastFall).Seconds() > s.fallFreq {
		if !s.canMove(0, 1) {
			res.Landed = true
			res.LinesCleared = s.land()
		} else {
			s.falling.Y++
			s.lastFall = now
		}
	}
	return res
}

func (s *Session) applyIntents(now time.Time, in Intents) {
	if in.ReleaseLeft {
		s.movingLeft = false
	}
	if in.ReleaseRight {
		s.movingRight = false
	}
	if in.ReleaseDown {
		s.movingDown = false
	}

	// Left presses are applied before right presses.
	for range in.Left {
		if s.canMove(-1, 0) {
			s.falling.X--
			s.movingLeft = true
			s.movingRight = false
			s.lastMoveSideways = now
		}
	}
	for range in.Right {
		if s.canMove(1, 0) {
			s.falling.X++
			s.movingRight = true
			s.movingLeft = false
			s.lastMoveSideways = now
		}
	}

	for range in.RotateCW {
		s.Rotate(1)
	}
	for range in.RotateCCW {
		s.Rotate(-1)
	}

	if in.SoftDrop > 0 {
		s.movingDown = true
		for range in.SoftDrop {
			if s.canMove(0, 1) {
				s.falling.Y++
			}
		}
		s.lastMoveDown = now
	}

	if in.HardDrop > 0 {
		s.movingDown = false
		s.movingLeft = false
		s.movingRight = false
		s.HardDrop()
	}
}

// land merges the falling piece, clears lines and updates the score.
func (s *Session) land() int {
	s.board.PlacePiece(*s.falling)
	cleared := s.board.ClearCompletedLines()
	s.score += cleared
	s.updateLevel()
	s.falling = nil
	s.phase = PhaseLanded
	return cleared
}

func (s *Session) canMove(dx, dy int) bool {
	return s.falling != nil && s.board.IsValidPosition(*s.falling, dx, dy)
}

// Rotate turns the falling piece by steps (positive is clockwise). The turn is
// rolled back when the new orientation does not fit; no kick offsets are tried.
// It reports whether the rotation stuck.
func (s *Session) Rotate(steps int) bool {
	if s.falling == nil {
		return false
	}
	n := s.falling.Shape.Rotations()
	prev := s.falling.Rotation
	s.falling.Rotation = ((prev+steps)%n + n) % n
	if !s.board.IsValidPosition(*s.falling, 0, 0) {
		s.falling.Rotation = prev
		return false
	}
	return true
}

// DropDistance returns how many rows the falling piece can move straight down.
func (s *Session) DropDistance() int {
	if s.falling == nil {
		return 0
	}
	d := 0
	for s.board.IsValidPosition(*s.falling, 0, d+1) {
		d++
	}
	return d
}

// HardDrop moves the falling piece down to the last valid row. The piece
// lands on the next fall tick.
func (s *Session) HardDrop() {
	if s.falling == nil {
		return
	}
	s.falling.Y += s.DropDistance()
}

// Board returns the settled blocks. Callers must not modify it.
func (s *Session) Board() *Board {
	return s.board
}

// Falling returns the piece in play, if any.
func (s *Session) Falling() (Piece, bool) {
	if s.falling == nil {
		return Piece{}, false
	}
	return *s.falling, true
}

// Next returns the queued piece.
func (s *Session) Next() Piece {
	return s.next
}

// Score returns the number of lines cleared so far.
func (s *Session) Score() int {
	return s.score
}

// Level returns the current level.
func (s *Session) Level() int {
	return s.level
}

// FallFreq returns the seconds between automatic falls.
func (s *Session) FallFreq() float64 {
	return s.fallFreq
}

// Phase returns the lifecycle stage of the current piece.
func (s *Session) Phase() Phase {
	return s.phase
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// GameOver reports whether the game has ended.
func (s *Session) GameOver() bool {
	return s.phase == PhaseGameOver
}

