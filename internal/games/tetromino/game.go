package tetromino

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetromino/internal/config"
	"github.com/vovakirdan/tui-tetromino/internal/core"
	"github.com/vovakirdan/tui-tetromino/internal/games/tetromino/engine"
)

const (
	cellW     = 2 // screen columns per board cell
	hudHeight = 1
	panelGap  = 2
)

// sessionEpoch is where every session clock starts. Only differences matter.
var sessionEpoch = time.Unix(0, 0)

// Game adapts an engine session to the platform frame loop.
type Game struct {
	cfg     config.TetrominoConfig
	session *engine.Session

	tick     uint64
	tickRate int
	elapsed  time.Duration // session clock, advanced by frame deltas
	lastWall time.Time     // wall time of the previous frame, zero before the first

	tooSmall bool

	// pending holds input that arrived on a frame that only brought in the
	// next piece. It is applied on the following frame.
	pending engine.Intents
}

// New creates a game using the given configuration.
func New(cfg config.TetrominoConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetromino"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetromino"
}

// EngineConfig converts the file configuration to session tunables.
func EngineConfig(cfg config.TetrominoConfig) engine.Config {
	return engine.Config{
		Width:            cfg.Board.Width,
		Height:           cfg.Board.Height,
		Colors:           cfg.Board.Colors,
		MoveSidewaysFreq: seconds(cfg.Timing.MoveSidewaysFreq),
		MoveDownFreq:     seconds(cfg.Timing.MoveDownFreq),
		MinFallFreq:      seconds(cfg.Timing.MinFallFreq),
		Progression:      cfg.Difficulty.Enabled,
		StartLevel:       cfg.Difficulty.StartLevel,
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.elapsed = 0
	g.lastWall = time.Time{}
	g.pending = engine.Intents{}
	g.session = engine.NewSession(EngineConfig(g.cfg), cfg.Seed, sessionEpoch)
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	reqW, reqH := g.requiredSize()
	g.tooSmall = w < reqW || h < reqH
}

// requiredSize is the smallest screen that fits the HUD, the well and the
// preview panel.
func (g *Game) requiredSize() (int, int) {
	wellW := g.cfg.Board.Width*cellW + 2
	panelW := engine.TemplateSize*cellW + 2
	return wellW + panelGap + panelW, hudHeight + g.cfg.Board.Height + 2
}

// advanceClock moves the session clock by the time since the previous frame,
// or by one fixed frame when the input carries no clock reading.
func (g *Game) advanceClock(wall time.Time, run bool) time.Time {
	var dt time.Duration
	switch {
	case wall.IsZero():
		dt = time.Second / time.Duration(g.tickRate)
	case g.lastWall.IsZero():
		dt = 0
	default:
		dt = wall.Sub(g.lastWall)
	}
	if !wall.IsZero() {
		g.lastWall = wall
	}
	if run {
		g.elapsed += dt
	}
	return sessionEpoch.Add(g.elapsed)
}

// intents maps platform actions to engine intents.
func intents(in core.InputFrame) engine.Intents {
	return engine.Intents{
		Left:         in.Count(core.ActionLeft),
		Right:        in.Count(core.ActionRight),
		RotateCW:     in.Count(core.ActionRotateCW),
		RotateCCW:    in.Count(core.ActionRotateCCW),
		SoftDrop:     in.Count(core.ActionSoftDrop),
		HardDrop:     in.Count(core.ActionHardDrop),
		Pause:        in.Count(core.ActionPause),
		ReleaseLeft:  in.HasReleased(core.ActionLeft),
		ReleaseRight: in.HasReleased(core.ActionRight),
		ReleaseDown:  in.HasReleased(core.ActionSoftDrop),
	}
}

// Step advances the game by one frame.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	now := g.advanceClock(input.Now, !g.tooSmall)
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	in := g.pending.Merge(intents(input))
	g.pending = engine.Intents{}
	res := g.session.Step(now, in)
	if res.Spawned && !res.GameOver && !in.Empty() {
		g.pending = in
	}
	return core.StepResult{
		State: g.State(),
		Events: core.Events{
			Landed:       res.Landed,
			LinesCleared: res.LinesCleared,
			GameOver:     res.GameOver,
		},
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		GameOver: g.session.GameOver(),
		Paused:   g.session.Paused(),
	}
}

// Session exposes the running engine session.
func (g *Game) Session() *engine.Session {
	return g.session
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		reqW, reqH := g.requiredSize()
		renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", reqW, reqH))
		return
	}

	reqW, _ := g.requiredSize()
	wellX := core.Clamp((dst.Width()-reqW)/2, 0, dst.Width())
	wellY := hudHeight
	g.renderWell(dst, wellX, wellY)
	g.renderPanel(dst, wellX+g.cfg.Board.Width*cellW+2+panelGap, wellY)

	switch {
	case g.session.GameOver():
		renderOverlay(dst, "Game Over", "Press R to restart")
	case g.session.Paused():
		renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Level: %d", g.Title(), g.session.Score(), g.session.Level())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
}

// drawBlock draws one board cell as two screen columns.
func drawBlock(dst *core.Screen, x, y int, glyph string, c core.Color) {
	dst.DrawTextColored(x, y, glyph, c)
}

func (g *Game) renderWell(dst *core.Screen, ox, oy int) {
	b := g.session.Board()
	dst.DrawBox(core.NewRect(ox, oy, b.Width()*cellW+2, b.Height()+2), core.ColorGray)

	for y := range b.Height() {
		for x := range b.Width() {
			if c := b.At(x, y); !c.IsEmpty() {
				drawBlock(dst, ox+1+x*cellW, oy+1+y, "[]", core.BlockColor(int(c)))
			}
		}
	}

	p, ok := g.session.Falling()
	if !ok {
		return
	}
	if d := g.session.DropDistance(); d > 0 {
		for _, cell := range p.Moved(0, d).Cells() {
			if cell[1] >= 0 {
				drawBlock(dst, ox+1+cell[0]*cellW, oy+1+cell[1], "::", core.ColorGray)
			}
		}
	}
	for _, cell := range p.Cells() {
		if cell[1] >= 0 {
			drawBlock(dst, ox+1+cell[0]*cellW, oy+1+cell[1], "[]", core.BlockColor(p.Color))
		}
	}
}

func (g *Game) renderPanel(dst *core.Screen, ox, oy int) {
	next := g.session.Next()
	size := engine.TemplateSize
	dst.DrawBox(core.NewRect(ox, oy, size*cellW+2, size+2), core.ColorGray)
	dst.DrawText(ox+2, oy, "Next")

	t := next.Template()
	for y := range size {
		for x := range size {
			if t.Occupied(x, y) {
				drawBlock(dst, ox+1+x*cellW, oy+1+y, "[]", core.BlockColor(next.Color))
			}
		}
	}

	y := oy + size + 3
	dst.DrawText(ox, y, fmt.Sprintf("Score: %d", g.session.Score()))
	dst.DrawText(ox, y+1, fmt.Sprintf("Level: %d", g.session.Level()))
	dst.DrawText(ox, y+2, fmt.Sprintf("Fall:  %.2fs", g.session.FallFreq()))
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	r := core.NewRect(
		core.Clamp((dst.Width()-boxW)/2, 0, dst.Width()),
		core.Clamp((dst.Height()-boxH)/2, 0, dst.Height()),
		boxW, boxH,
	)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, core.ColorWhite)
	dst.DrawTextCentered(r.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(r.Y+3, line2, core.ColorDefault)
}
