// Package tui runs a game in the terminal with Bubble Tea.
// It handles the frame loop, input mapping, audio cues and logging.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetromino/internal/core"
)

// TickMsg is sent to trigger a game simulation tick. It carries the wall
// time the frame fired at, which the game uses as its clock.
type TickMsg time.Time

// frameInterval returns the time between frames, falling back to the default
// rate for non-positive values.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(fps)
}

// tickCmd schedules the next frame.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
