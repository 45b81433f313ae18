package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 25,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the status a game reports to the platform after each frame.
type GameState struct {
	Score    int
	Level    int
	GameOver bool
	Paused   bool
}

// Events are the notable things that happened during one frame.
// The platform uses them for sound cues and logging.
type Events struct {
	Landed       bool
	LinesCleared int
	GameOver     bool
}

// StepResult is returned by Game.Step() after each frame.
type StepResult struct {
	State  GameState
	Events Events
}
