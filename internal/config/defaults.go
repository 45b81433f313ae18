package config

import (
	_ "embed"
)

//go:embed defaults/tetromino.yaml
var defaultTetrominoYAML []byte

// DefaultTetrominoConfig returns the built-in Tetromino configuration.
func DefaultTetrominoConfig() TetrominoConfig {
	return TetrominoConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
			Colors: 4,
		},
		Timing: TimingConfig{
			MoveSidewaysFreq: 0.15,
			MoveDownFreq:     0.1,
			HoldWindow:       0.12,
			MinFallFreq:      0,
		},
		Audio: AudioConfig{
			Enabled:     true,
			Volume:      0.5,
			MusicVolume: 0.3,
			SampleRate:  44100,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			StartLevel: 1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultTetrominoYAML
}
