package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Board limits. A board narrower than a piece template cannot spawn pieces.
const (
	MinBoardWidth  = 5
	MinBoardHeight = 5
	MaxColors      = 7
)

// LoadTetromino loads the Tetromino configuration.
// Search order: customPath -> ~/.tetromino/configs/tetromino.yaml -> ./configs/tetromino.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadTetromino(customPath string) (TetrominoConfig, error) {
	cfg := DefaultTetrominoConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("tetromino.yaml"), filepath.Join("configs", "tetromino.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultTetrominoConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, candidate.Validate()
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTetrominoYAML, &cfg); err != nil {
		return DefaultTetrominoConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetromino", "configs", filename)
}

// ApplyTetrominoPreset modifies the config based on a difficulty preset.
// The empty preset leaves the config unchanged.
func ApplyTetrominoPreset(cfg *TetrominoConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.StartLevel = StartLevelForPreset(preset)
	}
}

// Validate reports every out-of-range setting.
func (c TetrominoConfig) Validate() error {
	var errs []error

	if c.Board.Width < MinBoardWidth {
		errs = append(errs, fmt.Errorf("board.width must be at least %d, got %d", MinBoardWidth, c.Board.Width))
	}
	if c.Board.Height < MinBoardHeight {
		errs = append(errs, fmt.Errorf("board.height must be at least %d, got %d", MinBoardHeight, c.Board.Height))
	}
	if c.Board.Colors < 1 || c.Board.Colors > MaxColors {
		errs = append(errs, fmt.Errorf("board.colors must be between 1 and %d, got %d", MaxColors, c.Board.Colors))
	}

	timings := []struct {
		name string
		val  float64
	}{
		{"timing.move_sideways_freq", c.Timing.MoveSidewaysFreq},
		{"timing.move_down_freq", c.Timing.MoveDownFreq},
		{"timing.hold_window", c.Timing.HoldWindow},
		{"timing.min_fall_freq", c.Timing.MinFallFreq},
	}
	for _, t := range timings {
		if t.val < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %g", t.name, t.val))
		}
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be between 0 and 1, got %g", c.Audio.Volume))
	}
	if c.Audio.MusicVolume < 0 || c.Audio.MusicVolume > 1 {
		errs = append(errs, fmt.Errorf("audio.music_volume must be between 0 and 1, got %g", c.Audio.MusicVolume))
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate must be positive, got %d", c.Audio.SampleRate))
	}
	if c.Difficulty.StartLevel < 1 {
		errs = append(errs, fmt.Errorf("difficulty.start_level must be at least 1, got %d", c.Difficulty.StartLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
