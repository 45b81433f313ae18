// Package config provides YAML-based game configuration loading,
// validation and difficulty presets.
package config

// TetrominoConfig contains all configuration for the Tetromino game.
type TetrominoConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Audio      AudioConfig      `yaml:"audio"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the well dimensions and block palette size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Colors int `yaml:"colors"`
}

// TimingConfig defines input repeat and fall timing, in seconds.
type TimingConfig struct {
	MoveSidewaysFreq float64 `yaml:"move_sideways_freq"`
	MoveDownFreq     float64 `yaml:"move_down_freq"`
	HoldWindow       float64 `yaml:"hold_window"`
	MinFallFreq      float64 `yaml:"min_fall_freq"` // 0 = unclamped
}

// AudioConfig defines the sound cue and music settings.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Volume      float64 `yaml:"volume"`       // 0.0 - 1.0
	MusicVolume float64 `yaml:"music_volume"` // 0.0 - 1.0, 0 = no music
	SampleRate  int     `yaml:"sample_rate"`
}

// DifficultyConfig defines the level progression.
type DifficultyConfig struct {
	Enabled    bool `yaml:"enabled"`     // level follows the score
	StartLevel int  `yaml:"start_level"` // level at score zero
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// StartLevelForPreset returns the starting level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 3
	case DifficultyHard:
		return 6
	default:
		return 1
	}
}

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(name string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(name); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}
