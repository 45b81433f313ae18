package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// isolate points HOME and the working directory at empty temp dirs so the
// search path only sees files the test writes.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg TetrominoConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultTetrominoConfig() {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, DefaultTetrominoConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadTetrominoEmbedded(t *testing.T) {
	isolate(t)
	cfg, err := LoadTetromino("")
	if err != nil {
		t.Fatalf("LoadTetromino: %v", err)
	}
	if cfg != DefaultTetrominoConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadTetrominoCustomPartial(t *testing.T) {
	_, work := isolate(t)
	path := filepath.Join(work, "mine.yaml")
	writeFile(t, path, "board:\n  width: 12\ndifficulty:\n  start_level: 4\n")

	cfg, err := LoadTetromino(path)
	if err != nil {
		t.Fatalf("LoadTetromino: %v", err)
	}
	if cfg.Board.Width != 12 || cfg.Difficulty.StartLevel != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Board.Height != 20 || cfg.Timing.MoveSidewaysFreq != 0.15 {
		t.Errorf("unspecified keys should keep defaults: %+v", cfg)
	}
}

func TestLoadTetrominoCustomErrors(t *testing.T) {
	_, work := isolate(t)

	if _, err := LoadTetromino(filepath.Join(work, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(work, "bad.yaml")
	writeFile(t, bad, "board: [not, a, map")
	if _, err := LoadTetromino(bad); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("malformed config error = %v, want parse failure", err)
	}

	invalid := filepath.Join(work, "invalid.yaml")
	writeFile(t, invalid, "board:\n  width: 2\n  colors: 9\n")
	_, err := LoadTetromino(invalid)
	if err == nil {
		t.Fatal("out-of-range config should fail validation")
	}
	for _, want := range []string{"board.width", "board.colors"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestLoadTetrominoSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "tetromino.yaml"), "board:\n  height: 22\n")
	cfg, err := LoadTetromino("")
	if err != nil {
		t.Fatalf("LoadTetromino: %v", err)
	}
	if cfg.Board.Height != 22 {
		t.Errorf("local config not used, height = %d", cfg.Board.Height)
	}

	writeFile(t, filepath.Join(home, ".tetromino", "configs", "tetromino.yaml"), "board:\n  height: 24\n")
	cfg, err = LoadTetromino("")
	if err != nil {
		t.Fatalf("LoadTetromino: %v", err)
	}
	if cfg.Board.Height != 24 {
		t.Errorf("user config should win over local, height = %d", cfg.Board.Height)
	}
}

func TestApplyTetrominoPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantLevel   int
	}{
		{"", true, 1},
		{DifficultyEasy, true, 1},
		{DifficultyNormal, true, 3},
		{DifficultyHard, true, 6},
		{DifficultyFixed, false, 1},
	}
	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTetrominoConfig()
			ApplyTetrominoPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.wantEnabled || cfg.Difficulty.StartLevel != tc.wantLevel {
				t.Errorf("difficulty = %+v, want enabled=%v start=%d", cfg.Difficulty, tc.wantEnabled, tc.wantLevel)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, name := range []string{"", "easy", "normal", "hard", "fixed"} {
		if _, ok := ParsePreset(name); !ok {
			t.Errorf("ParsePreset(%q) should succeed", name)
		}
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("ParsePreset(insane) should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *TetrominoConfig)
		field  string
	}{
		{"short board", func(c *TetrominoConfig) { c.Board.Height = 3 }, "board.height"},
		{"no colors", func(c *TetrominoConfig) { c.Board.Colors = 0 }, "board.colors"},
		{"negative timing", func(c *TetrominoConfig) { c.Timing.MoveDownFreq = -1 }, "timing.move_down_freq"},
		{"loud", func(c *TetrominoConfig) { c.Audio.Volume = 2 }, "audio.volume"},
		{"negative music volume", func(c *TetrominoConfig) { c.Audio.MusicVolume = -0.1 }, "audio.music_volume"},
		{"no sample rate", func(c *TetrominoConfig) { c.Audio.SampleRate = 0 }, "audio.sample_rate"},
		{"level zero", func(c *TetrominoConfig) { c.Difficulty.StartLevel = 0 }, "difficulty.start_level"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTetrominoConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Validate() = %v, want error mentioning %s", err, tc.field)
			}
		})
	}

	muted := DefaultTetrominoConfig()
	muted.Audio.Enabled = false
	muted.Audio.SampleRate = 0
	if err := muted.Validate(); err != nil {
		t.Errorf("sample rate is irrelevant when audio is off: %v", err)
	}
}
