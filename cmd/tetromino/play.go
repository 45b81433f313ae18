package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetromino/internal/audio"
	"github.com/vovakirdan/tui-tetromino/internal/config"
	"github.com/vovakirdan/tui-tetromino/internal/core"
	"github.com/vovakirdan/tui-tetromino/internal/games/tetromino"
	"github.com/vovakirdan/tui-tetromino/internal/platform/tui"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Tetromino.

Controls:
  Left/A, Right/D  - Move
  Up/W             - Rotate clockwise
  Q                - Rotate counter-clockwise
  Down/S           - Soft drop (hold)
  Space            - Hard drop
  P                - Pause
  R                - Restart (after game over)
  ?                - Show all keys
  Esc/Ctrl+C       - Quit

Difficulty options:
  easy   - Start at level 1, speed follows the score
  normal - Start at level 3, speed follows the score
  hard   - Start at level 6, speed follows the score
  fixed  - No progression, stays at the config's start level

Examples:
  tetromino play
  tetromino play --difficulty normal
  tetromino play --difficulty fixed --mute
  tetromino play --config ./my-tetromino.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameCfg, err := config.LoadTetromino(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q\n", flagDifficulty)
		fmt.Fprintln(os.Stderr, "Valid presets: easy, normal, hard, fixed")
		os.Exit(1)
	}
	config.ApplyTetrominoPreset(&gameCfg, preset)

	logger, closer, err := newLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtimeCfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	player := newPlayer(gameCfg.Audio, logger)
	defer player.Close()

	logger.Info("starting",
		"board", fmt.Sprintf("%dx%d", gameCfg.Board.Width, gameCfg.Board.Height),
		"difficulty", string(preset),
		"start_level", gameCfg.Difficulty.StartLevel,
		"fps", flagFPS,
	)

	game := tetromino.New(gameCfg)
	err = tui.Run(game, tui.Options{
		Config:     runtimeCfg,
		Player:     player,
		Logger:     logger,
		HoldWindow: time.Duration(gameCfg.Timing.HoldWindow * float64(time.Second)),
	})
	if err != nil {
		logger.Error("game exited", "error", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// newPlayer opens the speaker when sound is enabled. Failure to open the
// audio device is not fatal; the game runs muted.
func newPlayer(cfg config.AudioConfig, logger *log.Logger) audio.Player {
	if flagMute || !cfg.Enabled {
		return audio.Nop{}
	}
	sp, err := audio.NewSpeaker(cfg.SampleRate, cfg.Volume, cfg.MusicVolume)
	if err != nil {
		logger.Warn("audio unavailable, playing muted", "error", err)
		return audio.Nop{}
	}
	logger.Debug("audio ready", "sample_rate", cfg.SampleRate, "volume", cfg.Volume, "music_volume", cfg.MusicVolume)
	return sp
}
