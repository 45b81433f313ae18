// tetromino is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetromino play      - Play a game
//	tetromino shapes    - Print every piece in every rotation
//	tetromino config    - Print the default configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 25)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--log-file <path>     - Write logs to a file (default: no logging)
//	--log-level <level>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetromino",
	Short: "Tetromino - falling blocks in your terminal",
	Long: `Tetromino is a falling-block puzzle game played in the terminal.
Steer and rotate the falling pieces to complete rows; every cleared
row scores a point and every ten points raise the level and speed.

Available commands:
  play     - Start a game
  shapes   - Print all piece templates
  config   - Print the default configuration YAML

Examples:
  tetromino play
  tetromino play --difficulty hard
  tetromino play --seed 42 --log-file /tmp/tetromino.log
  tetromino config > ~/.tetromino/configs/tetromino.yaml`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 25, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(shapesCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the logger from the global flags. The game owns the
// terminal, so logs only go to a file; without --log-file they are dropped.
// The returned closer releases the log file.
func newLogger() (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}

	if flagLogFile == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetromino",
		Level:           level,
	})
	return logger, f, nil
}
