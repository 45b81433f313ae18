package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetromino/internal/games/tetromino/engine"
)

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Print every piece in every rotation",
	Long:  `Prints the 5x5 template of each piece, one rotation per column.`,
	Args:  cobra.NoArgs,
	Run:   runShapes,
}

func runShapes(cmd *cobra.Command, args []string) {
	for i, s := range engine.AllShapes() {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s (%d rotations)\n", s, s.Rotations())
		fmt.Println(formatRotations(s))
	}
}

// formatRotations lays out all rotations of a shape side by side.
func formatRotations(s engine.Shape) string {
	lines := make([]string, engine.TemplateSize)
	for r := range s.Rotations() {
		rows := strings.Split(s.Template(r).String(), "\n")
		for y := range lines {
			if r > 0 {
				lines[y] += "   "
			}
			if y < len(rows) {
				lines[y] += rows[y]
			}
		}
	}
	return strings.Join(lines, "\n")
}
