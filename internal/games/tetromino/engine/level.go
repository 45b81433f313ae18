package engine

// Progression constants.
const (
	LinesPerLevel = 10
	BaseFallFreq  = 0.27
	FallFreqStep  = 0.02
)

// Level returns the level reached at the given score.
func Level(score int) int {
	return score/LinesPerLevel + 1
}

// FallFrequency returns the seconds between automatic one-row falls at a level.
// It is not clamped and turns negative from level 14 on.
func FallFrequency(level int) float64 {
	return BaseFallFreq - float64(level)*FallFreqStep
}

// LevelAndFallFrequency returns the level for a score and its fall frequency
// in seconds.
func LevelAndFallFrequency(score int) (int, float64) {
	level := Level(score)
	return level, FallFrequency(level)
}
