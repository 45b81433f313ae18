package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Song is a background music loop.
type Song int

const (
	SongMarch Song = iota
	SongWaltz
	songCount
)

// String returns the song name.
func (s Song) String() string {
	switch s {
	case SongMarch:
		return "march"
	case SongWaltz:
		return "waltz"
	default:
		return "unknown"
	}
}

// SongFor picks the song for a game from its seed.
func SongFor(seed int64) Song {
	return Song(uint64(seed) % uint64(songCount))
}

// step is one slot of a melody. rest marks a silent slot.
type step struct {
	semitone int // offset from the pattern root
	length   int // in steps
	rest     bool
}

// pattern is a melody played on a single voice, looped forever.
type pattern struct {
	root  float64 // Hz
	bpm   int
	wave  Wave
	steps []step
}

var patterns = [songCount]pattern{
	SongMarch: {
		root: 329.63, // E4
		bpm:  144,
		wave: WaveSquare,
		steps: []step{
			{semitone: 0, length: 2}, {semitone: -5, length: 1}, {semitone: -4, length: 1},
			{semitone: -2, length: 2}, {semitone: -4, length: 1}, {semitone: -5, length: 1},
			{semitone: -7, length: 2}, {semitone: -7, length: 1}, {semitone: -4, length: 1},
			{semitone: 0, length: 2}, {semitone: -2, length: 1}, {semitone: -4, length: 1},
			{semitone: -5, length: 3}, {semitone: -4, length: 1},
			{semitone: -2, length: 2}, {semitone: 0, length: 2},
			{semitone: -4, length: 2}, {semitone: -7, length: 2},
			{semitone: -7, length: 2}, {length: 2, rest: true},
		},
	},
	SongWaltz: {
		root: 261.63, // C4
		bpm:  168,
		wave: WaveSine,
		steps: []step{
			{semitone: 0, length: 2}, {semitone: 4, length: 1},
			{semitone: 7, length: 2}, {semitone: 4, length: 1},
			{semitone: 5, length: 2}, {semitone: 9, length: 1},
			{semitone: 12, length: 3},
			{semitone: 11, length: 2}, {semitone: 7, length: 1},
			{semitone: 9, length: 2}, {semitone: 5, length: 1},
			{semitone: 7, length: 2}, {semitone: 2, length: 1},
			{semitone: 0, length: 2}, {length: 1, rest: true},
		},
	},
}

// stepDuration is the length of one eighth-note step at the pattern tempo.
func (p pattern) stepDuration() time.Duration {
	return time.Minute / time.Duration(p.bpm*2)
}

// period is the length of one pass through the melody.
func (p pattern) period() time.Duration {
	total := 0
	for _, st := range p.steps {
		total += st.length
	}
	return time.Duration(total) * p.stepDuration()
}

// pitch returns the equal-tempered frequency semitones away from root.
func pitch(root float64, semitones int) float64 {
	return root * math.Pow(2, float64(semitones)/12)
}

// streamer plays one pass of the melody.
func (p pattern) streamer(rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(p.steps))
	for _, st := range p.steps {
		d := time.Duration(st.length) * p.stepDuration()
		if st.rest {
			parts = append(parts, generators.Silence(rate.N(d)))
			continue
		}
		// Short gap at the end of each note so repeated pitches stay distinct.
		parts = append(parts, Shape(Tone(pitch(p.root, st.semitone), d, p.wave, rate), d, 5*time.Millisecond, d/3, rate))
	}
	return beep.Seq(parts...)
}

// Period returns the length of one pass through the song.
func Period(s Song) time.Duration {
	if s < 0 || s >= songCount {
		return 0
	}
	return patterns[s].period()
}

// Music returns an endless streamer looping the song, or nil for an unknown
// song. The melody is rendered once and replayed from memory.
func Music(s Song, rate beep.SampleRate, volume float64) beep.Streamer {
	if s < 0 || s >= songCount {
		return nil
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(patterns[s].streamer(rate))
	return withVolume(beep.Loop(-1, buf.Streamer(0, buf.Len())), volume)
}
