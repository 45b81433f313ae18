package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
)

// tone is a fixed-length oscillator.
type tone struct {
	freq     float64
	phase    float64
	wave     Wave
	rate     beep.SampleRate
	position int
	length   int
}

// Tone returns a streamer playing freq for duration with the given wave shape.
func Tone(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, wave: wave, rate: rate, length: rate.N(duration)}
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// Shape wraps s with a linear fade-in of attack and fade-out of release over
// a stream of the given total duration.
func Shape(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range n {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.attack > 0 && e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; e.release > 0 && remaining < e.release {
			vol = min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales a stream linearly; 0 or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// note is a shaped tone with a short attack and a release over half its length.
func note(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return Shape(Tone(freq, d, wave, rate), d, 5*time.Millisecond, d/2, rate)
}

// landSound is a short low thud when a piece settles.
func landSound(rate beep.SampleRate) beep.Streamer {
	d := 40 * time.Millisecond
	sine, err := generators.SineTone(rate, 196)
	if err != nil {
		return note(196, d, WaveSine, rate)
	}
	return Shape(beep.Take(rate.N(d), sine), d, 2*time.Millisecond, 30*time.Millisecond, rate)
}

// clearSound is a bell: fundamental plus octave overtone.
func clearSound(rate beep.SampleRate) beep.Streamer {
	d := 180 * time.Millisecond
	return beep.Mix(
		withVolume(note(880, d, WaveSine, rate), 0.7),
		withVolume(note(1760, d, WaveSine, rate), 0.3),
	)
}

// bigClearSound is a rising C major arpeggio for four or more lines at once.
func bigClearSound(rate beep.SampleRate) beep.Streamer {
	d := 70 * time.Millisecond
	return beep.Seq(
		note(1046.50, d, WaveSquare, rate),
		note(1318.51, d, WaveSquare, rate),
		note(1567.98, d, WaveSquare, rate),
		note(2093.00, 2*d, WaveSquare, rate),
	)
}

// gameOverSound is a falling three-note saw line.
func gameOverSound(rate beep.SampleRate) beep.Streamer {
	d := 200 * time.Millisecond
	return beep.Seq(
		note(440, d, WaveSaw, rate),
		note(330, d, WaveSaw, rate),
		note(220, 2*d, WaveSaw, rate),
	)
}
