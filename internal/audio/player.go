// Package audio plays short synthesized sound cues for game events and a
// looping background melody.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-tetromino/internal/core"
)

// Cue is a sound effect.
type Cue int

const (
	CueLand Cue = iota
	CueLineClear
	CueBigClear
	CueGameOver
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueLand:
		return "land"
	case CueLineClear:
		return "line_clear"
	case CueBigClear:
		return "big_clear"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// BigClearLines is the number of lines cleared at once that earns CueBigClear.
const BigClearLines = 4

// CuesFor returns the cues to play for one frame's events.
func CuesFor(ev core.Events) []Cue {
	var cues []Cue
	switch {
	case ev.LinesCleared >= BigClearLines:
		cues = append(cues, CueBigClear)
	case ev.LinesCleared > 0:
		cues = append(cues, CueLineClear)
	case ev.Landed:
		cues = append(cues, CueLand)
	}
	if ev.GameOver {
		cues = append(cues, CueGameOver)
	}
	return cues
}

// Streamer builds a fresh streamer for a cue.
func Streamer(c Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueLand:
		s = landSound(rate)
	case CueLineClear:
		s = clearSound(rate)
	case CueBigClear:
		s = bigClearSound(rate)
	case CueGameOver:
		s = gameOverSound(rate)
	default:
		return nil
	}
	return withVolume(s, volume)
}

// Player plays cues and the background music. Implementations must not block
// the caller.
type Player interface {
	Play(c Cue)
	// StartMusic replaces any playing song with s from its beginning.
	StartMusic(s Song)
	// PauseMusic silences the song or resumes it where it stopped.
	PauseMusic(paused bool)
	StopMusic()
	Close()
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Play(Cue)        {}
func (Nop) StartMusic(Song) {}
func (Nop) PauseMusic(bool) {}
func (Nop) StopMusic()      {}
func (Nop) Close()          {}

// Speaker plays cues and music on the system audio device through a single
// mixer.
type Speaker struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	volume      float64
	musicVolume float64
	mixer       *beep.Mixer
	music       *beep.Ctrl
	closed      bool
}

// NewSpeaker opens the audio device. Volumes are linear in [0, 1]; a zero
// musicVolume turns the music off.
func NewSpeaker(sampleRate int, volume, musicVolume float64) (*Speaker, error) {
	rate := beep.SampleRate(sampleRate)
	if err := speaker.Init(rate, rate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	s := &Speaker{
		rate:        rate,
		volume:      volume,
		musicVolume: musicVolume,
		mixer:       &beep.Mixer{},
	}
	speaker.Play(s.mixer)
	return s, nil
}

// Play mixes the cue into the output.
func (s *Speaker) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	st := Streamer(c, s.rate, s.volume)
	if st == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// StartMusic starts looping the song.
func (s *Speaker) StartMusic(song Song) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.musicVolume <= 0 {
		return
	}
	st := Music(song, s.rate, s.musicVolume)
	if st == nil {
		return
	}
	ctrl := &beep.Ctrl{Streamer: st}

	speaker.Lock()
	s.stopMusicLocked()
	s.music = ctrl
	s.mixer.Add(ctrl)
	speaker.Unlock()
}

// PauseMusic pauses or resumes the current song.
func (s *Speaker) PauseMusic(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.music == nil {
		return
	}
	speaker.Lock()
	s.music.Paused = paused
	speaker.Unlock()
}

// StopMusic ends the current song.
func (s *Speaker) StopMusic() {
	s.mu.Lock()
	defer s.mu.Unlock()

	speaker.Lock()
	s.stopMusicLocked()
	speaker.Unlock()
}

// stopMusicLocked drops the song from the mixer. The caller holds both locks.
func (s *Speaker) stopMusicLocked() {
	if s.music == nil {
		return
	}
	// A Ctrl without a streamer reports drained and the mixer removes it.
	s.music.Streamer = nil
	s.music = nil
}

// Close silences all playing sounds. Further calls do nothing.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	speaker.Lock()
	s.stopMusicLocked()
	s.mixer.Clear()
	speaker.Unlock()
	s.closed = true
}
