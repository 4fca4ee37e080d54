package ui

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// chompGap drops chomps closer together than this; an orange adds several segments at once
const chompGap = 80 * time.Millisecond

// SoundPlayer plays the short effects of the game. A nil or disabled player is silent.
type SoundPlayer struct {
	mu        sync.Mutex
	mixer     *beep.Mixer
	enabled   bool
	lastChomp time.Time
}

// NewSoundPlayer opens the speaker when enabled. Audio failures only disable the sound.
func NewSoundPlayer(enabled bool, logger *log.Logger) *SoundPlayer {
	sp := &SoundPlayer{mixer: &beep.Mixer{}}
	if !enabled {
		return sp
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		if logger != nil {
			logger.Printf("Sound disabled: %v", err)
		}
		return sp
	}
	speaker.Play(sp.mixer)
	sp.enabled = true
	return sp
}

// Chomp is played when the snake grows
func (sp *SoundPlayer) Chomp() {
	if sp == nil {
		return
	}
	sp.mu.Lock()
	defer sp.mu.Unlock()
	now := time.Now()
	if now.Sub(sp.lastChomp) < chompGap {
		return
	}
	sp.lastChomp = now
	sp.play(softer(tone(660, 60*time.Millisecond)))
}

// GameOver plays a falling jingle for a loss and a rising one for a win
func (sp *SoundPlayer) GameOver(win bool) {
	if sp == nil {
		return
	}
	sp.mu.Lock()
	defer sp.mu.Unlock()
	notes := []float64{440, 330, 220}
	if win {
		notes = []float64{330, 440, 660}
	}
	sp.play(softer(jingle(notes, 150*time.Millisecond)))
}

func (sp *SoundPlayer) play(s beep.Streamer) {
	if !sp.enabled {
		return
	}
	speaker.Lock()
	sp.mixer.Add(s)
	speaker.Unlock()
}

// Close silences anything still playing
func (sp *SoundPlayer) Close() {
	if sp == nil {
		return
	}
	sp.mu.Lock()
	defer sp.mu.Unlock()
	if !sp.enabled {
		return
	}
	speaker.Lock()
	sp.mixer.Clear()
	speaker.Unlock()
	sp.enabled = false
}

func jingle(freqs []float64, each time.Duration) beep.Streamer {
	parts := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		parts[i] = tone(f, each)
	}
	return beep.Seq(parts...)
}

func softer(s beep.Streamer) beep.Streamer {
	return &effects.Volume{Streamer: s, Base: 2, Volume: -2}
}

// tone is a sine wave of the given frequency lasting d
func tone(freq float64, d time.Duration) beep.Streamer {
	return beep.Take(sampleRate.N(d), &sine{step: freq / float64(sampleRate)})
}

type sine struct {
	phase float64
	step  float64
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += s.step
		s.phase -= math.Floor(s.phase)
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }
