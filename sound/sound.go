package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/hoshinonyaruko/jungle-snake/structs"
)

const sampleRate = beep.SampleRate(44100)

type note struct {
	freq float64
	dur  time.Duration
}

var cues = map[structs.EventType][]note{
	structs.EventFoodEaten: {
		{freq: 880, dur: 60 * time.Millisecond},
	},
	structs.EventLevelUp: {
		{freq: 523.25, dur: 90 * time.Millisecond},
		{freq: 659.25, dur: 90 * time.Millisecond},
		{freq: 783.99, dur: 140 * time.Millisecond},
	},
	structs.EventGameOver: {
		{freq: 392, dur: 180 * time.Millisecond},
		{freq: 261.63, dur: 180 * time.Millisecond},
		{freq: 196, dur: 320 * time.Millisecond},
	},
}

// Cue builds the tone sequence for an event.
func Cue(ev structs.Event) (beep.Streamer, error) {
	notes, ok := cues[ev.Type]
	if !ok {
		return nil, fmt.Errorf("no cue for event %v", ev.Type)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		tone, err := generators.SineTone(sampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("tone %.2fHz: %w", n.freq, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(n.dur), tone))
	}
	return &effects.Volume{
		Streamer: beep.Seq(parts...),
		Base:     2,
		Volume:   -2,
	}, nil
}

// Duration is the total length of the cue for t.
func Duration(t structs.EventType) time.Duration {
	var d time.Duration
	for _, n := range cues[t] {
		d += n.dur
	}
	return d
}

// Player plays event cues through the speaker. Every method is a no-op until
// Initialize succeeds, so the game runs the same without an audio device.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     bool
}

func NewPlayer(enabled bool) *Player {
	return &Player{
		mixer:   &beep.Mixer{},
		enabled: enabled,
	}
}

// Initialize sets up the audio system
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetEnabled mutes or unmutes future cues.
func (p *Player) SetEnabled(enabled bool) {
	p.mu.Lock()
	p.enabled = enabled
	p.mu.Unlock()
}

func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// OnEvent queues the cue for ev on the mixer.
func (p *Player) OnEvent(ev structs.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || !p.enabled {
		return
	}
	s, err := Cue(ev)
	if err != nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Cleanup stops all sounds and closes the speaker.
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
