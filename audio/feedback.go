package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
)

const sampleRate = beep.SampleRate(48000)

// Config controls audible feedback
type Config struct {
	Enabled bool
	Volume  float64
}

// Feedback plays short cues for committed and rejected edits
// A disabled or uninitialized Feedback is silent
type Feedback struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
}

// NewFeedback creates feedback; call Init before playing
func NewFeedback(cfg Config) *Feedback {
	return &Feedback{cfg: cfg, mixer: &beep.Mixer{}}
}

// Init opens the speaker when feedback is enabled
func (f *Feedback) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized || !f.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(f.mixer)
	f.initialized = true
	return nil
}

// Close stops playback; beep has no speaker close, so the mixer is cleared
func (f *Feedback) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	speaker.Lock()
	f.mixer.Clear()
	speaker.Unlock()
	f.initialized = false
}

// Enabled reports whether cues will be audible
func (f *Feedback) Enabled() bool {
	if f == nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initialized
}

// Commit plays the accept cue
func (f *Feedback) Commit() {
	f.play(func() beep.Streamer { return CreateCommitSound(sampleRate, f.cfg.Volume) })
}

// Reject plays the refuse cue
func (f *Feedback) Reject() {
	f.play(func() beep.Streamer { return CreateRejectSound(sampleRate, f.cfg.Volume) })
}

func (f *Feedback) play(build func() beep.Streamer) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.initialized {
		return
	}
	speaker.Lock()
	f.mixer.Add(build())
	speaker.Unlock()
}
