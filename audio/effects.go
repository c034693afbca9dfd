package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
)

// Sound envelope timings
const (
	rejectDuration = 90 * time.Millisecond
	rejectAttack   = 5 * time.Millisecond
	rejectRelease  = 25 * time.Millisecond

	commitDuration        = 300 * time.Millisecond
	commitAttack          = 5 * time.Millisecond
	commitFundamentalRel  = 280 * time.Millisecond
	commitOvertoneRelease = 120 * time.Millisecond
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite wave of the given frequency and shape
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s with an attack ramp and a release tail
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain; 0 is silent since log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateRejectSound is a short low buzz for refused input
func CreateRejectSound(rate beep.SampleRate, volume float64) beep.Streamer {
	saw := NewOscillator(110.0, rejectDuration, WaveSaw, rate)
	sawShaped := NewEnvelope(saw, rejectDuration, rejectAttack, rejectRelease, rate)

	// Square an octave down for body
	sub := NewOscillator(55.0, rejectDuration, WaveSquare, rate)
	subShaped := NewEnvelope(sub, rejectDuration, rejectAttack, rejectRelease, rate)

	mixed := beep.Mix(
		newVolume(sawShaped, 0.7),
		newVolume(subShaped, 0.3),
	)
	return newVolume(mixed, volume)
}

// CreateCommitSound is a two-partial bell for an accepted edit
func CreateCommitSound(rate beep.SampleRate, volume float64) beep.Streamer {
	// Fundamental (A5)
	fund := NewOscillator(880.0, commitDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, commitDuration, commitAttack, commitFundamentalRel, rate)

	// Octave up
	over := NewOscillator(1760.0, commitDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, commitDuration, commitAttack, commitOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, volume)
}
