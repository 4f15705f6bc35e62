package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/broadside/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves for a fixed duration
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
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

		val := waveSample(o.wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// waveSample evaluates one wave at phase in [0, 1)
func waveSample(wave WaveType, phase float64) float64 {
	switch wave {
	case WaveSquare:
		if phase < 0.5 {
			return 1.0
		}
		return -1.0
	case WaveSaw:
		return 2.0 * (phase - 0.5)
	case WaveNoise:
		return rand.Float64()*2 - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// sweep is an oscillator whose frequency glides linearly from one value to another
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewSweep creates a gliding oscillator
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		progress := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*progress

		val := waveSample(s.wave, s.phase)
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

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
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so 0 volume maps to silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Effect durations
const (
	explosionDuration = 600 * time.Millisecond
	treasureNote      = 90 * time.Millisecond
	gameOverDuration  = 1400 * time.Millisecond
	cannonDuration    = 180 * time.Millisecond
)

// CreateExplosionSound is a noise burst over a low rumble
func CreateExplosionSound(rate beep.SampleRate) beep.Streamer {
	noise := NewEnvelope(NewOscillator(0, explosionDuration, WaveNoise, rate),
		explosionDuration, 5*time.Millisecond, 500*time.Millisecond, rate)
	rumble := NewEnvelope(NewSweep(90, 40, explosionDuration, WaveSine, rate),
		explosionDuration, 5*time.Millisecond, 400*time.Millisecond, rate)
	return beep.Mix(newVolume(noise, 0.5), newVolume(rumble, 0.6))
}

// CreateTreasureSound is a rising three-note chime
func CreateTreasureSound(rate beep.SampleRate) beep.Streamer {
	note := func(freq float64) beep.Streamer {
		return NewEnvelope(NewOscillator(freq, treasureNote, WaveSquare, rate),
			treasureNote, 2*time.Millisecond, 60*time.Millisecond, rate)
	}
	// E5, G#5, B5
	return newVolume(beep.Seq(note(659.25), note(830.61), note(987.77)), 0.35)
}

// CreateGameOverSound is a long descending saw
func CreateGameOverSound(rate beep.SampleRate) beep.Streamer {
	s := NewEnvelope(NewSweep(330, 82.41, gameOverDuration, WaveSaw, rate),
		gameOverDuration, 20*time.Millisecond, 600*time.Millisecond, rate)
	return newVolume(s, 0.4)
}

// CreateCannonSound is a short thump with a noise crack
func CreateCannonSound(rate beep.SampleRate) beep.Streamer {
	thump := NewEnvelope(NewSweep(140, 50, cannonDuration, WaveSine, rate),
		cannonDuration, 2*time.Millisecond, 150*time.Millisecond, rate)
	crack := NewEnvelope(NewOscillator(0, cannonDuration/3, WaveNoise, rate),
		cannonDuration/3, time.Millisecond, 50*time.Millisecond, rate)
	return beep.Mix(newVolume(thump, 0.7), newVolume(crack, 0.3))
}

// GetSoundEffect returns the streamer for an effect, nil if unknown
func GetSoundEffect(effect core.Effect, rate beep.SampleRate) beep.Streamer {
	switch effect {
	case core.EffectExplosion:
		return CreateExplosionSound(rate)
	case core.EffectTreasure:
		return CreateTreasureSound(rate)
	case core.EffectGameOver:
		return CreateGameOverSound(rate)
	case core.EffectCannon:
		return CreateCannonSound(rate)
	default:
		return nil
	}
}
