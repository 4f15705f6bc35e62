package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/broadside/core"
)

// note is one melody step; freq 0 is a rest
type note struct {
	freq  float64
	beats float64
}

// shanty is a short 6/8 hornpipe phrase in D minor
var shanty = []note{
	{293.66, 1}, {293.66, 0.5}, {349.23, 0.5}, {440.00, 1}, {392.00, 1},
	{349.23, 1}, {329.63, 0.5}, {293.66, 0.5}, {261.63, 2},
	{293.66, 1}, {349.23, 0.5}, {392.00, 0.5}, {440.00, 1}, {466.16, 1},
	{440.00, 1}, {392.00, 0.5}, {349.23, 0.5}, {293.66, 2},
	{0, 1},
}

const shantyBeat = 280 * time.Millisecond

// MelodyGenerator plays a note sequence forever with a drone an octave below the root
// Endless by construction; pause it through beep.Ctrl
type MelodyGenerator struct {
	sr     beep.SampleRate
	notes  []note
	beat   int
	bounds []int // cumulative end sample of each note
	total  int
	root   float64

	pos        int
	leadPhase  float64
	dronePhase float64
}

// NewMelodyGenerator creates a looping melody generator
func NewMelodyGenerator(sr beep.SampleRate, notes []note, beat time.Duration) *MelodyGenerator {
	g := &MelodyGenerator{
		sr:    sr,
		notes: notes,
		beat:  sr.N(beat),
	}
	for _, n := range notes {
		g.total += int(n.beats * float64(g.beat))
		g.bounds = append(g.bounds, g.total)
		if g.root == 0 && n.freq > 0 {
			g.root = n.freq
		}
	}
	return g
}

// current returns the active note and the sample offset within it
func (g *MelodyGenerator) current() (note, int, int) {
	at := g.pos % g.total
	start := 0
	for i, end := range g.bounds {
		if at < end {
			return g.notes[i], at - start, end - start
		}
		start = end
	}
	return note{}, 0, 1
}

func (g *MelodyGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.total == 0 {
		for i := range samples {
			samples[i] = [2]float64{}
		}
		return len(samples), true
	}
	for i := range samples {
		cur, offset, length := g.current()

		lead := 0.0
		if cur.freq > 0 {
			// Pluck: fast attack, exponential decay across the note
			env := math.Exp(-3 * float64(offset) / float64(length))
			if offset < g.sr.N(5*time.Millisecond) {
				env *= float64(offset) / float64(g.sr.N(5*time.Millisecond))
			}
			lead = 0.22 * env * waveSample(WaveSquare, g.leadPhase)
			g.leadPhase += cur.freq / float64(g.sr)
			g.leadPhase -= math.Floor(g.leadPhase)
		}

		drone := 0.08 * math.Sin(2*math.Pi*g.dronePhase)
		g.dronePhase += g.root / 2 / float64(g.sr)
		g.dronePhase -= math.Floor(g.dronePhase)

		v := lead + drone
		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *MelodyGenerator) Err() error { return nil }

// GetTrack returns the endless streamer for a track, nil if unknown
func GetTrack(track core.Track, rate beep.SampleRate) beep.Streamer {
	switch track {
	case core.TrackSeaShanty:
		return NewMelodyGenerator(rate, shanty, shantyBeat)
	default:
		return nil
	}
}
