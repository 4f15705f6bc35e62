package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/broadside/core"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Config is the audio section of the game configuration
type Config struct {
	Muted  bool
	Volume float64 // Linear master gain in [0, 1]
}

// SoundManager plays the music loop and one-shot effects through a single mixer
// Every call is fire-and-forget and a no-op until Initialize succeeds or when muted
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	track       core.Track
	volume      float64
	muted       bool
	initialized bool
	logger      *zap.Logger

	// lock guards mixer mutation against the speaker goroutine
	lock   func()
	unlock func()
}

// NewSoundManager creates a new sound manager
func NewSoundManager(cfg Config, logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	vol := cfg.Volume
	if vol < 0 {
		vol = 0
	} else if vol > 1 {
		vol = 1
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: vol,
		muted:  cfg.Muted,
		logger: logger.Named("audio"),
		lock:   func() {},
		unlock: func() {},
	}
}

// Initialize opens the audio device and starts the mixer
// A missing device returns an error; the manager stays usable as a silent sink
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || sm.muted {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio device: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.lock = speaker.Lock
	sm.unlock = speaker.Unlock
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and releases the device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.lock()
	if sm.music != nil {
		sm.music.Paused = true
	}
	sm.mixer.Clear()
	sm.unlock()

	speaker.Close()
	sm.music = nil
	sm.track = core.TrackNone
	sm.initialized = false
	sm.lock = func() {}
	sm.unlock = func() {}
}

// enabled reports whether sounds are actually produced, caller holds mu
func (sm *SoundManager) enabled() bool {
	return sm.initialized && !sm.muted
}

// PlayLoop starts an endless track, replacing the current one
// Restarting the track already playing is a no-op
func (sm *SoundManager) PlayLoop(track core.Track) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.enabled() {
		return
	}
	if sm.music != nil && !sm.music.Paused && sm.track == track {
		return
	}

	streamer := GetTrack(track, sampleRate)
	if streamer == nil {
		sm.logger.Warn("unknown track", zap.Int("track", int(track)))
		return
	}

	ctrl := &beep.Ctrl{Streamer: newVolume(streamer, sm.volume), Paused: false}
	sm.lock()
	if sm.music != nil {
		sm.music.Paused = true
		sm.music.Streamer = nil
	}
	sm.mixer.Add(ctrl)
	sm.unlock()

	sm.music = ctrl
	sm.track = track
}

// Stop silences the music loop; one-shots in flight finish
func (sm *SoundManager) Stop() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.music == nil {
		return
	}
	sm.lock()
	sm.music.Paused = true
	// A nil streamer drains the Ctrl so the mixer drops it
	sm.music.Streamer = nil
	sm.unlock()

	sm.music = nil
	sm.track = core.TrackNone
}

// PlayOneShot mixes a finite effect over whatever is playing
func (sm *SoundManager) PlayOneShot(effect core.Effect) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.enabled() {
		return
	}

	streamer := GetSoundEffect(effect, sampleRate)
	if streamer == nil {
		sm.logger.Warn("unknown effect", zap.Stringer("effect", effect))
		return
	}

	sm.lock()
	sm.mixer.Add(newVolume(streamer, sm.volume))
	sm.unlock()
}

// Playing returns the current track, TrackNone when silent
func (sm *SoundManager) Playing() core.Track {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.track
}

// Voices returns the number of streamers in the mixer
func (sm *SoundManager) Voices() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.lock()
	defer sm.unlock()
	return sm.mixer.Len()
}
