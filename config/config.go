package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/broadside/core"
	"github.com/lixenwraith/broadside/parameter"
)

// Sentinel validation errors
var (
	ErrTickRate = errors.New("tick_rate must be between 1 and 1000")
	ErrVolume   = errors.New("audio.volume must be between 0 and 1")
	ErrWorkers  = errors.New("assets.workers must be positive")
	ErrView     = errors.New("camera.view must be third_person or birds_eye")
)

// Config holds the runtime settings of a session
// Gameplay constants live in package parameter and are not configurable
type Config struct {
	TickRate int    `yaml:"tick_rate"`
	Seed     string `yaml:"seed"` // Empty seeds from the clock

	Audio  AudioConfig  `yaml:"audio"`
	Assets AssetsConfig `yaml:"assets"`
	Camera CameraConfig `yaml:"camera"`
	Log    LogConfig    `yaml:"log"`
}

// AudioConfig controls the sound manager
type AudioConfig struct {
	Muted  bool    `yaml:"muted"`
	Volume float64 `yaml:"volume"`
}

// AssetsConfig controls the asynchronous model loader
type AssetsConfig struct {
	LoadDelay time.Duration `yaml:"load_delay"` // Simulated per-model latency
	Workers   int           `yaml:"workers"`
}

// CameraConfig selects the initial camera preset
type CameraConfig struct {
	View string `yaml:"view"`
}

// LogConfig controls the file logger
type LogConfig struct {
	Debug bool   `yaml:"debug"`
	Dir   string `yaml:"dir"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		TickRate: parameter.TickRate,
		Audio: AudioConfig{
			Volume: 0.6,
		},
		Assets: AssetsConfig{
			LoadDelay: 30 * time.Millisecond,
			Workers:   4,
		},
		Camera: CameraConfig{
			View: core.ViewThirdPerson.String(),
		},
		Log: LogConfig{
			Dir: "logs",
		},
	}
}

// Load reads a YAML file over the defaults
// A missing file returns defaults
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	var errs []error
	if c.TickRate < 1 || c.TickRate > 1000 {
		errs = append(errs, ErrTickRate)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, ErrVolume)
	}
	if c.Assets.Workers < 1 {
		errs = append(errs, ErrWorkers)
	}
	if _, ok := parseView(c.Camera.View); !ok {
		errs = append(errs, ErrView)
	}
	return errors.Join(errs...)
}

// TickInterval returns the scheduler period for the tick rate
func (c Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return parameter.TickInterval
	}
	return time.Second / time.Duration(c.TickRate)
}

// SeedValue hashes the seed string into a PRNG seed
// Returns false for an empty seed
func (c Config) SeedValue() (uint64, bool) {
	if c.Seed == "" {
		return 0, false
	}
	return xxhash.Sum64String(c.Seed), true
}

// CameraView returns the configured preset, third person if unrecognised
func (c Config) CameraView() core.CameraView {
	v, _ := parseView(c.Camera.View)
	return v
}

func parseView(s string) (core.CameraView, bool) {
	switch s {
	case core.ViewThirdPerson.String(), "":
		return core.ViewThirdPerson, true
	case core.ViewBirdsEye.String():
		return core.ViewBirdsEye, true
	default:
		return core.ViewThirdPerson, false
	}
}
