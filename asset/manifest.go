package asset

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/broadside/core"
)

//go:embed models.yaml
var defaultManifest []byte

// ErrUnknownKind is returned for kinds without a manifest entry
var ErrUnknownKind = errors.New("no model for kind")

// Model is one manifest entry
type Model struct {
	File  string  `yaml:"file"`
	Glyph string  `yaml:"glyph"`
	Color string  `yaml:"color"`
	Scale float64 `yaml:"scale"`
}

// Manifest maps kind names to models
type Manifest struct {
	Models map[string]Model `yaml:"models"`
}

// ParseManifest decodes and validates a YAML manifest
func ParseManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest: %w", err)
	}
	for name, model := range m.Models {
		if _, err := model.visual(); err != nil {
			return m, fmt.Errorf("model %s: %w", name, err)
		}
	}
	return m, nil
}

// DefaultManifest returns the embedded manifest
func DefaultManifest() (Manifest, error) {
	return ParseManifest(defaultManifest)
}

// Visual resolves the visual for kind
func (m Manifest) Visual(kind core.Kind) (core.Visual, error) {
	model, ok := m.Models[kind.String()]
	if !ok {
		return core.Visual{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return model.visual()
}

func (m Model) visual() (core.Visual, error) {
	glyph, size := utf8.DecodeRuneInString(m.Glyph)
	if size == 0 || glyph == utf8.RuneError {
		return core.Visual{}, fmt.Errorf("invalid glyph %q", m.Glyph)
	}
	color, err := parseColor(m.Color)
	if err != nil {
		return core.Visual{}, err
	}
	scale := m.Scale
	if scale <= 0 {
		scale = 1
	}
	return core.Visual{Model: m.File, Glyph: glyph, Color: color, Scale: scale}, nil
}

// parseColor reads #RRGGBB
func parseColor(s string) (uint32, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return uint32(v), nil
}
