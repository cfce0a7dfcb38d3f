package scenes

import (
	"fmt"

	"github.com/milk9111/gravityballs/physics"
	"gopkg.in/yaml.v3"
)

// Scene is the on-disk description of a simulation.
type Scene struct {
	Name       string          `yaml:"name"`
	Config     *ConfigSpec     `yaml:"config,omitempty"`
	Bodies     []BodySpec      `yaml:"bodies"`
	Generators []GeneratorSpec `yaml:"generators,omitempty"`
}

// ConfigSpec overrides physics.DefaultConfig. Absent fields keep the
// defaults, an explicit zero is kept as zero.
type ConfigSpec struct {
	G                *float64 `yaml:"g,omitempty"`
	UpdatesPerSecond *int     `yaml:"updates_per_second,omitempty"`
	ForceMultiplier  *float64 `yaml:"force_multiplier,omitempty"`
	MinSeparation    *float64 `yaml:"min_separation,omitempty"`
}

// ConfigSpecOf spells out every field of cfg.
func ConfigSpecOf(cfg physics.Config) *ConfigSpec {
	return &ConfigSpec{
		G:                &cfg.G,
		UpdatesPerSecond: &cfg.UpdatesPerSecond,
		ForceMultiplier:  &cfg.ForceMultiplier,
		MinSeparation:    &cfg.MinSeparation,
	}
}

type BodySpec struct {
	Name      string     `yaml:"name,omitempty"`
	Position  YAMLVector `yaml:"position"`
	Velocity  YAMLVector `yaml:"velocity"`
	Mass      float64    `yaml:"mass"`
	Radius    float64    `yaml:"radius"`
	Color     *YAMLColor `yaml:"color,omitempty"`
	NameColor *YAMLColor `yaml:"name_color,omitempty"`
	Layer     int        `yaml:"layer,omitempty"`
}

// Spawn is a validated body ready to be added to a simulation.
type Spawn struct {
	Body  *physics.Body
	Layer int
}

func LoadScene(name string) (Scene, error) {
	data, err := Load(name)
	if err != nil {
		return Scene{}, fmt.Errorf("scenes: load %s: %w", name, err)
	}
	return Parse(data)
}

func Parse(data []byte) (Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scene{}, fmt.Errorf("scenes: unmarshal: %w", err)
	}
	return s, nil
}

func (s Scene) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// ResolveConfig applies the scene overrides to the defaults and validates
// the result.
func (s Scene) ResolveConfig() (physics.Config, error) {
	cfg := physics.DefaultConfig()
	if c := s.Config; c != nil {
		if c.G != nil {
			cfg.G = *c.G
		}
		if c.UpdatesPerSecond != nil {
			cfg.UpdatesPerSecond = *c.UpdatesPerSecond
		}
		if c.ForceMultiplier != nil {
			cfg.ForceMultiplier = *c.ForceMultiplier
		}
		if c.MinSeparation != nil {
			cfg.MinSeparation = *c.MinSeparation
		}
	}
	if err := cfg.Validate(); err != nil {
		return physics.Config{}, fmt.Errorf("scenes: %s: %w", s.Name, err)
	}
	return cfg, nil
}

// Build resolves config, runs generators and validates every body.
func (s Scene) Build() (physics.Config, []Spawn, error) {
	cfg, err := s.ResolveConfig()
	if err != nil {
		return physics.Config{}, nil, err
	}

	specs := append([]BodySpec(nil), s.Bodies...)
	for _, g := range s.Generators {
		generated, err := RunGenerator(g, cfg)
		if err != nil {
			return physics.Config{}, nil, fmt.Errorf("scenes: %s: %w", s.Name, err)
		}
		specs = append(specs, generated...)
	}

	spawns := make([]Spawn, 0, len(specs))
	for i, spec := range specs {
		b, err := spec.Body()
		if err != nil {
			return physics.Config{}, nil, fmt.Errorf("scenes: %s: body %d: %w", s.Name, i, err)
		}
		spawns = append(spawns, Spawn{Body: b, Layer: spec.Layer})
	}
	return cfg, spawns, nil
}

func (b BodySpec) Body() (*physics.Body, error) {
	opts := []physics.BodyOption{}
	if b.Name != "" {
		opts = append(opts, physics.WithName(b.Name))
	}
	if b.Color != nil {
		opts = append(opts, physics.WithColor(b.Color.NRGBA))
	}
	if b.NameColor != nil {
		opts = append(opts, physics.WithNameColor(b.NameColor.NRGBA))
	}
	return physics.NewBody(b.Position.Vector2, b.Velocity.Vector2, b.Mass, b.Radius, opts...)
}

// FromBodies captures a running simulation as a scene. Every config field
// and each body's draw layer are written out so the scene reloads as is.
func FromBodies(name string, cfg physics.Config, bodies []Spawn) Scene {
	s := Scene{
		Name:   name,
		Config: ConfigSpecOf(cfg),
		Bodies: make([]BodySpec, 0, len(bodies)),
	}
	for _, sp := range bodies {
		b := sp.Body
		if b == nil {
			continue
		}
		s.Bodies = append(s.Bodies, BodySpec{
			Name:      b.Name,
			Position:  YAMLVector{b.Position},
			Velocity:  YAMLVector{b.Velocity},
			Mass:      b.Mass,
			Radius:    b.Radius,
			Color:     &YAMLColor{b.Color},
			NameColor: &YAMLColor{b.NameColor},
			Layer:     sp.Layer,
		})
	}
	return s
}
