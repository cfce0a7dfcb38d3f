package physics

import (
	"fmt"
	"time"

	"github.com/milk9111/gravityballs/common"
)

const (
	// DefaultG is a tuned simulation constant, not the physical one.
	DefaultG                = 6.674e-12
	DefaultUpdatesPerSecond = 60
	DefaultForceMultiplier  = 1.0
	DefaultMinSeparation    = 1e-3
)

// Config holds the tunables threaded through every step.
type Config struct {
	G                float64 `yaml:"g"`
	UpdatesPerSecond int     `yaml:"updates_per_second"`
	ForceMultiplier  float64 `yaml:"force_multiplier"`
	// MinSeparation is the smallest distance used in the inverse-square law.
	MinSeparation float64 `yaml:"min_separation"`
}

func DefaultConfig() Config {
	return Config{
		G:                DefaultG,
		UpdatesPerSecond: DefaultUpdatesPerSecond,
		ForceMultiplier:  DefaultForceMultiplier,
		MinSeparation:    DefaultMinSeparation,
	}
}

// DeltaTime is the fixed timestep in seconds.
func (c Config) DeltaTime() float64 {
	return 1 / float64(c.UpdatesPerSecond)
}

// Interval is DeltaTime as a timer period.
func (c Config) Interval() time.Duration {
	return time.Duration(c.DeltaTime() * float64(time.Second))
}

func (c Config) Validate() error {
	switch {
	case !common.IsFinite(c.G):
		return fmt.Errorf("%w: g=%v", ErrInvalidConfig, c.G)
	case c.UpdatesPerSecond <= 0:
		return fmt.Errorf("%w: updates_per_second=%d", ErrInvalidConfig, c.UpdatesPerSecond)
	case !common.IsFinite(c.ForceMultiplier):
		return fmt.Errorf("%w: force_multiplier=%v", ErrInvalidConfig, c.ForceMultiplier)
	case !common.IsFinite(c.MinSeparation) || c.MinSeparation < 0:
		return fmt.Errorf("%w: min_separation=%v", ErrInvalidConfig, c.MinSeparation)
	}
	return nil
}
