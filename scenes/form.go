package scenes

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/gravityballs/common"
	"github.com/milk9111/gravityballs/physics"
)

// BodyForm is the raw text of the add-body dialog.
type BodyForm struct {
	Position  string
	Velocity  string
	Mass      string
	Radius    string
	Color     string
	Name      string
	NameColor string
}

func DefaultBodyForm() BodyForm {
	return BodyForm{
		Position:  "(200 , 200)",
		Velocity:  "(0 , 0)",
		Mass:      "10000000000000",
		Radius:    "10",
		Color:     "#304050",
		Name:      "gravity ball!",
		NameColor: "#efe0e2",
	}
}

// Body validates every field and returns a body ready for the simulation.
// Empty colour and name fields fall back to the body defaults.
func (f BodyForm) Body() (*physics.Body, error) {
	pos, err := ParseVector(f.Position)
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	vel, err := ParseVector(f.Velocity)
	if err != nil {
		return nil, fmt.Errorf("velocity: %w", err)
	}
	mass, err := parseNumber(f.Mass)
	if err != nil {
		return nil, fmt.Errorf("mass: %w", err)
	}
	radius, err := parseNumber(f.Radius)
	if err != nil {
		return nil, fmt.Errorf("radius: %w", err)
	}

	opts := []physics.BodyOption{}
	if name := strings.TrimSpace(f.Name); name != "" {
		opts = append(opts, physics.WithName(name))
	}
	if strings.TrimSpace(f.Color) != "" {
		c, err := ParseColor(f.Color)
		if err != nil {
			return nil, fmt.Errorf("color: %w", err)
		}
		opts = append(opts, physics.WithColor(c))
	}
	if strings.TrimSpace(f.NameColor) != "" {
		c, err := ParseColor(f.NameColor)
		if err != nil {
			return nil, fmt.Errorf("name color: %w", err)
		}
		opts = append(opts, physics.WithNameColor(c))
	}

	return physics.NewBody(pos, vel, mass, radius, opts...)
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !common.IsFinite(v) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return v, nil
}
