package physics

import (
	"fmt"
	"image/color"

	"github.com/milk9111/gravityballs/common"
)

const DefaultName = "wow!"

var (
	DefaultColor     = color.NRGBA{R: 0x30, G: 0x40, B: 0x50, A: 0xff}
	DefaultNameColor = color.NRGBA{R: 0xef, G: 0xe0, B: 0xe2, A: 0xff}
)

// Surface is the drawing target a body renders onto.
type Surface interface {
	Clear()
	FillCircle(center common.Vector2, radius float64, clr color.Color)
}

// Body is a point mass with a visual radius. Radius does not take part in
// the physics.
type Body struct {
	Position  common.Vector2
	Velocity  common.Vector2
	Mass      float64
	Radius    float64
	Color     color.NRGBA
	Name      string
	NameColor color.NRGBA
}

type BodyOption func(*Body)

func WithColor(c color.NRGBA) BodyOption {
	return func(b *Body) { b.Color = c }
}

func WithName(name string) BodyOption {
	return func(b *Body) { b.Name = name }
}

func WithNameColor(c color.NRGBA) BodyOption {
	return func(b *Body) { b.NameColor = c }
}

// NewBody builds a validated body. Colours and name fall back to the
// defaults unless overridden.
func NewBody(position, velocity common.Vector2, mass, radius float64, opts ...BodyOption) (*Body, error) {
	b := &Body{
		Position:  position,
		Velocity:  velocity,
		Mass:      mass,
		Radius:    radius,
		Color:     DefaultColor,
		Name:      DefaultName,
		NameColor: DefaultNameColor,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate rejects bodies that would turn non-finite on the first step.
func (b *Body) Validate() error {
	if !common.IsFinite(b.Mass) || b.Mass <= 0 {
		return fmt.Errorf("%w: %q has mass %v", ErrInvalidMass, b.Name, b.Mass)
	}
	if !common.IsFinite(b.Radius) || b.Radius < 0 {
		return fmt.Errorf("%w: %q has radius %v", ErrInvalidRadius, b.Name, b.Radius)
	}
	if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
		return fmt.Errorf("%w: %q at %v moving %v", ErrNonFinite, b.Name, b.Position, b.Velocity)
	}
	return nil
}

// ApplyImpulse changes velocity by force*dt/mass.
func (b *Body) ApplyImpulse(force common.Vector2, dt float64) {
	b.Velocity = b.Velocity.Add(force.Scale(dt / b.Mass))
}

// ApplyAttraction pulls b and other toward each other with equal and
// opposite impulses over one timestep. Coincident bodies exert no force.
func (b *Body) ApplyAttraction(other *Body, cfg Config) {
	dir := other.Position.Sub(b.Position).Normalized()
	if dir == common.Zero() {
		return
	}

	distance := max(b.Position.Distance(other.Position), cfg.MinSeparation)
	magnitude := cfg.G * b.Mass * other.Mass / (distance * distance)
	force := dir.Scale(magnitude * cfg.ForceMultiplier)

	dt := cfg.DeltaTime()
	b.ApplyImpulse(force, dt)
	other.ApplyImpulse(force.Scale(-1), dt)
}

// UpdatePosition advances one timestep. Velocity is already in distance
// per tick.
func (b *Body) UpdatePosition() {
	b.Position = b.Position.Add(b.Velocity)
}

func (b *Body) Draw(s Surface) {
	s.FillCircle(b.Position, b.Radius, b.Color)
}

// Momentum returns mass*velocity.
func (b *Body) Momentum() common.Vector2 {
	return b.Velocity.Scale(b.Mass)
}
