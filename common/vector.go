package common

import (
	"fmt"
	"math"
)

// Vector2 is a 2D vector with value semantics. Every method returns a new
// vector and leaves the receiver untouched.
type Vector2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Zero returns (0, 0).
func Zero() Vector2 {
	return Vector2{}
}

func RadToDeg(rad float64) float64 {
	return 360 * rad / (2 * math.Pi)
}

func DegToRad(deg float64) float64 {
	return (deg / 360) * 2 * math.Pi
}

// Rotated rotates v counter-clockwise by angle radians.
func (v Vector2) Rotated(angle float64) Vector2 {
	sin, cos := math.Sincos(angle)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Angle is the angle to the positive x-axis in (-pi, pi].
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return v.Add(o.Scale(-1))
}

func (v Vector2) Scale(k float64) Vector2 {
	return Vector2{X: v.X * k, Y: v.Y * k}
}

// Distance returns |o - v|.
func (v Vector2) Distance(o Vector2) float64 {
	return o.Add(v.Scale(-1)).Magnitude()
}

// Normalized returns v scaled to unit length. The zero vector normalizes to
// itself.
func (v Vector2) Normalized() Vector2 {
	mag := v.Magnitude()
	if mag == 0 {
		return Zero()
	}
	return Vector2{X: v.X / mag, Y: v.Y / mag}
}

func (v Vector2) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

func (v Vector2) String() string {
	return fmt.Sprintf("Vector2 (%g , %g)", v.X, v.Y)
}
