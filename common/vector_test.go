package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func TestAngleConversion(t *testing.T) {
	cases := []struct {
		name string
		rad  float64
		deg  float64
	}{
		{"zero", 0, 0},
		{"quarter", math.Pi / 2, 90},
		{"half", math.Pi, 180},
		{"negative", -math.Pi / 4, -45},
		{"full", 2 * math.Pi, 360},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.deg, RadToDeg(c.rad), tolerance)
			assert.InDelta(t, c.rad, DegToRad(c.deg), tolerance)
		})
	}
}

func TestNormalized(t *testing.T) {
	t.Run("zero_stays_zero", func(t *testing.T) {
		n := Zero().Normalized()
		assert.Equal(t, Zero(), n)
		assert.False(t, math.IsNaN(n.X) || math.IsNaN(n.Y))
	})

	for _, v := range []Vector2{Vec(3, 4), Vec(-1, 0), Vec(0, 1e-8), Vec(1e12, -7e11), Vec(-0.3, -0.4)} {
		t.Run(v.String(), func(t *testing.T) {
			n := v.Normalized()
			assert.InDelta(t, 1, n.Magnitude(), tolerance)
			assert.InDelta(t, v.Angle(), n.Angle(), tolerance)
		})
	}
}

func TestRotated(t *testing.T) {
	v := Vec(3, -2)

	t.Run("identity", func(t *testing.T) {
		assert.Equal(t, v, v.Rotated(0))
	})

	t.Run("quarter_turn", func(t *testing.T) {
		r := Vec(1, 0).Rotated(math.Pi / 2)
		assert.InDelta(t, 0, r.X, tolerance)
		assert.InDelta(t, 1, r.Y, tolerance)
	})

	t.Run("round_trip", func(t *testing.T) {
		for _, theta := range []float64{0.1, 1, -2.5, math.Pi, 10} {
			back := v.Rotated(theta).Rotated(-theta)
			assert.InDelta(t, v.X, back.X, tolerance)
			assert.InDelta(t, v.Y, back.Y, tolerance)
		}
	})

	t.Run("does_not_mutate", func(t *testing.T) {
		orig := v
		_ = v.Rotated(1.2)
		assert.Equal(t, orig, v)
	})
}

func TestArithmetic(t *testing.T) {
	a := Vec(1, 2)
	b := Vec(-4, 6)

	assert.Equal(t, Vec(-3, 8), a.Add(b))
	assert.Equal(t, Vec(5, -4), a.Sub(b))
	assert.Equal(t, Vec(2.5, 5), a.Scale(2.5))
	assert.Equal(t, 8.0, a.Dot(b))
	assert.Equal(t, 5.0, Vec(3, 4).Magnitude())
	assert.InDelta(t, math.Pi, Vec(-1, 0).Angle(), tolerance)
	assert.Equal(t, Vec(1, 2), a, "operands are unchanged")
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]Vector2{
		{Vec(0, 0), Vec(3, 4)},
		{Vec(-10, 5), Vec(7, -2)},
		{Vec(1e6, 1e6), Vec(1e6, 1e6)},
	}
	for _, p := range pairs {
		assert.Equal(t, p[0].Distance(p[1]), p[1].Distance(p[0]))
	}
	assert.Equal(t, 5.0, Vec(0, 0).Distance(Vec(3, 4)))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, Vec(1, 2).IsFinite())
	assert.False(t, Vec(math.NaN(), 0).IsFinite())
	assert.False(t, Vec(0, math.Inf(-1)).IsFinite())
}
