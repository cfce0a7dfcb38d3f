package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
