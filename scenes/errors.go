package scenes

import "errors"

var (
	ErrMalformedVector = errors.New("scenes: expected two comma separated numbers")
	ErrMalformedColor  = errors.New("scenes: invalid color")
	ErrUnknownScene    = errors.New("scenes: unknown scene")
	ErrMalformedNumber = errors.New("scenes: invalid number")
)
