package envelope

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNegativeLength is returned when a negative sample count is requested.
	ErrNegativeLength = errors.New("envelope: length must be >= 0")
	// ErrUnknownShape is returned for a nil or foreign Shape.
	ErrUnknownShape = errors.New("envelope: unknown shape")
)

func validateLength(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}
	return nil
}

func validateSampleRate(sampleRate float64) error {
	if sampleRate <= 0 {
		return fmt.Errorf("envelope: sample rate must be > 0: %f", sampleRate)
	}
	return nil
}

func validateLevels(levels ...float64) error {
	for _, v := range levels {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("envelope: level must be >= 0 and finite: %f", v)
		}
	}
	return nil
}
