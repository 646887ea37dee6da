// Package window generates tapering windows used for edge fades and for
// spectral analysis of rendered assets.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeHann Type = iota
	TypeRamp
)

// Slope controls which edge(s) of the window are tapered.
type Slope int

const (
	// SlopeSymmetric tapers both edges.
	SlopeSymmetric Slope = iota
	// SlopeLeft tapers only the leading edge (a fade-in).
	SlopeLeft
	// SlopeRight tapers only the trailing edge (a fade-out).
	SlopeRight
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
	slope    Slope
}

func defaultConfig() config {
	return config{slope: SlopeSymmetric}
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// WithSlope configures edge tapering mode.
func WithSlope(s Slope) Option {
	return func(c *config) {
		c.slope = s
	}
}

// Generate returns window coefficients of the given length.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := defaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		x := samplePosition(i, length, cfg.periodic)
		out[i] = evalWindow(t, x, cfg.slope)
	}

	return out
}

// Hann returns Hann window coefficients.
func Hann(size int, opts ...Option) ([]float64, error) {
	return Generate(TypeHann, size, opts...), validateLength(size)
}

// Ramp returns a linear fade of the given length: 0→1 for SlopeLeft,
// 1→0 for SlopeRight and a triangle for SlopeSymmetric. Both end points are
// included, so a fade-in starts at exactly 0 and ends at exactly 1.
func Ramp(size int, slope Slope) ([]float64, error) {
	return Generate(TypeRamp, size, WithSlope(slope)), validateLength(size)
}

// CoherentGain returns the mean coefficient value, the amplitude scaling a
// window applies to a bin-centred sinusoid.
func CoherentGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return sum / float64(len(coeffs)), nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

func evalWindow(t Type, x float64, slope Slope) float64 {
	if t == TypeRamp {
		return rampAt(x, slope)
	}

	// One-sided slopes keep the tapered half and hold 1 across the other.
	switch slope {
	case SlopeLeft:
		if x >= 0.5 {
			return 1
		}
	case SlopeRight:
		if x <= 0.5 {
			return 1
		}
	}

	return 0.5 - 0.5*math.Cos(2*math.Pi*x)
}

func rampAt(x float64, slope Slope) float64 {
	switch slope {
	case SlopeLeft:
		return x
	case SlopeRight:
		return 1 - x
	default:
		return 1 - math.Abs(2*x-1)
	}
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
