package pcm

import (
	"math"

	"github.com/cwbudde/algo-sfx/dsp/core"
)

// Quantizer maps float samples to signed integers of a fixed bit depth.
type Quantizer struct {
	scale   float64
	limitLo int
	limitHi int
}

func newQuantizer(bitDepth int) Quantizer {
	var q Quantizer
	q.scale = math.Exp2(float64(bitDepth-1)) - 1
	q.limitLo = -int(q.scale) - 1
	q.limitHi = int(q.scale)
	return q
}

// Scale returns the full-scale integer value, 32767 for 16 bit.
func (q Quantizer) Scale() float64 { return q.scale }

// Sample quantizes one sample. Out-of-range and NaN inputs are clamped
// rather than rejected.
func (q Quantizer) Sample(x float64) int {
	if math.IsNaN(x) {
		return 0
	}
	v := core.Clamp(math.Round(x*q.scale), float64(q.limitLo), float64(q.limitHi))
	return int(v)
}

// Value converts a quantized integer back to a float sample.
func (q Quantizer) Value(v int) float64 {
	return float64(v) / q.scale
}
