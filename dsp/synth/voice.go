package synth

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// ErrLengthMismatch is returned when a waveform and its envelope differ in
// length.
var ErrLengthMismatch = errors.New("synth: waveform and envelope lengths differ")

// Voice is one finished, enveloped sound event.
type Voice struct {
	samples []float64
}

// NewVoice multiplies wave by env element-wise. Both must have equal length.
func NewVoice(wave, env []float64) (Voice, error) {
	if len(wave) != len(env) {
		return Voice{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(wave), len(env))
	}

	out := make([]float64, len(wave))
	if len(out) > 0 {
		vecmath.MulBlock(out, wave, env)
	}

	return Voice{samples: out}, nil
}

// VoiceFromSamples wraps already finished samples without copying.
func VoiceFromSamples(samples []float64) Voice {
	return Voice{samples: samples}
}

// Samples returns the voice samples. Callers must not modify them.
func (v Voice) Samples() []float64 {
	return v.samples
}

// Len returns the voice length in samples.
func (v Voice) Len() int {
	return len(v.samples)
}

// Scaled returns a copy of v multiplied by gain.
func (v Voice) Scaled(gain float64) Voice {
	out := make([]float64, len(v.samples))
	if len(out) > 0 {
		vecmath.ScaleBlock(out, v.samples, gain)
	}
	return Voice{samples: out}
}
