package envelope

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-sfx/dsp/core"
)

// Shape describes an envelope. The set of shapes is closed; use one of the
// types in this package.
type Shape interface {
	render(dst []float64, sampleRate float64) error
}

// Linear ramps from From to To across the whole duration, both ends included.
type Linear struct {
	From float64
	To   float64
}

// ExponentialDecay falls as exp(-t/Tau), Tau in seconds.
type ExponentialDecay struct {
	Tau float64
}

// ADSR is an optional linear attack from 0 to 1 over AttackFrac of the
// duration, followed by exp(-x) with x running from 0 to DecayRate over the
// remaining samples.
type ADSR struct {
	AttackFrac float64
	DecayRate  float64
}

// Gate holds Level with short linear ramps of Ramp samples at each end. The
// ramps are only applied when the duration is longer than both ramps.
type Gate struct {
	Level float64
	Ramp  int
}

// Trapezoid holds Sustain between an attack ramp 0→Peak over AttackFrac of
// the duration and a release ramp Peak→End over the last ReleaseFrac. When
// the two overlap the release wins.
type Trapezoid struct {
	AttackFrac  float64
	ReleaseFrac float64
	Peak        float64
	Sustain     float64
	End         float64
}

// Flat returns a unity envelope.
func Flat() Linear {
	return Linear{From: 1, To: 1}
}

// Render returns n multipliers for shape at sampleRate.
func Render(shape Shape, n int, sampleRate float64) ([]float64, error) {
	if err := validateLength(n); err != nil {
		return nil, err
	}
	if err := validateSampleRate(sampleRate); err != nil {
		return nil, err
	}
	if shape == nil {
		return nil, ErrUnknownShape
	}

	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}

	if err := shape.render(out, sampleRate); err != nil {
		return nil, err
	}

	return out, nil
}

func (s Linear) render(dst []float64, _ float64) error {
	if err := validateLevels(s.From, s.To); err != nil {
		return err
	}

	core.Linspace(dst, s.From, s.To)
	return nil
}

func (s ExponentialDecay) render(dst []float64, sampleRate float64) error {
	if s.Tau <= 0 || math.IsInf(s.Tau, 0) || math.IsNaN(s.Tau) {
		return fmt.Errorf("envelope: decay time constant must be > 0 and finite: %f", s.Tau)
	}

	for i := range dst {
		dst[i] = math.Exp(-core.TimeAt(i, sampleRate) / s.Tau)
	}

	return nil
}

func (s ADSR) render(dst []float64, _ float64) error {
	if s.AttackFrac < 0 || s.AttackFrac > 1 {
		return fmt.Errorf("envelope: attack fraction must be in [0,1]: %f", s.AttackFrac)
	}
	if s.DecayRate < 0 {
		return fmt.Errorf("envelope: decay rate must be >= 0: %f", s.DecayRate)
	}

	// A fractional attack shorter than one sample is skipped entirely.
	attack := int(math.Floor(s.AttackFrac * float64(len(dst))))
	if attack >= 1 {
		core.Linspace(dst[:attack], 0, 1)
	} else {
		attack = 0
	}

	decay := dst[attack:]
	core.Linspace(decay, 0, s.DecayRate)
	for i, x := range decay {
		decay[i] = math.Exp(-x)
	}

	return nil
}

func (s Gate) render(dst []float64, _ float64) error {
	if s.Ramp < 0 {
		return fmt.Errorf("envelope: gate ramp must be >= 0: %d", s.Ramp)
	}
	if err := validateLevels(s.Level); err != nil {
		return err
	}

	for i := range dst {
		dst[i] = s.Level
	}

	n := len(dst)
	if s.Ramp > 0 && n > 2*s.Ramp {
		core.Linspace(dst[:s.Ramp], 0, s.Level)
		core.Linspace(dst[n-s.Ramp:], s.Level, 0)
	}

	return nil
}

func (s Trapezoid) render(dst []float64, _ float64) error {
	if s.AttackFrac < 0 || s.ReleaseFrac < 0 || s.AttackFrac > 1 || s.ReleaseFrac > 1 {
		return fmt.Errorf("envelope: trapezoid fractions must be in [0,1]: %f, %f", s.AttackFrac, s.ReleaseFrac)
	}
	if err := validateLevels(s.Peak, s.Sustain, s.End); err != nil {
		return err
	}

	for i := range dst {
		dst[i] = s.Sustain
	}

	n := len(dst)
	if attack := int(float64(n) * s.AttackFrac); attack > 0 {
		core.Linspace(dst[:attack], 0, s.Peak)
	}
	if release := int(float64(n) * s.ReleaseFrac); release > 0 {
		core.Linspace(dst[n-release:], s.Peak, s.End)
	}

	return nil
}
