package catalog

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-sfx/dsp/envelope"
	"github.com/cwbudde/algo-sfx/dsp/osc"
)

var (
	// ErrUnknownWave is returned for an unrecognized wave type.
	ErrUnknownWave = errors.New("catalog: unknown wave type")
	// ErrUnknownEnvelope is returned for an unrecognized envelope type.
	ErrUnknownEnvelope = errors.New("catalog: unknown envelope type")
)

type partialDef struct {
	Multiplier float64 `yaml:"multiplier"`
	Weight     float64 `yaml:"weight"`
}

// waveDef is the union of all wave fields; Type picks which apply.
type waveDef struct {
	Type        string       `yaml:"type"`
	Freq        float64      `yaml:"freq"`
	From        float64      `yaml:"from"`
	To          float64      `yaml:"to"`
	Fundamental float64      `yaml:"fundamental"`
	Partials    []partialDef `yaml:"partials"`
	Depth       float64      `yaml:"depth"`
	Rate        float64      `yaml:"rate"`
	Sigma       float64      `yaml:"sigma"`
	Amplitude   float64      `yaml:"amplitude"`
}

func (w waveDef) source() (osc.Source, error) {
	switch w.Type {
	case "sine":
		return osc.Sine{Freq: w.Freq}, nil
	case "sweep":
		return osc.Sweep{From: w.From, To: w.To}, nil
	case "harmonics":
		partials := make([]osc.Partial, len(w.Partials))
		for i, p := range w.Partials {
			partials[i] = osc.Partial{Multiplier: p.Multiplier, Weight: p.Weight}
		}
		return osc.Harmonics{Fundamental: w.Fundamental, Partials: partials}, nil
	case "vibrato":
		return osc.Vibrato{Freq: w.Freq, Depth: w.Depth, Rate: w.Rate}, nil
	case "gaussian":
		return osc.GaussianNoise{Sigma: w.Sigma}, nil
	case "uniform":
		return osc.UniformNoise{Amplitude: w.Amplitude}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWave, w.Type)
	}
}

type envelopeDef struct {
	Type    string  `yaml:"type"`
	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Tau     float64 `yaml:"tau"`
	Attack  float64 `yaml:"attack"`
	Decay   float64 `yaml:"decay"`
	Release float64 `yaml:"release"`
	Level   float64 `yaml:"level"`
	Ramp    int     `yaml:"ramp"`
	Peak    float64 `yaml:"peak"`
	Sustain float64 `yaml:"sustain"`
	End     float64 `yaml:"end"`
}

func (e envelopeDef) shape() (envelope.Shape, error) {
	switch e.Type {
	case "linear":
		return envelope.Linear{From: e.From, To: e.To}, nil
	case "exp":
		return envelope.ExponentialDecay{Tau: e.Tau}, nil
	case "adsr":
		return envelope.ADSR{AttackFrac: e.Attack, DecayRate: e.Decay}, nil
	case "gate":
		return envelope.Gate{Level: e.Level, Ramp: e.Ramp}, nil
	case "trapezoid":
		return envelope.Trapezoid{
			AttackFrac:  e.Attack,
			ReleaseFrac: e.Release,
			Peak:        e.Peak,
			Sustain:     e.Sustain,
			End:         e.End,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvelope, e.Type)
	}
}
