package osc

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-sfx/dsp/core"
)

var (
	// ErrNegativeLength is returned when a negative sample count is requested.
	ErrNegativeLength = errors.New("osc: length must be >= 0")
	// ErrUnknownSource is returned for a nil or foreign Source.
	ErrUnknownSource = errors.New("osc: unknown source")
)

// Generator renders Sources at a configured sample rate. Noise sources draw
// from the generator's random stream, so a Generator must not be shared
// between goroutines.
type Generator struct {
	cfg    core.ProcessorConfig
	seed   uint64
	seeded bool
	rng    *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes noise reproducible from seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.seeded = true
	}
}

// NewGenerator creates a generator with an unseeded random source.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a generator with processor and
// generator-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg: core.ApplyProcessorOptions(coreOpts...),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	if g.seeded {
		g.rng = rand.New(rand.NewPCG(g.seed, g.seed))
	} else {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SampleRate returns the configured sample rate.
func (g *Generator) SampleRate() float64 {
	return g.cfg.SampleRate
}

// Seed returns the configured seed and whether one was set.
func (g *Generator) Seed() (uint64, bool) {
	return g.seed, g.seeded
}

// Render returns n raw samples of src.
func (g *Generator) Render(src Source, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLength, n)
	}
	if src == nil {
		return nil, ErrUnknownSource
	}

	out := make([]float64, n)
	if n == 0 {
		return out, nil
	}

	if err := src.render(g, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (g *Generator) time(i int) float64 {
	return core.TimeAt(i, g.cfg.SampleRate)
}

func (s Sine) render(g *Generator, dst []float64) error {
	if err := validateFrequency(s.Freq); err != nil {
		return err
	}

	for i := range dst {
		dst[i] = math.Sin(2 * math.Pi * s.Freq * g.time(i))
	}

	return nil
}

func (s Sweep) render(g *Generator, dst []float64) error {
	if err := validateFrequency(s.From, s.To); err != nil {
		return err
	}

	duration := core.Seconds(len(dst), g.cfg.SampleRate)
	for i := range dst {
		t := g.time(i)
		freq := s.From + (s.To-s.From)*t/duration
		dst[i] = math.Sin(2 * math.Pi * freq * t)
	}

	return nil
}

func (s Harmonics) render(g *Generator, dst []float64) error {
	if err := validateFrequency(s.Fundamental); err != nil {
		return err
	}

	for _, p := range s.Partials {
		if err := validateFrequency(p.Multiplier); err != nil {
			return fmt.Errorf("osc: partial multiplier: %w", err)
		}
	}

	for i := range dst {
		t := g.time(i)
		sum := 0.0
		for _, p := range s.Partials {
			sum += p.Weight * math.Sin(2*math.Pi*s.Fundamental*p.Multiplier*t)
		}
		dst[i] = sum
	}

	return nil
}

func (s Vibrato) render(g *Generator, dst []float64) error {
	if err := validateFrequency(s.Freq, s.Depth, s.Rate); err != nil {
		return err
	}

	for i := range dst {
		t := g.time(i)
		freq := s.Freq + s.Depth*math.Sin(2*math.Pi*s.Rate*t)
		dst[i] = math.Sin(2 * math.Pi * freq * t)
	}

	return nil
}

func (s GaussianNoise) render(g *Generator, dst []float64) error {
	if s.Sigma < 0 || math.IsNaN(s.Sigma) || math.IsInf(s.Sigma, 0) {
		return fmt.Errorf("osc: noise sigma must be >= 0 and finite: %f", s.Sigma)
	}

	for i := range dst {
		dst[i] = s.Sigma * g.rng.NormFloat64()
	}

	return nil
}

func (s UniformNoise) render(g *Generator, dst []float64) error {
	if s.Amplitude < 0 || math.IsNaN(s.Amplitude) || math.IsInf(s.Amplitude, 0) {
		return fmt.Errorf("osc: noise amplitude must be >= 0 and finite: %f", s.Amplitude)
	}

	for i := range dst {
		dst[i] = (g.rng.Float64()*2 - 1) * s.Amplitude
	}

	return nil
}

func validateFrequency(freqs ...float64) error {
	for _, f := range freqs {
		if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("osc: frequency must be >= 0 and finite: %f", f)
		}
	}
	return nil
}
