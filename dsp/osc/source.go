package osc

// Source describes a waveform. The set of sources is closed; use one of the
// types in this package.
type Source interface {
	render(g *Generator, dst []float64) error
}

// Sine is a fixed-frequency sine tone.
type Sine struct {
	Freq float64
}

// Sweep is a linear chirp from From to To Hz across the rendered duration.
type Sweep struct {
	From float64
	To   float64
}

// Partial is one weighted component of a Harmonics stack. Multiplier scales
// the fundamental and need not be an integer.
type Partial struct {
	Multiplier float64
	Weight     float64
}

// Harmonics sums weighted sines at multiples of Fundamental. The sum is not
// normalized; weights set the output scale.
type Harmonics struct {
	Fundamental float64
	Partials    []Partial
}

// Vibrato is a sine whose frequency wobbles as Freq + Depth·sin(2π·Rate·t).
type Vibrato struct {
	Freq  float64
	Depth float64
	Rate  float64
}

// GaussianNoise is white noise with standard deviation Sigma.
type GaussianNoise struct {
	Sigma float64
}

// UniformNoise is white noise uniformly distributed in [-Amplitude, Amplitude].
type UniformNoise struct {
	Amplitude float64
}
