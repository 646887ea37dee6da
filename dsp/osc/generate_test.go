package osc

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-sfx/dsp/core"
	"github.com/cwbudde/algo-sfx/internal/testutil"
)

func seeded(seed uint64) *Generator {
	return NewGeneratorWithOptions(nil, WithSeed(seed))
}

func TestRenderLengths(t *testing.T) {
	g := seeded(1)
	sources := map[string]Source{
		"sine":      Sine{Freq: 440},
		"sweep":     Sweep{From: 800, To: 400},
		"harmonics": Harmonics{Fundamental: 800, Partials: []Partial{{1, 0.6}, {1.5, 0.3}, {2, 0.1}}},
		"vibrato":   Vibrato{Freq: 40, Depth: 20, Rate: 5},
		"gaussian":  GaussianNoise{Sigma: 0.3},
		"uniform":   UniformNoise{Amplitude: 0.5},
	}

	for name, src := range sources {
		for _, n := range []int{0, 1, 2, 100, 4410} {
			got, err := g.Render(src, n)
			if err != nil {
				t.Fatalf("%s n=%d: Render() error = %v", name, n, err)
			}
			if len(got) != n {
				t.Fatalf("%s n=%d: len = %d", name, n, len(got))
			}
			testutil.RequireFinite(t, got)
		}
	}
}

func TestSineOnePeriod(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(44100))
	n := core.Samples(1.0/440, g.SampleRate())
	if n != 100 {
		t.Fatalf("one period = %d samples, want 100", n)
	}

	got, err := g.Render(Sine{Freq: 440}, n)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got[0] != 0 {
		t.Fatalf("first sample = %v, want 0", got[0])
	}

	want := testutil.DeterministicSine(440, 44100, 1, n)
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
}

func TestSweepFormula(t *testing.T) {
	const (
		fs   = 44100.0
		n    = 4410
		from = 800.0
		to   = 400.0
	)
	g := NewGenerator(core.WithSampleRate(fs))
	got, err := g.Render(Sweep{From: from, To: to}, n)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	duration := float64(n) / fs
	for _, i := range []int{0, 1, 100, 2205, n - 1} {
		ti := float64(i) / fs
		want := math.Sin(2 * math.Pi * (from + (to-from)*ti/duration) * ti)
		if got[i] != want {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestSweepEqualEndsIsSine(t *testing.T) {
	g := NewGenerator()
	sweep, err := g.Render(Sweep{From: 300, To: 300}, 500)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	sine, err := g.Render(Sine{Freq: 300}, 500)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, sweep, sine, 1e-12)
}

func TestHarmonicsIsWeightedSum(t *testing.T) {
	g := NewGenerator()
	stack, err := g.Render(Harmonics{Fundamental: 200, Partials: []Partial{{1, 0.5}, {3, 0.25}}}, 256)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	a := testutil.DeterministicSine(200, 44100, 0.5, 256)
	b := testutil.DeterministicSine(600, 44100, 0.25, 256)
	for i := range stack {
		if math.Abs(stack[i]-(a[i]+b[i])) > 1e-12 {
			t.Fatalf("index %d: got %v, want %v", i, stack[i], a[i]+b[i])
		}
	}
}

func TestHarmonicsNotNormalized(t *testing.T) {
	g := NewGenerator()
	stack, err := g.Render(Harmonics{Fundamental: 100, Partials: []Partial{{1, 1}, {1, 1}}}, 441)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	// Two in-phase unit partials peak at 2 (quarter period = 110.25 samples).
	peak := 0.0
	for _, v := range stack {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak < 1.99 {
		t.Fatalf("peak = %v, want close to 2", peak)
	}
}

func TestVibratoZeroDepthIsSine(t *testing.T) {
	g := NewGenerator()
	vib, err := g.Render(Vibrato{Freq: 40, Rate: 5}, 300)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	sine, err := g.Render(Sine{Freq: 40}, 300)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	testutil.RequireBitIdentical(t, vib, sine)
}

func TestNoiseDeterministic(t *testing.T) {
	for _, src := range []Source{GaussianNoise{Sigma: 0.3}, UniformNoise{Amplitude: 1}} {
		a, err := seeded(42).Render(src, 64)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		b, err := seeded(42).Render(src, 64)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		testutil.RequireBitIdentical(t, a, b)

		c, err := seeded(43).Render(src, 64)
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if !testutil.Differs(a, c) {
			t.Fatalf("%T: expected different seeds to produce different noise", src)
		}
	}
}

func TestNoiseStreamAdvances(t *testing.T) {
	g := seeded(5)
	a, _ := g.Render(UniformNoise{Amplitude: 1}, 32)
	b, _ := g.Render(UniformNoise{Amplitude: 1}, 32)
	if !testutil.Differs(a, b) {
		t.Fatal("consecutive noise layers from one generator must differ")
	}
}

func TestUniformNoiseRange(t *testing.T) {
	got, err := seeded(3).Render(UniformNoise{Amplitude: 0.25}, 10000)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for i, v := range got {
		if math.Abs(v) > 0.25 {
			t.Fatalf("index %d: %v exceeds amplitude", i, v)
		}
	}
}

func TestGaussianNoiseStatistics(t *testing.T) {
	const sigma = 0.3
	got, err := seeded(11).Render(GaussianNoise{Sigma: sigma}, 20000)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var sum, sumSq float64
	for _, v := range got {
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(len(got))
	std := math.Sqrt(sumSq/float64(len(got)) - mean*mean)

	if math.Abs(mean) > 0.02 {
		t.Fatalf("mean = %v, want ~0", mean)
	}
	if math.Abs(std-sigma) > 0.02 {
		t.Fatalf("std = %v, want ~%v", std, sigma)
	}
}

func TestRenderErrors(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Render(Sine{Freq: 440}, -1); !errors.Is(err, ErrNegativeLength) {
		t.Fatalf("negative length error = %v", err)
	}
	if _, err := g.Render(nil, 10); !errors.Is(err, ErrUnknownSource) {
		t.Fatalf("nil source error = %v", err)
	}

	bad := []Source{
		Sine{Freq: -1},
		Sweep{From: math.NaN(), To: 1},
		Harmonics{Fundamental: 100, Partials: []Partial{{Multiplier: -2, Weight: 1}}},
		Vibrato{Freq: 40, Depth: 20, Rate: math.Inf(1)},
		GaussianNoise{Sigma: -0.1},
		UniformNoise{Amplitude: math.NaN()},
	}
	for _, src := range bad {
		if _, err := g.Render(src, 8); err == nil {
			t.Errorf("Render(%#v) expected error", src)
		}
	}
}

func TestSeed(t *testing.T) {
	if _, ok := NewGenerator().Seed(); ok {
		t.Fatal("default generator must be unseeded")
	}
	seed, ok := seeded(99).Seed()
	if !ok || seed != 99 {
		t.Fatalf("Seed() = %d, %v; want 99, true", seed, ok)
	}
}

func BenchmarkHarmonics(b *testing.B) {
	g := NewGenerator()
	src := Harmonics{Fundamental: 1800, Partials: []Partial{{1, 0.5}, {4.0 / 3, 0.3}, {16.0 / 9, 0.15}, {20.0 / 9, 0.05}}}
	for b.Loop() {
		_, _ = g.Render(src, 4410)
	}
}
