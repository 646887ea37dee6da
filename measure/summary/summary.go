// Package summary reports level and pitch figures for rendered assets:
// peak, RMS, crest factor and the dominant spectral component.
package summary

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-sfx/dsp/core"
	"github.com/cwbudde/algo-sfx/dsp/gain"
	"github.com/cwbudde/algo-sfx/dsp/window"
)

// MaxAnalysisSize caps the FFT length; longer buffers are analysed from
// their first MaxAnalysisSize samples.
const MaxAnalysisSize = 1 << 16

// ErrInvalidSampleRate is returned for a non-positive sample rate.
var ErrInvalidSampleRate = errors.New("summary: sample rate must be positive")

// Summary holds figures for one buffer.
type Summary struct {
	Samples  int
	Duration float64 // seconds

	Peak    float64
	PeakDB  float64
	RMS     float64
	RMSDB   float64
	CrestDB float64

	// DominantHz is the frequency of the strongest spectral peak, 0 for
	// silence or buffers too short to analyse.
	DominantHz float64
	// DominantLevel is the amplitude of that peak, corrected for the
	// analysis window's coherent gain.
	DominantLevel float64
}

// Summarize computes a Summary for buf.
func Summarize(buf []float64, sampleRate float64) (Summary, error) {
	if sampleRate <= 0 {
		return Summary{}, ErrInvalidSampleRate
	}

	s := Summary{
		Samples:  len(buf),
		Duration: core.Seconds(len(buf), sampleRate),
		Peak:     gain.Peak(buf),
		RMS:      rms(buf),
	}
	s.PeakDB = core.LinearToDB(s.Peak)
	s.RMSDB = core.LinearToDB(s.RMS)
	if s.RMS > 0 {
		s.CrestDB = core.LinearToDB(s.Peak / s.RMS)
	}

	if s.Peak == 0 {
		return s, nil
	}

	hz, level, err := dominant(buf, sampleRate)
	if err != nil {
		return s, err
	}
	s.DominantHz = hz
	s.DominantLevel = level

	return s, nil
}

// DominantFrequency estimates the frequency of the strongest component in
// buf from a Hann-windowed, zero-padded FFT with parabolic peak refinement.
// Buffers shorter than three samples have no interior bin and yield 0.
func DominantFrequency(buf []float64, sampleRate float64) (float64, error) {
	if sampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}

	hz, _, err := dominant(buf, sampleRate)
	return hz, err
}

func dominant(buf []float64, sampleRate float64) (hz, level float64, err error) {
	n := min(len(buf), MaxAnalysisSize)
	if n < 3 {
		return 0, 0, nil
	}

	coeffs, err := window.Hann(n, window.WithPeriodic())
	if err != nil {
		return 0, 0, fmt.Errorf("summary: %w", err)
	}

	cg, err := window.CoherentGain(coeffs)
	if err != nil {
		return 0, 0, fmt.Errorf("summary: %w", err)
	}

	frame := make([]float64, n)
	copy(frame, buf[:n])
	if err := window.ApplyCoefficientsInPlace(frame, coeffs); err != nil {
		return 0, 0, fmt.Errorf("summary: %w", err)
	}

	fftSize := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return 0, 0, fmt.Errorf("summary: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	bins := make([]complex128, fftSize)
	if err := plan.Forward(bins, in); err != nil {
		return 0, 0, fmt.Errorf("summary: forward FFT failed: %w", err)
	}

	half := fftSize / 2
	mag := make([]float64, half+1)
	for k := range mag {
		mag[k] = cmplx.Abs(bins[k])
	}

	best := 1
	for k := 2; k < half; k++ {
		if mag[k] > mag[best] {
			best = k
		}
	}
	if mag[best] == 0 {
		return 0, 0, nil
	}

	offset := parabolicOffset(mag[best-1], mag[best], mag[best+1])
	hz = (float64(best) + offset) * sampleRate / float64(fftSize)
	level = 2 * mag[best] / (cg * float64(n))

	return hz, level, nil
}

// parabolicOffset fits a parabola through three log-magnitude bins and
// returns the vertex offset from the centre bin in [-0.5, 0.5].
func parabolicOffset(a, b, c float64) float64 {
	if a <= 0 || b <= 0 || c <= 0 {
		return 0
	}

	la, lb, lc := math.Log(a), math.Log(b), math.Log(c)
	den := la - 2*lb + lc
	if den == 0 {
		return 0
	}

	return core.Clamp(0.5*(la-lc)/den, -0.5, 0.5)
}

func rms(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range buf {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(buf)))
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
