// Package gain implements the mastering steps applied to a finished mix:
// peak normalization to a headroom target and linear edge fades.
//
// Normalize is idempotent. LoopFade and FadeOut are destructive and must be
// applied exactly once per buffer.
package gain

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sfx/dsp/core"
	"github.com/cwbudde/algo-sfx/dsp/window"
)

// DefaultLoopFade is the loop-safety fade length in seconds.
const DefaultLoopFade = 0.1

// ErrInvalidHeadroom is returned for a headroom outside (0, 1].
var ErrInvalidHeadroom = errors.New("gain: headroom must be in (0, 1]")

// Peak returns the maximum absolute sample value, 0 for an empty buffer.
func Peak(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}
	return vecmath.MaxAbs(buf)
}

// Normalize scales buf in place so its peak absolute value equals headroom.
// A silent buffer is left unchanged, as is a buffer whose peak already sits
// at headroom.
func Normalize(buf []float64, headroom float64) error {
	if !(headroom > 0 && headroom <= 1) {
		return fmt.Errorf("%w: %f", ErrInvalidHeadroom, headroom)
	}

	peak := Peak(buf)
	if peak == 0 || core.NearlyEqual(peak, headroom, 0) {
		return nil
	}

	vecmath.ScaleBlockInPlace(buf, headroom/peak)

	return nil
}

// LoopFade ramps the first fadeLen samples up from 0 and the last fadeLen
// samples down to 0. fadeLen is capped at half the buffer.
func LoopFade(buf []float64, fadeLen int) {
	fadeLen = min(fadeLen, len(buf)/2)
	if fadeLen <= 0 {
		return
	}

	fadeIn, _ := window.Ramp(fadeLen, window.SlopeLeft)
	fadeOut, _ := window.Ramp(fadeLen, window.SlopeRight)

	vecmath.MulBlockInPlace(buf[:fadeLen], fadeIn)
	vecmath.MulBlockInPlace(buf[len(buf)-fadeLen:], fadeOut)
}

// FadeOut ramps the last fadeLen samples down to 0. A fade longer than the
// buffer covers the whole buffer.
func FadeOut(buf []float64, fadeLen int) {
	fadeLen = min(fadeLen, len(buf))
	if fadeLen <= 0 {
		return
	}

	fade, _ := window.Ramp(fadeLen, window.SlopeRight)
	vecmath.MulBlockInPlace(buf[len(buf)-fadeLen:], fade)
}

// FadeSamples converts a fade length in seconds to samples.
func FadeSamples(seconds, sampleRate float64) int {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return core.Samples(seconds, sampleRate)
}
