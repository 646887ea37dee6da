package core

import "math"

// Samples converts a duration in seconds to a sample count, rounding to the
// nearest sample. Negative or non-finite durations return -1 so callers can
// reject them.
func Samples(seconds, sampleRate float64) int {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return -1
	}
	return int(math.Round(seconds * sampleRate))
}

// Seconds converts a sample count to a duration in seconds.
func Seconds(n int, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(n) / sampleRate
}

// TimeAt returns the elapsed time of sample i.
func TimeAt(i int, sampleRate float64) float64 {
	return float64(i) / sampleRate
}
