// Package pcm quantizes float sample buffers to signed 16-bit integers and
// serializes them as mono RIFF/WAVE files.
//
// Samples map to round(x·32767) clamped to the int16 range, so a buffer
// normalized into [-1, 1] survives a round trip within one quantization
// step. WriteFile assembles the whole file in memory and publishes it with
// a rename, so a failed write never leaves a truncated file behind.
package pcm
