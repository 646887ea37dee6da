// Package osc renders raw, unshaped waveforms: sine tones, linear chirps,
// harmonic stacks, vibrato tones and white noise.
//
// Frequencies are evaluated in closed form from elapsed time t = i/fs. A
// Sweep uses the time-averaged frequency f0 + (f1-f0)·t/T multiplied by t
// inside the sine argument; this is the exact formula the rendered assets
// are tuned against and must not be replaced by a phase accumulator.
//
// Noise is drawn from the Generator's random source. Use WithSeed for
// reproducible renders.
package osc
