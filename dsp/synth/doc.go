// Package synth turns asset descriptions into finished sample buffers.
//
// A Layer pairs an oscillator source with an envelope, a gain and a
// placement on the asset's timeline. Each layer is rendered to a Voice, the
// voices are placed as Events and summed by Mix, and Render applies the
// mastering steps (tail fade, peak normalization, loop fade) once.
//
// Mix is order independent: permuting the events yields a bit-identical
// buffer.
package synth
