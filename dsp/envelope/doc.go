// Package envelope renders amplitude envelopes: per-sample, non-negative
// multipliers that shape the loudness of a raw oscillator or noise signal.
//
// A Shape is a small immutable descriptor. Render turns it into exactly n
// multipliers at a given sample rate. A zero-length request is valid and
// yields an empty slice so zero-length events flow through the pipeline.
package envelope
