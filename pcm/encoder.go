package pcm

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	wav "github.com/youpy/go-wav"

	"github.com/cwbudde/algo-sfx/dsp/core"
)

// HeaderSize is the size of the RIFF/WAVE header preceding sample data.
const HeaderSize = 44

const (
	channels      = 1
	supportedBits = 16
)

// Format describes the container written by an Encoder.
type Format struct {
	Channels   int
	SampleRate int
	BitDepth   int
}

// Encoder writes mono PCM WAV files.
type Encoder struct {
	format Format
	quant  Quantizer
}

// NewEncoder creates an encoder for the configured sample rate and bit
// depth (44.1 kHz, 16 bit by default).
func NewEncoder(opts ...core.ProcessorOption) (*Encoder, error) {
	cfg := core.ApplyProcessorOptions(opts...)

	if cfg.BitDepth != supportedBits {
		return nil, fmt.Errorf("%w: %d-bit samples", ErrUnsupportedFormat, cfg.BitDepth)
	}
	rate := math.Round(cfg.SampleRate)
	if rate <= 0 || rate > math.MaxUint32 {
		return nil, fmt.Errorf("%w: sample rate %f", ErrUnsupportedFormat, cfg.SampleRate)
	}

	return &Encoder{
		format: Format{Channels: channels, SampleRate: int(rate), BitDepth: cfg.BitDepth},
		quant:  newQuantizer(cfg.BitDepth),
	}, nil
}

// Format returns the container format.
func (e *Encoder) Format() Format {
	return e.format
}

// Quantizer returns the sample quantizer.
func (e *Encoder) Quantizer() Quantizer {
	return e.quant
}

// Quantize converts buf to integer samples.
func (e *Encoder) Quantize(buf []float64) []int {
	out := make([]int, len(buf))
	for i, x := range buf {
		out[i] = e.quant.Sample(x)
	}
	return out
}

// Encode writes buf as a complete WAV stream to w.
func (e *Encoder) Encode(w io.Writer, buf []float64) error {
	if uint64(len(buf))*uint64(e.format.BitDepth/8) > math.MaxUint32-HeaderSize {
		return fmt.Errorf("%w: %d samples exceed the RIFF size limit", ErrUnsupportedFormat, len(buf))
	}

	ew := &errWriter{w: w}
	ww := wav.NewWriter(ew, uint32(len(buf)), uint16(e.format.Channels), uint32(e.format.SampleRate), uint16(e.format.BitDepth))

	samples := make([]wav.Sample, len(buf))
	for i, x := range buf {
		samples[i].Values[0] = e.quant.Sample(x)
	}

	if err := ww.WriteSamples(samples); err != nil {
		return err
	}

	return ew.err
}

// Bytes returns the complete WAV file for buf.
func (e *Encoder) Bytes(buf []float64) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(HeaderSize + len(buf)*e.format.BitDepth/8)

	if err := e.Encode(&out, buf); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// WriteFile encodes buf and writes it to path. The file appears complete or
// not at all; failures are reported as *WriteError.
func (e *Encoder) WriteFile(path string, buf []float64) error {
	data, err := e.Bytes(buf)
	if err != nil {
		return err
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp*")
	if err != nil {
		return &WriteError{Path: path, Op: "create", Err: err}
	}

	tmpName := tmp.Name()
	fail := func(op string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &WriteError{Path: path, Op: op, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail("chmod", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: path, Op: "close", Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Path: path, Op: "rename", Err: err}
	}

	return nil
}

// errWriter keeps the first write error; the WAV writer does not report
// errors from its underlying writer.
type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(p)
	if err != nil {
		w.err = err
	}
	return n, err
}
