package pcm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	wav "github.com/youpy/go-wav"
)

const audioFormatPCM = 1

// Decode reads a mono 16-bit PCM WAV stream and returns its samples scaled
// back to [-1, 1] along with the container format.
func Decode(r io.Reader) ([]float64, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Format{}, fmt.Errorf("pcm: read: %w", err)
	}

	wr := wav.NewReader(bytes.NewReader(data))

	wf, err := wr.Format()
	if err != nil {
		return nil, Format{}, fmt.Errorf("pcm: header: %w", err)
	}

	format := Format{
		Channels:   int(wf.NumChannels),
		SampleRate: int(wf.SampleRate),
		BitDepth:   int(wf.BitsPerSample),
	}
	if wf.AudioFormat != audioFormatPCM || format.Channels != channels || format.BitDepth != supportedBits {
		return nil, format, fmt.Errorf("%w: format %d, %d channels, %d bit",
			ErrUnsupportedFormat, wf.AudioFormat, format.Channels, format.BitDepth)
	}

	if emptyDataChunk(data) {
		return []float64{}, format, nil
	}

	quant := newQuantizer(format.BitDepth)

	out := make([]float64, 0, max(0, len(data)-HeaderSize)/2)
	for {
		samples, err := wr.ReadSamples()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, format, fmt.Errorf("pcm: samples: %w", err)
		}

		for _, s := range samples {
			out = append(out, quant.Value(wr.IntValue(s, 0)))
		}
	}

	return out, format, nil
}

// emptyDataChunk reports whether data is the canonical header followed by a
// zero-length data chunk. The RIFF chunk walk stops before such a chunk, so
// the WAV reader reports it as missing.
func emptyDataChunk(data []byte) bool {
	if len(data) < HeaderSize || string(data[36:40]) != "data" {
		return false
	}
	return binary.LittleEndian.Uint32(data[40:44]) == 0
}
