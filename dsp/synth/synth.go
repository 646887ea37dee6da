package synth

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-sfx/dsp/core"
	"github.com/cwbudde/algo-sfx/dsp/envelope"
	"github.com/cwbudde/algo-sfx/dsp/gain"
	"github.com/cwbudde/algo-sfx/dsp/osc"
)

// ErrNegativeDuration is returned for a negative or non-finite asset or
// layer duration.
var ErrNegativeDuration = errors.New("synth: duration must be >= 0")

// Layer is one sound event of an asset: a waveform shaped by an envelope,
// scaled by Gain and placed at Start seconds for Duration seconds.
type Layer struct {
	Name     string
	Wave     osc.Source
	Envelope envelope.Shape
	Start    float64
	Duration float64
	Gain     float64
}

// Asset is one named output sound.
type Asset struct {
	Name     string
	Duration float64
	Layers   []Layer

	// Headroom is the normalization target peak in (0, 1]. Zero keeps the
	// levels as authored.
	Headroom float64
	// Loop marks a seamless loop; LoopFade seconds of linear fade are applied
	// to both edges after normalization (gain.DefaultLoopFade when zero).
	Loop     bool
	LoopFade float64
	// FadeOut seconds of linear fade are applied to the tail before
	// normalization.
	FadeOut float64
}

// Synthesizer renders assets with one oscillator generator.
type Synthesizer struct {
	cfg core.ProcessorConfig
	gen *osc.Generator
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithGenerator sets the oscillator generator. Its sample rate replaces the
// synthesizer's.
func WithGenerator(gen *osc.Generator) Option {
	return func(s *Synthesizer) {
		if gen != nil {
			s.gen = gen
		}
	}
}

// New creates a Synthesizer. Without WithGenerator it owns an unseeded
// generator at the configured sample rate.
func New(coreOpts []core.ProcessorOption, opts ...Option) *Synthesizer {
	s := &Synthesizer{}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.gen == nil {
		s.gen = osc.NewGenerator(coreOpts...)
	}
	s.cfg = s.gen.Config()

	return s
}

// SampleRate returns the rendering sample rate.
func (s *Synthesizer) SampleRate() float64 {
	return s.cfg.SampleRate
}

// BuildVoice renders one layer to a finished voice. Placement is ignored.
func (s *Synthesizer) BuildVoice(layer Layer) (Voice, error) {
	n := core.Samples(layer.Duration, s.cfg.SampleRate)
	if n < 0 {
		return Voice{}, fmt.Errorf("%w: layer %q: %f", ErrNegativeDuration, layer.Name, layer.Duration)
	}

	wave, err := s.gen.Render(layer.Wave, n)
	if err != nil {
		return Voice{}, fmt.Errorf("synth: layer %q: %w", layer.Name, err)
	}

	shape := layer.Envelope
	if shape == nil {
		shape = envelope.Flat()
	}

	env, err := envelope.Render(shape, n, s.cfg.SampleRate)
	if err != nil {
		return Voice{}, fmt.Errorf("synth: layer %q: %w", layer.Name, err)
	}

	voice, err := NewVoice(wave, env)
	if err != nil {
		return Voice{}, err
	}

	if layer.Gain != 1 {
		voice = voice.Scaled(layer.Gain)
	}

	return voice, nil
}

// Synthesize renders every layer and mixes them into a buffer of the asset
// duration. The result is the raw mix before any mastering.
func (s *Synthesizer) Synthesize(asset Asset) ([]float64, error) {
	length := core.Samples(asset.Duration, s.cfg.SampleRate)
	if length < 0 {
		return nil, fmt.Errorf("%w: asset %q: %f", ErrNegativeDuration, asset.Name, asset.Duration)
	}

	events := make([]Event, 0, len(asset.Layers))
	for _, layer := range asset.Layers {
		voice, err := s.BuildVoice(layer)
		if err != nil {
			return nil, fmt.Errorf("asset %q: %w", asset.Name, err)
		}

		// A negative start is kept negative so Mix drops the event.
		offset := -1
		if layer.Start >= 0 {
			offset = core.Samples(layer.Start, s.cfg.SampleRate)
		}

		events = append(events, Event{Voice: voice, Offset: offset})
	}

	return Mix(length, events), nil
}

// Render synthesizes asset and applies its mastering exactly once: tail
// fade, peak normalization, then loop fade.
func (s *Synthesizer) Render(asset Asset) ([]float64, error) {
	buf, err := s.Synthesize(asset)
	if err != nil {
		return nil, err
	}

	if asset.FadeOut > 0 {
		gain.FadeOut(buf, gain.FadeSamples(asset.FadeOut, s.cfg.SampleRate))
	}

	if asset.Headroom != 0 {
		if err := gain.Normalize(buf, asset.Headroom); err != nil {
			return nil, fmt.Errorf("asset %q: %w", asset.Name, err)
		}
	}

	if asset.Loop {
		fade := asset.LoopFade
		if fade <= 0 {
			fade = gain.DefaultLoopFade
		}
		gain.LoopFade(buf, gain.FadeSamples(fade, s.cfg.SampleRate))
	}

	return buf, nil
}
