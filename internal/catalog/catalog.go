// Package catalog loads sound-effect tables: named assets described as
// layered waveforms and envelopes in YAML.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-sfx/dsp/core"
	"github.com/cwbudde/algo-sfx/dsp/synth"
)

//go:embed assets/whackamole.yaml
var defaultTable []byte

var (
	// ErrUnknownAsset is returned by Select for a name not in the catalog.
	ErrUnknownAsset = errors.New("catalog: unknown asset")
	// ErrDuplicateAsset is returned when two assets share a name.
	ErrDuplicateAsset = errors.New("catalog: duplicate asset name")
)

// Catalog is a parsed effect table.
type Catalog struct {
	SampleRate float64
	Assets     []synth.Asset
}

type file struct {
	SampleRate float64    `yaml:"sampleRate"`
	Assets     []assetDef `yaml:"assets"`
}

type assetDef struct {
	Name     string     `yaml:"name"`
	Duration float64    `yaml:"duration"`
	Headroom float64    `yaml:"headroom"`
	Loop     bool       `yaml:"loop"`
	LoopFade float64    `yaml:"loopFade"`
	FadeOut  float64    `yaml:"fadeOut"`
	Layers   []layerDef `yaml:"layers"`
}

type layerDef struct {
	Name     string       `yaml:"name"`
	Start    float64      `yaml:"start"`
	Duration float64      `yaml:"duration"`
	Gain     *float64     `yaml:"gain"`
	Wave     waveDef      `yaml:"wave"`
	Envelope *envelopeDef `yaml:"envelope"`
}

// Default returns the built-in table of the nine game assets.
func Default() (*Catalog, error) {
	return Parse(defaultTable)
}

// Load reads and parses the table at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse decodes a YAML table. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c := &Catalog{SampleRate: f.SampleRate}
	if c.SampleRate == 0 {
		c.SampleRate = core.DefaultSampleRate
	}
	if c.SampleRate < 0 {
		return nil, fmt.Errorf("catalog: sample rate must be positive: %f", c.SampleRate)
	}

	seen := make(map[string]bool, len(f.Assets))
	for i, def := range f.Assets {
		if def.Name == "" {
			return nil, fmt.Errorf("catalog: asset %d has no name", i)
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAsset, def.Name)
		}
		seen[def.Name] = true

		asset, err := def.asset()
		if err != nil {
			return nil, fmt.Errorf("catalog: asset %q: %w", def.Name, err)
		}
		c.Assets = append(c.Assets, asset)
	}

	return c, nil
}

func (d assetDef) asset() (synth.Asset, error) {
	a := synth.Asset{
		Name:     d.Name,
		Duration: d.Duration,
		Headroom: d.Headroom,
		Loop:     d.Loop,
		LoopFade: d.LoopFade,
		FadeOut:  d.FadeOut,
		Layers:   make([]synth.Layer, 0, len(d.Layers)),
	}

	for i, ld := range d.Layers {
		wave, err := ld.Wave.source()
		if err != nil {
			return synth.Asset{}, fmt.Errorf("layer %d: %w", i, err)
		}

		layer := synth.Layer{
			Name:     ld.Name,
			Wave:     wave,
			Start:    ld.Start,
			Duration: ld.Duration,
			Gain:     1,
		}
		if layer.Name == "" {
			layer.Name = fmt.Sprintf("%s#%d", d.Name, i)
		}
		if ld.Gain != nil {
			layer.Gain = *ld.Gain
		}
		if ld.Envelope != nil {
			if layer.Envelope, err = ld.Envelope.shape(); err != nil {
				return synth.Asset{}, fmt.Errorf("layer %d: %w", i, err)
			}
		}

		a.Layers = append(a.Layers, layer)
	}

	return a, nil
}

// Names lists the asset names in table order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Assets))
	for i, a := range c.Assets {
		names[i] = a.Name
	}
	return names
}

// Find returns the asset called name.
func (c *Catalog) Find(name string) (synth.Asset, bool) {
	for _, a := range c.Assets {
		if a.Name == name {
			return a, true
		}
	}
	return synth.Asset{}, false
}

// Select returns the named assets in table order. An empty list selects
// every asset.
func (c *Catalog) Select(names []string) ([]synth.Asset, error) {
	if len(names) == 0 {
		return c.Assets, nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := c.Find(n); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAsset, n)
		}
		want[n] = true
	}

	out := make([]synth.Asset, 0, len(want))
	for _, a := range c.Assets {
		if want[a.Name] {
			out = append(out, a)
		}
	}

	return out, nil
}
