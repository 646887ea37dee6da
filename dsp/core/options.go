package core

// Default rendering format for every asset.
const (
	DefaultSampleRate = 44100
	DefaultBitDepth   = 16
)

// ProcessorConfig defines the fixed rendering format shared by oscillators,
// envelopes and the PCM encoder.
type ProcessorConfig struct {
	SampleRate float64
	BitDepth   int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns mono 16-bit 44.1 kHz.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		BitDepth:   DefaultBitDepth,
	}
}

// WithSampleRate sets the rendering sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBitDepth sets the PCM bit depth. Only multiples of 8 up to 32 are kept.
func WithBitDepth(bits int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if bits > 0 && bits <= 32 && bits%8 == 0 {
			cfg.BitDepth = bits
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
