package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-sfx/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(22050),
		core.WithBitDepth(16),
	)

	fmt.Printf("sampleRate=%.0f bitDepth=%d\n", cfg.SampleRate, cfg.BitDepth)

	// Output:
	// sampleRate=22050 bitDepth=16
}

func ExampleSamples() {
	fmt.Println(core.Samples(0.25, 44100), core.Samples(1.0/440, 44100))

	// Output:
	// 11025 100
}
