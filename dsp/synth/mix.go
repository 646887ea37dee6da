package synth

import (
	"cmp"
	"slices"

	"github.com/cwbudde/algo-vecmath"
)

// Event places a Voice at Offset samples into an asset timeline.
type Event struct {
	Voice  Voice
	Offset int
}

// Mix allocates length samples of silence and adds every event into it.
//
// An event whose offset is negative or at/after the end contributes nothing.
// An event that runs past the end is truncated to the part that fits.
// Overlapping events sum linearly.
func Mix(length int, events []Event) []float64 {
	if length <= 0 {
		return []float64{}
	}

	out := make([]float64, length)

	// Floating-point addition is not associative, so accumulate in a
	// canonical order to make the result independent of event order.
	ordered := slices.Clone(events)
	slices.SortFunc(ordered, compareEvents)

	for _, ev := range ordered {
		if ev.Offset < 0 || ev.Offset >= length || ev.Voice.Len() == 0 {
			continue
		}

		end := min(ev.Offset+ev.Voice.Len(), length)
		vecmath.AddBlockInPlace(out[ev.Offset:end], ev.Voice.samples[:end-ev.Offset])
	}

	return out
}

func compareEvents(a, b Event) int {
	if c := cmp.Compare(a.Offset, b.Offset); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Voice.Len(), b.Voice.Len()); c != 0 {
		return c
	}
	return slices.Compare(a.Voice.samples, b.Voice.samples)
}
