package synth

import (
	"testing"

	"github.com/cwbudde/algo-sfx/internal/testutil"
)

func TestMixOverlapAndClip(t *testing.T) {
	first := testutil.Counter(1, 10)
	second := testutil.Counter(100, 10)

	got := Mix(12, []Event{
		{Voice: VoiceFromSamples(first), Offset: 0},
		{Voice: VoiceFromSamples(second), Offset: 5},
	})

	if len(got) != 12 {
		t.Fatalf("len = %d, want 12", len(got))
	}
	for i := range 5 {
		if got[i] != first[i] {
			t.Fatalf("index %d: got %v, want first voice %v", i, got[i], first[i])
		}
	}
	for i := 5; i <= 9; i++ {
		if want := first[i] + second[i-5]; got[i] != want {
			t.Fatalf("index %d: got %v, want sum %v", i, got[i], want)
		}
	}
	for i := 10; i <= 11; i++ {
		if want := second[i-5]; got[i] != want {
			t.Fatalf("index %d: got %v, want second voice tail %v", i, got[i], want)
		}
	}
}

func TestMixOrderIndependent(t *testing.T) {
	// Three heavily overlapping noise voices expose any dependence on
	// summation order.
	events := []Event{
		{Voice: VoiceFromSamples(testutil.DeterministicNoise(1, 0.7, 300)), Offset: 10},
		{Voice: VoiceFromSamples(testutil.DeterministicNoise(2, 0.3, 250)), Offset: 40},
		{Voice: VoiceFromSamples(testutil.DeterministicNoise(3, 1.1, 200)), Offset: 10},
		{Voice: VoiceFromSamples(testutil.DeterministicNoise(4, 0.01, 280)), Offset: 25},
	}
	want := Mix(320, events)

	permutations := [][]int{
		{3, 2, 1, 0},
		{1, 3, 0, 2},
		{2, 0, 3, 1},
		{0, 2, 1, 3},
	}
	for _, perm := range permutations {
		shuffled := make([]Event, len(events))
		for i, j := range perm {
			shuffled[i] = events[j]
		}
		testutil.RequireBitIdentical(t, Mix(320, shuffled), want)
	}
}

func TestMixDoesNotReorderCallerSlice(t *testing.T) {
	events := []Event{
		{Voice: VoiceFromSamples([]float64{1}), Offset: 3},
		{Voice: VoiceFromSamples([]float64{2}), Offset: 1},
	}
	Mix(4, events)
	if events[0].Offset != 3 || events[1].Offset != 1 {
		t.Fatal("Mix must not reorder the caller's events")
	}
}

func TestMixOutOfRangeEventsContributeNothing(t *testing.T) {
	base := []Event{{Voice: VoiceFromSamples(testutil.Ones(8)), Offset: 2}}
	want := Mix(16, base)

	outside := []Event{
		{Voice: VoiceFromSamples(testutil.DC(5, 4)), Offset: 16},
		{Voice: VoiceFromSamples(testutil.DC(5, 4)), Offset: 100},
		{Voice: VoiceFromSamples(testutil.DC(5, 4)), Offset: -2},
		{Voice: VoiceFromSamples(nil), Offset: 3},
	}
	for _, ev := range outside {
		got := Mix(16, append([]Event{ev}, base...))
		testutil.RequireBitIdentical(t, got, want)
	}
}

func TestMixEmpty(t *testing.T) {
	if got := Mix(0, []Event{{Voice: VoiceFromSamples(testutil.Ones(3))}}); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
	testutil.RequireSilent(t, Mix(5, nil))
}

func BenchmarkMix(b *testing.B) {
	events := make([]Event, 16)
	for i := range events {
		events[i] = Event{
			Voice:  VoiceFromSamples(testutil.DeterministicNoise(uint64(i), 0.1, 8820)),
			Offset: i * 4410,
		}
	}
	for b.Loop() {
		Mix(44100*2, events)
	}
}
