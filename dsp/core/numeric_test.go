package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -40000, min: -32768, max: 32767, expected: -32768},
		{name: "above", value: 40000, min: -32768, max: 32767, expected: 32767},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(0, 0, 0) {
		t.Fatal("expected zeros to be equal with default eps")
	}
}

func TestLinspace(t *testing.T) {
	got := make([]float64, 5)
	Linspace(got, 0, 1)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}

	one := make([]float64, 1)
	Linspace(one, 0.3, 0.9)
	if one[0] != 0.3 {
		t.Fatalf("single element = %v, want 0.3", one[0])
	}

	Linspace(nil, 0, 1)
}

func TestSamples(t *testing.T) {
	tests := []struct {
		seconds float64
		want    int
	}{
		{seconds: 0, want: 0},
		{seconds: 0.1, want: 4410},
		{seconds: 1.0 / 440, want: 100},
		{seconds: 0.15, want: 6615},
		{seconds: -0.01, want: -1},
		{seconds: math.NaN(), want: -1},
		{seconds: math.Inf(1), want: -1},
	}

	for _, tt := range tests {
		if got := Samples(tt.seconds, 44100); got != tt.want {
			t.Errorf("Samples(%v) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(44100, 44100); got != 1 {
		t.Fatalf("Seconds() = %v, want 1", got)
	}
	if got := Seconds(10, 0); got != 0 {
		t.Fatalf("Seconds() with zero rate = %v, want 0", got)
	}
	if got := TimeAt(441, 44100); got != 0.01 {
		t.Fatalf("TimeAt() = %v, want 0.01", got)
	}
}

func TestLinearToDB(t *testing.T) {
	if got := LinearToDB(1); got != 0 {
		t.Fatalf("LinearToDB(1) = %v, want 0", got)
	}
	if got := LinearToDB(0.5); math.Abs(got-(-6.020599913279624)) > 1e-12 {
		t.Fatalf("LinearToDB(0.5) = %v", got)
	}
	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Fatalf("LinearToDB(0) = %v, want -Inf", got)
	}
	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Fatalf("LinearToDB(-1) = %v, want NaN", got)
	}
}
