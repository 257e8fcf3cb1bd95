// SPDX-License-Identifier: MIT
package audio

import (
	"math"
	"strconv"
	"testing"
)

var (
	quietBuffer = constantBuffer(100)
	loudBuffer  = constantBuffer(30000)
)

func constantBuffer(amplitude float64) []float64 {
	buf := make([]float64, 1024)
	for i := range buf {
		if i%2 == 0 {
			buf[i] = amplitude
		} else {
			buf[i] = -amplitude
		}
	}
	return buf
}

func TestGateThresholdBoundaries(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{-0.1, 0.0}, // Below min
		{0.0, 0.0},  // Minimum
		{0.5, 0.5},  // Middle
		{1.0, 1.0},  // Maximum
		{1.5, 1.0},  // Above max
	}

	gate := NewGate(0)

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.input, 'f', 2, 64), func(t *testing.T) {
			gate.SetThreshold(tt.input)
			got := gate.Threshold()

			if math.Abs(got-tt.expected) > 0.001 {
				t.Errorf("Gate threshold conversion: got %.3f, want %.3f", got, tt.expected)
			}
			if gate.Enabled() != (tt.expected > 0) {
				t.Errorf("Enabled() = %v for threshold %.3f", gate.Enabled(), tt.expected)
			}
		})
	}
}

func TestGateApply(t *testing.T) {
	tests := []struct {
		desc      string
		buffer    []float64
		threshold float64
		silenced  bool
	}{
		{"Gate disabled/Quiet signal", quietBuffer, 0, false},
		{"Gate enabled/Quiet signal/Low threshold", quietBuffer, 0.001, false},
		{"Gate enabled/Quiet signal/Mid threshold", quietBuffer, 0.1, true},
		{"Gate enabled/Loud signal/Mid threshold", loudBuffer, 0.1, false},
		{"Gate enabled/Loud signal/High threshold", loudBuffer, 0.999, true},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			buf := make([]float64, len(tt.buffer))
			copy(buf, tt.buffer)

			if got := NewGate(tt.threshold).Apply(buf); got != tt.silenced {
				t.Fatalf("Apply() = %v, want %v", got, tt.silenced)
			}

			for i, v := range buf {
				want := tt.buffer[i]
				if tt.silenced {
					want = 0
				}
				if v != want {
					t.Fatalf("sample %d = %g, want %g", i, v, want)
				}
			}
		})
	}
}

func TestGateApplyHotPath(t *testing.T) {
	gate := NewGate(0.5)
	buf := make([]float64, len(loudBuffer))
	copy(buf, loudBuffer)

	allocs := testing.AllocsPerRun(100, func() {
		gate.Apply(buf)
	})

	if allocs > 0 {
		t.Errorf("Expected zero allocations in noise gate hot path, got %.1f", allocs)
	}
}

func BenchmarkGateApply(b *testing.B) {
	gate := NewGate(0.1)
	buf := make([]float64, len(loudBuffer))
	copy(buf, loudBuffer)

	b.ReportAllocs()

	for b.Loop() {
		gate.Apply(buf)
	}
}
