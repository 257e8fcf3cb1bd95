// SPDX-License-Identifier: MIT
package audio

import "math"

// Gate silences frames whose peak amplitude stays under a threshold.
type Gate struct {
	threshold float64 // Absolute amplitude, 0 disables.
}

// NewGate creates a gate. The threshold is a fraction of full scale in the
// range 0.0-1.0 where 0=always open, 1=always closed.
func NewGate(threshold float64) *Gate {
	g := &Gate{}
	g.SetThreshold(threshold)
	return g
}

// SetThreshold adjusts the threshold, clamped to 0.0-1.0.
func (g *Gate) SetThreshold(threshold float64) {
	if threshold < 0.0 {
		threshold = 0.0
	}
	if threshold > 1.0 {
		threshold = 1.0
	}

	g.threshold = threshold * math.MaxInt16
}

// Threshold returns the current threshold as a fraction of full scale.
func (g *Gate) Threshold() float64 {
	return g.threshold / math.MaxInt16
}

// Enabled reports whether the gate can ever close.
func (g *Gate) Enabled() bool {
	return g.threshold > 0
}

// Apply zeroes samples when the gate is enabled and no sample reaches the
// threshold. It returns true when the frame was silenced.
func (g *Gate) Apply(samples []float64) bool {
	if !g.Enabled() {
		return false
	}

	var peak float64
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s))
	}
	if peak >= g.threshold {
		return false
	}

	clear(samples)
	return true
}
