// SPDX-License-Identifier: MIT
//
// Package analysis turns transform bins into display heights: magnitudes
// normalized by a fixed divisor, scaled by the row count, and grouped into
// per-column averages.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Scaler holds the normalization settings and the reusable buffers for one
// transform size.
type Scaler struct {
	divisor    float64
	usableBins int
	magnitude  []float64 // ...one scaled magnitude per bin
	columns    []float64 // ...one value per column, regrown on resize
}

// NewScaler creates a scaler for a transform of window samples yielding bins
// outputs. bandCut is the fraction of bins kept for display, counted from
// DC. A divisor of 0 selects window/2.
func NewScaler(window, bins int, bandCut, divisor float64) (*Scaler, error) {
	if window <= 0 || bins <= 0 {
		return nil, fmt.Errorf("window and bins must be positive, got %d and %d", window, bins)
	}
	if bandCut <= 0 || bandCut > 1 {
		return nil, fmt.Errorf("band cut must be in (0, 1], got %g", bandCut)
	}
	if divisor < 0 {
		return nil, fmt.Errorf("divisor must not be negative, got %g", divisor)
	}
	if divisor == 0 {
		divisor = float64(window) / 2
	}

	usable := int(math.Floor(float64(bins) * bandCut))
	if usable < 1 {
		usable = 1
	}

	return &Scaler{
		divisor:    divisor,
		usableBins: usable,
		magnitude:  make([]float64, bins),
	}, nil
}

// UsableBins returns how many bins, from DC upward, feed the display.
func (s *Scaler) UsableBins() int {
	return s.usableBins
}

// Divisor returns the effective normalization divisor.
func (s *Scaler) Divisor() float64 {
	return s.divisor
}

// Magnitudes writes |bin| / divisor * rows * scale for every bin into the
// scaler's buffer and returns it. The slice is reused by the next call.
func (s *Scaler) Magnitudes(bins []complex128, rows int, scale float64) []float64 {
	factor := float64(rows) * scale / s.divisor
	n := min(len(bins), len(s.magnitude))
	for i := range n {
		s.magnitude[i] = cmplx.Abs(bins[i]) * factor
	}
	clear(s.magnitude[n:])
	return s.magnitude
}

// Columns groups the usable magnitudes into columns consecutive runs of
// equal width (at least one bin) and returns each run's average, clamped to
// [0, rows]. Columns past the last usable bin are 0.
func (s *Scaler) Columns(mags []float64, columns, rows int) []float64 {
	if columns <= 0 {
		return s.columns[:0]
	}
	if cap(s.columns) < columns {
		s.columns = make([]float64, columns)
	}
	out := s.columns[:columns]

	usable := min(s.usableBins, len(mags))
	perCol := max(1, usable/columns)

	for c := range out {
		start := c * perCol
		end := min(start+perCol, usable)
		if start >= end {
			out[c] = 0
			continue
		}

		sum := 0.0
		for _, m := range mags[start:end] {
			sum += m
		}
		out[c] = clamp(sum/float64(end-start), rows)
	}
	return out
}

// Aggregate returns the average of all usable magnitudes, clamped to
// [0, rows].
func (s *Scaler) Aggregate(mags []float64, rows int) float64 {
	usable := min(s.usableBins, len(mags))
	if usable == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range mags[:usable] {
		sum += m
	}
	return clamp(sum/float64(usable), rows)
}

func clamp(v float64, rows int) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return math.Min(v, float64(rows))
}
