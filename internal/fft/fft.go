// SPDX-License-Identifier: MIT
//
// Package fft computes the real-to-complex transform of one sample window
// per tick. The transform size is fixed when the Transform is created; a
// different window size needs a new Transform.
package fft

import (
	"fmt"

	"nausea/pkg/bitint"

	"gonum.org/v1/gonum/dsp/fourier"
)

// workspace holds pre-allocated buffers so Compute does not allocate.
type workspace struct {
	input  []float64    // ...for windowed input samples
	output []complex128 // ...for FFT complex output
	window []float64    // ...for window function coefficients
}

// Transform holds the FFT plan and its buffers.
type Transform struct {
	size       int
	windowType WindowFunc
	fftObj     *fourier.FFT
	workspace  workspace
}

// NewTransform creates a transform over size real samples producing
// size/2+1 complex bins. size must be a power of two.
func NewTransform(size int, windowType WindowFunc) (*Transform, error) {
	if !bitint.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("fft size must be a power of 2, got %d", size)
	}

	coeffs := make([]float64, size)
	if err := applyWindow(coeffs, windowType); err != nil {
		return nil, err
	}

	return &Transform{
		size:       size,
		windowType: windowType,
		fftObj:     fourier.NewFFT(size),
		workspace: workspace{
			input:  make([]float64, size),
			output: make([]complex128, size/2+1),
			window: coeffs,
		},
	}, nil
}

// Compute transforms samples and returns the bins. The returned slice is
// owned by the Transform and overwritten by the next call. Samples beyond
// size are ignored and missing samples are treated as zero.
func (t *Transform) Compute(samples []float64) []complex128 {
	n := len(samples)
	for i := range t.size {
		if i < n {
			t.workspace.input[i] = samples[i] * t.workspace.window[i]
		} else {
			t.workspace.input[i] = 0
		}
	}

	t.fftObj.Coefficients(t.workspace.output, t.workspace.input)
	return t.workspace.output
}

// Reset zeroes the output bins, as if an all-zero window had been computed.
func (t *Transform) Reset() {
	clear(t.workspace.output)
}

// Size returns the number of real input samples.
func (t *Transform) Size() int {
	return t.size
}

// Bins returns the number of complex output bins (size/2+1).
func (t *Transform) Bins() int {
	return len(t.workspace.output)
}

// Window returns the configured window function.
func (t *Transform) Window() WindowFunc {
	return t.windowType
}

// FrequencyForBin returns the center frequency in Hz of bin i at the given
// sample rate, or 0 for an index outside the output.
func (t *Transform) FrequencyForBin(i int, sampleRate float64) float64 {
	if i < 0 || i >= len(t.workspace.output) {
		return 0
	}
	return t.fftObj.Freq(i) * sampleRate
}
