// SPDX-License-Identifier: MIT
//
// Package utils holds signal generators and fakes shared by tests across
// the module.
package utils

import "math"

// FullScale is the largest positive 16-bit sample.
const FullScale = math.MaxInt16

// MockTransport records what it is sent instead of transmitting.
type MockTransport struct {
	LastData []float64
	Sends    int
	Closed   bool
}

// Send stores a copy of data for later inspection.
func (m *MockTransport) Send(data []float64) error {
	m.LastData = make([]float64, len(data))
	copy(m.LastData, data)
	m.Sends++
	return nil
}

// Close marks the transport closed.
func (m *MockTransport) Close() error {
	m.Closed = true
	return nil
}

// GenerateComplexWave returns size mono samples in 16-bit range: a 440Hz
// fundamental plus two harmonics at 90% of full scale.
func GenerateComplexWave(size int, sampleRate float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		tm := float64(i) / sampleRate
		signal := math.Sin(2*math.Pi*440*tm)*0.5 +
			math.Sin(2*math.Pi*880*tm)*0.3 +
			math.Sin(2*math.Pi*1320*tm)*0.2
		buffer[i] = math.Round(signal * FullScale * 0.9)
	}
	return buffer
}

// GenerateSineWave returns size mono samples of a sine at frequency with the
// given peak amplitude (in sample units).
func GenerateSineWave(size int, sampleRate, frequency, amplitude float64) []float64 {
	buffer := make([]float64, size)
	for i := range buffer {
		t := float64(i) / sampleRate
		buffer[i] = math.Sin(2*math.Pi*frequency*t) * amplitude
	}
	return buffer
}

// GenerateInterleaved returns frames*channels int16 samples of a sine wave,
// the same value written to every channel of a frame.
func GenerateInterleaved(frames, channels int, sampleRate, frequency, amplitude float64) []int16 {
	buffer := make([]int16, frames*channels)
	for i := range frames {
		t := float64(i) / sampleRate
		v := int16(math.Round(math.Sin(2*math.Pi*frequency*t) * amplitude))
		for c := range channels {
			buffer[i*channels+c] = v
		}
	}
	return buffer
}

// FindPeakBin returns the index of the largest magnitude within
// [startBin, endBin], clamped to the slice.
func FindPeakBin(magnitudes []float64, startBin, endBin int) int {
	if len(magnitudes) == 0 {
		return 0
	}

	if startBin < 0 {
		startBin = 0
	}

	if endBin >= len(magnitudes) {
		endBin = len(magnitudes) - 1
	}

	peakBin := startBin
	peakValue := magnitudes[startBin]

	for bin := startBin + 1; bin <= endBin; bin++ {
		if magnitudes[bin] > peakValue {
			peakValue = magnitudes[bin]
			peakBin = bin
		}
	}

	return peakBin
}
