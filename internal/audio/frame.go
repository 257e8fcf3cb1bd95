// SPDX-License-Identifier: MIT
package audio

import "fmt"

// Frame is the reusable per-tick sample window.
type Frame struct {
	channels int
	raw      []int16 // ...interleaved samples as read, window*channels
	Samples  []float64
	Got      int // Mono frames actually read this tick.
}

// NewFrame allocates a frame for window mono samples of channels-channel
// input.
func NewFrame(window, channels int) (*Frame, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window must be positive, got %d", window)
	}
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}
	return &Frame{
		channels: channels,
		raw:      make([]int16, window*channels),
		Samples:  make([]float64, window),
	}, nil
}

// Channels returns the interleaved channel count.
func (f *Frame) Channels() int {
	return f.channels
}

// Raw returns the interleaved samples read by the last Acquire.
func (f *Frame) Raw() []int16 {
	return f.raw[:f.Got*f.channels]
}

// Acquire reads one window from src and mixes it down to mono. A failed or
// empty read leaves an all-zero frame; a short read is zero-padded.
func (f *Frame) Acquire(src Source) {
	n, err := src.Read(f.raw)
	if err != nil || n < 0 {
		n = 0
	}
	n = min(n, len(f.raw))
	f.Mix(n)
}

// Mix rebuilds Samples from the first n interleaved samples of the raw
// buffer. A partial trailing frame is dropped.
func (f *Frame) Mix(n int) {
	f.Got = n / f.channels

	if f.channels == 1 {
		for i := range f.Got {
			f.Samples[i] = float64(f.raw[i])
		}
	} else {
		for i := range f.Got {
			l := float64(f.raw[2*i])
			r := float64(f.raw[2*i+1])
			f.Samples[i] = (l + r) / 2
		}
	}
	clear(f.Samples[f.Got:])
}
