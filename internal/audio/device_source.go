// SPDX-License-Identifier: MIT
package audio

import (
	"errors"
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// DeviceSource captures from a PortAudio input device using the blocking
// API, but only reads once a whole buffer is waiting so the tick never
// stalls.
type DeviceSource struct {
	stream          *portaudio.Stream
	framesPerBuffer int
	buffer          []int16 // ...stream-owned, framesPerBuffer*channels samples
}

var _ Source = (*DeviceSource)(nil)

// OpenDevice initializes PortAudio and starts an input stream on deviceID
// (-1 for the default device).
func OpenDevice(deviceID, channels int, sampleRate float64, framesPerBuffer int) (*DeviceSource, error) {
	if err := Initialize(); err != nil {
		return nil, err
	}

	device, err := InputDevice(deviceID)
	if err != nil {
		Terminate()
		return nil, err
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: channels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      sampleRate,
		FramesPerBuffer: framesPerBuffer,
	}

	buffer := make([]int16, framesPerBuffer*channels)
	stream, err := portaudio.OpenStream(params, buffer)
	if err != nil {
		Terminate()
		return nil, fmt.Errorf("failed to open input stream on %s: %w", device.Name, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		Terminate()
		return nil, fmt.Errorf("failed to start input stream: %w", err)
	}

	return &DeviceSource{
		stream:          stream,
		framesPerBuffer: framesPerBuffer,
		buffer:          buffer,
	}, nil
}

// Read implements Source.
func (d *DeviceSource) Read(buf []int16) (int, error) {
	if d.stream == nil {
		return 0, nil
	}

	avail, err := d.stream.AvailableToRead()
	if err != nil || avail < d.framesPerBuffer {
		return 0, nil
	}

	// An overflow still leaves a full buffer of valid samples.
	if err := d.stream.Read(); err != nil && !errors.Is(err, portaudio.InputOverflowed) {
		return 0, nil
	}

	return copy(buf, d.buffer), nil
}

// Close stops the stream and terminates PortAudio.
func (d *DeviceSource) Close() error {
	if d.stream == nil {
		return nil
	}

	var errs []error
	if err := d.stream.Stop(); err != nil {
		errs = append(errs, err)
	}
	if err := d.stream.Close(); err != nil {
		errs = append(errs, err)
	}
	d.stream = nil

	if err := Terminate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
