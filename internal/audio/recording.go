// SPDX-License-Identifier: MIT
package audio

import (
	"errors"
	"fmt"
	"os"

	"nausea/internal/log"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Recorder writes the raw interleaved input to a 16-bit WAV file. A write
// failure is logged once and the recorder disables itself.
type Recorder struct {
	outputFile *os.File
	wavEncoder *wav.Encoder
	sampleBuf  *audio.IntBuffer // Reusable buffer for format conversion
	failed     bool
}

// StartRecording creates filename and prepares an encoder for up to
// maxSamples interleaved samples per write.
func StartRecording(filename string, sampleRate, channels, maxSamples int) (*Recorder, error) {
	if filename == "" {
		return nil, errors.New("recording output file is required")
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create recording: %w", err)
	}

	return &Recorder{
		outputFile: file,
		wavEncoder: wav.NewEncoder(file, sampleRate, 16, channels, 1),
		sampleBuf: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channels,
				SampleRate:  sampleRate,
			},
			SourceBitDepth: 16,
			Data:           make([]int, maxSamples),
		},
	}, nil
}

// Active reports whether samples are still being written.
func (r *Recorder) Active() bool {
	return r != nil && r.wavEncoder != nil && !r.failed
}

// Write appends samples. Empty writes are skipped.
func (r *Recorder) Write(samples []int16) {
	if !r.Active() || len(samples) == 0 {
		return
	}

	if cap(r.sampleBuf.Data) < len(samples) {
		r.sampleBuf.Data = make([]int, len(samples))
	}
	r.sampleBuf.Data = r.sampleBuf.Data[:len(samples)]
	for i, sample := range samples {
		r.sampleBuf.Data[i] = int(sample)
	}

	if err := r.wavEncoder.Write(r.sampleBuf); err != nil {
		log.Errorf("Error writing to WAV file, recording stopped: %v", err)
		r.failed = true
	}
}

// Close finalizes the WAV header and closes the file.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}

	var errs []error
	if r.wavEncoder != nil {
		if err := r.wavEncoder.Close(); err != nil {
			errs = append(errs, err)
		}
		r.wavEncoder = nil
	}

	if r.outputFile != nil {
		if err := r.outputFile.Close(); err != nil {
			errs = append(errs, err)
		}
		r.outputFile = nil
	}

	return errors.Join(errs...)
}
