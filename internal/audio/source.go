// SPDX-License-Identifier: MIT
/*
Package audio turns a stream of interleaved signed 16-bit PCM into one mono
sample window per tick.

Sources never block the tick: a reader with nothing to offer returns zero
samples and the frame is treated as silence. Two sources exist, a named pipe
read with O_NONBLOCK and a PortAudio capture device. The package also holds
the optional noise gate and the WAV recording tap.
*/
package audio

import (
	"errors"
	"fmt"

	"nausea/internal/config"
)

// ErrOpenSource is returned (wrapped) when the configured source cannot be
// opened at startup.
var ErrOpenSource = errors.New("cannot open audio source")

// Source is a non-blocking reader of interleaved int16 samples.
type Source interface {
	// Read fills buf with up to len(buf) interleaved samples and returns the
	// number written. Zero with a nil error means no data is available yet.
	Read(buf []int16) (int, error)
	Close() error
}

// Open creates the source selected by cfg.Source.
func Open(cfg config.AudioConfig) (Source, error) {
	var (
		src Source
		err error
	)

	switch cfg.Source {
	case config.SourceFIFO:
		src, err = OpenFIFO(cfg.FIFO)
	case config.SourceDevice:
		src, err = OpenDevice(cfg.InputDevice, cfg.Channels, cfg.SampleRate, cfg.Window)
	default:
		err = fmt.Errorf("unknown source %q", cfg.Source)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenSource, err)
	}
	return src, nil
}
