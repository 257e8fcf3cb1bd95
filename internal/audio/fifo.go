// SPDX-License-Identifier: MIT
package audio

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// FIFOSource reads little-endian s16 PCM from a named pipe opened without
// blocking. A pipe with no writer, or a writer with nothing buffered, reads
// as silence.
type FIFOSource struct {
	path  string
	fd    int
	bytes []byte // ...raw read buffer, two bytes per sample
}

var _ Source = (*FIFOSource)(nil)

// OpenFIFO opens path read-only and non-blocking.
func OpenFIFO(path string) (*FIFOSource, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open fifo %s: %w", path, err)
	}
	return &FIFOSource{path: path, fd: fd}, nil
}

// Read implements Source. EAGAIN, EOF and read errors all yield zero
// samples; a trailing odd byte is discarded.
func (f *FIFOSource) Read(buf []int16) (int, error) {
	if f.fd < 0 {
		return 0, nil
	}

	want := len(buf) * 2
	if cap(f.bytes) < want {
		f.bytes = make([]byte, want)
	}
	raw := f.bytes[:want]

	n, err := unix.Read(f.fd, raw)
	if err != nil || n <= 0 {
		return 0, nil
	}

	samples := n / 2
	for i := range samples {
		buf[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	return samples, nil
}

// Path returns the pipe path.
func (f *FIFOSource) Path() string {
	return f.path
}

// Close releases the descriptor. It is safe to call more than once.
func (f *FIFOSource) Close() error {
	if f.fd < 0 {
		return nil
	}
	err := unix.Close(f.fd)
	f.fd = -1
	return err
}
