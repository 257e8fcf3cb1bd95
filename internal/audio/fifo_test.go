// SPDX-License-Identifier: MIT
package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"nausea/internal/config"

	"golang.org/x/sys/unix"
)

func makeFIFO(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.fifo")
	if err := unix.Mkfifo(path, 0o600); err != nil {
		t.Skipf("mkfifo unavailable: %v", err)
	}
	return path
}

func TestFIFOSourceWithoutWriterIsSilent(t *testing.T) {
	src, err := OpenFIFO(makeFIFO(t))
	if err != nil {
		t.Fatalf("OpenFIFO() error = %v", err)
	}
	defer src.Close()

	buf := make([]int16, 64)
	n, err := src.Read(buf)
	if n != 0 || err != nil {
		t.Errorf("Read() = %d, %v; want 0, nil", n, err)
	}
}

func TestFIFOSourceDecodesLittleEndian(t *testing.T) {
	path := makeFIFO(t)
	src, err := OpenFIFO(path)
	if err != nil {
		t.Fatalf("OpenFIFO() error = %v", err)
	}
	defer src.Close()

	w, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	defer w.Close()

	// 1, -1, 0x1234 and a dangling byte.
	if _, err := w.Write([]byte{0x01, 0x00, 0xff, 0xff, 0x34, 0x12, 0x7f}); err != nil {
		t.Fatal(err)
	}

	buf := make([]int16, 64)
	n, err := src.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	want := []int16{1, -1, 0x1234}
	if n != len(want) {
		t.Fatalf("Read() = %d samples, want %d", n, len(want))
	}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, buf[i], want[i])
		}
	}

	// Drained: the next read is silence, not an error.
	if n, err := src.Read(buf); n != 0 || err != nil {
		t.Errorf("drained Read() = %d, %v; want 0, nil", n, err)
	}
}

func TestFIFOSourceCloseTwice(t *testing.T) {
	src, err := OpenFIFO(makeFIFO(t))
	if err != nil {
		t.Fatal(err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if n, _ := src.Read(make([]int16, 4)); n != 0 {
		t.Errorf("Read() after Close = %d, want 0", n)
	}
}

func TestOpenWrapsErrOpenSource(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AudioConfig
	}{
		{"Missing fifo", config.AudioConfig{Source: config.SourceFIFO, FIFO: "/nonexistent/dir/audio.fifo"}},
		{"Unknown source", config.AudioConfig{Source: "jack"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Open(tt.cfg)
			if err == nil {
				src.Close()
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrOpenSource) {
				t.Errorf("error %v does not wrap ErrOpenSource", err)
			}
		})
	}
}

func TestOpenFIFO(t *testing.T) {
	path := makeFIFO(t)
	src, err := Open(config.AudioConfig{Source: config.SourceFIFO, FIFO: path})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer src.Close()

	fifo, ok := src.(*FIFOSource)
	if !ok {
		t.Fatalf("Open() returned %T, want *FIFOSource", src)
	}
	if fifo.Path() != path {
		t.Errorf("Path() = %q, want %q", fifo.Path(), path)
	}
}
