// SPDX-License-Identifier: MIT
package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

const testSampleRate = 44100

func TestRecordingRoundTrip(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "tap.wav")

	rec, err := StartRecording(filename, testSampleRate, 2, 8)
	if err != nil {
		t.Fatalf("Failed to start recording: %v", err)
	}
	if !rec.Active() {
		t.Fatal("Recorder should be active after start")
	}

	rec.Write([]int16{1, -1, 1000, -1000})
	rec.Write(nil)
	rec.Write([]int16{32767, -32768, 0, 0, 5, 6, 7, 8, 9, 10}) // larger than the initial buffer

	if err := rec.Close(); err != nil {
		t.Fatalf("Failed to stop recording: %v", err)
	}
	if rec.Active() {
		t.Error("Recorder should not be active after Close()")
	}
	if err := rec.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	f, err := os.Open(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("recording is not a valid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatal(err)
	}

	if dec.BitDepth != 16 || dec.NumChans != 2 || dec.SampleRate != testSampleRate {
		t.Errorf("format = %d bit, %d ch, %d Hz", dec.BitDepth, dec.NumChans, dec.SampleRate)
	}

	want := []int{1, -1, 1000, -1000, 32767, -32768, 0, 0, 5, 6, 7, 8, 9, 10}
	if len(buf.Data) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(want))
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, buf.Data[i], want[i])
		}
	}
}

func TestRecordingErrorCases(t *testing.T) {
	tests := []struct {
		desc     string
		filename string
	}{
		{"Empty filename", ""},
		{"Invalid path", "/nonexistent/path/file.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			rec, err := StartRecording(tt.filename, testSampleRate, 2, 8)
			if err == nil {
				rec.Close()
				t.Fatal("Expected error but got none")
			}
		})
	}
}

func TestNilRecorderIsInactive(t *testing.T) {
	var rec *Recorder
	if rec.Active() {
		t.Error("nil recorder reported active")
	}
	if err := rec.Close(); err != nil {
		t.Errorf("nil Close() error = %v", err)
	}
}

func TestRecordingNoAllocsHotPath(t *testing.T) {
	rec, err := StartRecording(filepath.Join(t.TempDir(), "alloc.wav"), testSampleRate, 2, 4096)
	if err != nil {
		t.Fatalf("Failed to start recording: %v", err)
	}
	defer rec.Close()

	samples := make([]int16, 4096)
	rec.Write(samples)

	// Only the conversion into the reusable buffer is measured; the encoder
	// itself may allocate.
	allocs := testing.AllocsPerRun(100, func() {
		data := rec.sampleBuf.Data[:len(samples)]
		for i, s := range samples {
			data[i] = int(s)
		}
	})

	if allocs > 0 {
		t.Errorf("Recording hot path allocated memory: got %.1f allocs, want 0", allocs)
	}
}
