// SPDX-License-Identifier: MIT
//
// Package visual holds the three visualization modes and the state they
// carry between ticks. Modes draw onto a render.Canvas and never touch the
// terminal directly; every piece of mutable state lives in a Session owned
// by the tick loop.
package visual

import (
	"fmt"
	"strings"

	"nausea/internal/render"
)

// Kind names a visualization mode.
type Kind int

const (
	Bars Kind = iota
	Wave
	Fountain
)

var kindNames = map[Kind]string{
	Bars:     "bars",
	Wave:     "wave",
	Fountain: "fountain",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind converts a mode name, or its number key ("1".."3"), to a Kind.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bars", "spectrum", "1":
		return Bars, nil
	case "wave", "2":
		return Wave, nil
	case "fountain", "3":
		return Fountain, nil
	}
	return Bars, fmt.Errorf("unknown mode %q", name)
}

// Frame is what a mode sees of the current tick's audio.
type Frame struct {
	Samples []float64    // Mono samples, zero-padded to the window.
	Got     int          // Mono frames actually read.
	Bins    []complex128 // Transform output; stale when the mode is not spectral.
}

// Geometry is the grid size read at the start of a tick.
type Geometry struct {
	Columns int
	Rows    int
}

func (g Geometry) empty() bool {
	return g.Columns <= 0 || g.Rows <= 0
}

// Glyphs are the characters the modes draw with.
type Glyphs struct {
	Bar   rune
	Peak  rune
	Point rune
}

// DefaultGlyphs returns '|', '.' and '='.
func DefaultGlyphs() Glyphs {
	return Glyphs{Bar: '|', Peak: '.', Point: '='}
}

// Mode draws one tick.
type Mode interface {
	Kind() Kind

	// Spectral reports whether Render reads Frame.Bins. The tick loop skips
	// the transform otherwise.
	Spectral() bool

	// Render draws the frame and returns one value per column (the bar
	// heights in rows), or nil when the mode has no per-column values. The
	// returned slice is reused by the next call.
	Render(frame *Frame, g Geometry, s *Session, c render.Canvas) []float64
}

// Registry maps each Kind to its Mode.
type Registry struct {
	modes map[Kind]Mode
}

// NewRegistry registers modes by their Kind; a later mode replaces an
// earlier one of the same Kind.
func NewRegistry(modes ...Mode) *Registry {
	r := &Registry{modes: make(map[Kind]Mode, len(modes))}
	for _, m := range modes {
		r.modes[m.Kind()] = m
	}
	return r
}

// Lookup returns the mode registered for k.
func (r *Registry) Lookup(k Kind) (Mode, bool) {
	m, ok := r.modes[k]
	return m, ok
}
