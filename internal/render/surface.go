// SPDX-License-Identifier: MIT
//
// Package render is the text-grid output and key input of the visualizer.
// Modes draw through the narrow Canvas interface; the tick loop owns the
// full Surface.
package render

import (
	"errors"
	"time"
)

// ErrNoColors is returned by InitColors when the terminal cannot display
// colors.
var ErrNoColors = errors.New("terminal does not support colors")

// ColorPair selects a registered palette entry. Pairs are numbered from 1
// in palette order; NoColor draws with the terminal's default colors.
type ColorPair int

const NoColor ColorPair = 0

// Key codes delivered by PollKey for non-printing keys.
const (
	KeyQuit rune = 'q' // Escape and Ctrl-C arrive as KeyQuit.
)

// Canvas is the part of a surface a visualization mode may touch.
type Canvas interface {
	SetCell(x, y int, glyph rune, pair ColorPair)
	Clear()
}

// Surface is a terminal session.
type Surface interface {
	Canvas

	// Size returns the current grid in columns and rows.
	Size() (cols, rows int)

	// Show flushes pending cell writes to the terminal.
	Show()

	// PollKey waits up to timeout for a key press.
	PollKey(timeout time.Duration) (rune, bool)

	HasColors() bool

	// InitColors registers palette as pairs 1..len(palette). It must be
	// called once, before the first frame that uses colors.
	InitColors(palette []string) error

	Close() error
}
