// SPDX-License-Identifier: MIT
package visual

import (
	"nausea/internal/log"
	"nausea/internal/render"
)

// Session is the mutable state of a running visualizer: the live toggles
// and the per-column state of the modes. It is owned by the tick loop.
type Session struct {
	Mode   Kind
	Colors bool
	Peaks  bool
	Keep   bool // Fountain columns hold instead of falling.
	Bounce bool // Fountain cursor reverses at the edges instead of wrapping.
	Quit   bool

	// ColorCapable is false when the surface has no colors; the color
	// toggle is then ignored.
	ColorCapable bool

	PeakState *PeakTracker
	Fountain  *FountainState
	Bands     *ColorBands
}

// NewSession returns a session showing kind with peaks falling one row per
// tick, a right-moving fountain and the default color bands.
func NewSession(kind Kind) *Session {
	return &Session{
		Mode:         kind,
		ColorCapable: true,
		PeakState:    NewPeakTracker(1, 1),
		Fountain:     NewFountainState(Right),
		Bands:        DefaultColorBands(),
	}
}

// HandleKey applies one live control and reports whether the key was
// recognized.
func (s *Session) HandleKey(key rune) bool {
	switch key {
	case render.KeyQuit:
		s.Quit = true
	case 'c':
		if !s.ColorCapable {
			log.Warnf("Colors are not supported by this terminal")
			return true
		}
		s.Colors = !s.Colors
	case 'p':
		s.Peaks = !s.Peaks
		if s.Peaks {
			s.PeakState.Reset()
		}
	case 'k':
		s.Keep = !s.Keep
	case 'd':
		s.Fountain.Direction = s.Fountain.Direction.reverse()
	case 'b':
		s.Bounce = !s.Bounce
	case '1':
		s.Mode = Bars
	case '2':
		s.Mode = Wave
	case '3':
		s.Mode = Fountain
	default:
		return false
	}

	log.Debugf("Key %q: mode=%s colors=%t peaks=%t keep=%t bounce=%t direction=%s",
		key, s.Mode, s.Colors, s.Peaks, s.Keep, s.Bounce, s.Fountain.Direction)
	return true
}

// pair returns the color of row when colors are on.
func (s *Session) pair(row int) render.ColorPair {
	if !s.Colors || s.Bands == nil {
		return render.NoColor
	}
	return s.Bands.Lookup(row)
}
