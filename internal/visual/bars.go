// SPDX-License-Identifier: MIT
package visual

import (
	"nausea/internal/analysis"
	"nausea/internal/render"
)

// BarsMode draws one spectrum bar per column with optional falling peaks.
type BarsMode struct {
	scaler *analysis.Scaler
	scale  float64
	glyphs Glyphs
}

var _ Mode = (*BarsMode)(nil)

// NewBars creates the spectrum mode. scale multiplies the normalized
// magnitudes by a fraction of the row count.
func NewBars(scaler *analysis.Scaler, scale float64, glyphs Glyphs) *BarsMode {
	return &BarsMode{scaler: scaler, scale: scale, glyphs: glyphs}
}

func (m *BarsMode) Kind() Kind     { return Bars }
func (m *BarsMode) Spectral() bool { return true }

// Render implements Mode.
func (m *BarsMode) Render(frame *Frame, g Geometry, s *Session, c render.Canvas) []float64 {
	c.Clear()
	if g.empty() {
		return nil
	}

	s.PeakState.Resize(g.Columns)
	if s.Colors {
		s.Bands.Scale(g.Rows)
	}

	mags := m.scaler.Magnitudes(frame.Bins, g.Rows, m.scale)
	values := m.scaler.Columns(mags, g.Columns, g.Rows)

	for x, v := range values {
		ybegin := g.Rows - min(int(v), g.Rows)
		for y := ybegin; y < g.Rows; y++ {
			c.SetCell(x, y, m.glyphs.Bar, s.pair(y))
		}

		if !s.Peaks {
			continue
		}
		if row := s.PeakState.Update(x, ybegin, g.Rows); row != Hidden && row < g.Rows {
			c.SetCell(x, row, m.glyphs.Peak, s.pair(row))
		}
	}
	return values
}
