// SPDX-License-Identifier: MIT
package visual

import (
	"nausea/internal/analysis"
	"nausea/internal/render"
)

// FountainMode refreshes one column per tick with the overall level while
// the rest of the columns fall, so the spectrum scrolls across the screen.
type FountainMode struct {
	scaler *analysis.Scaler
	scale  float64
	glyphs Glyphs
	values []float64
}

var _ Mode = (*FountainMode)(nil)

// NewFountain creates the fountain mode.
func NewFountain(scaler *analysis.Scaler, scale float64, glyphs Glyphs) *FountainMode {
	return &FountainMode{scaler: scaler, scale: scale, glyphs: glyphs}
}

func (m *FountainMode) Kind() Kind     { return Fountain }
func (m *FountainMode) Spectral() bool { return true }

// Render implements Mode.
func (m *FountainMode) Render(frame *Frame, g Geometry, s *Session, c render.Canvas) []float64 {
	c.Clear()
	if g.empty() {
		return nil
	}

	st := s.Fountain
	st.Resize(g.Columns, g.Rows)
	if s.Colors {
		s.Bands.Scale(g.Rows)
	}

	mags := m.scaler.Magnitudes(frame.Bins, g.Rows, m.scale)
	level := m.scaler.Aggregate(mags, g.Rows)
	st.Step(g.Rows-min(int(level), g.Rows), g.Rows, s.Keep)

	if cap(m.values) < g.Columns {
		m.values = make([]float64, g.Columns)
	}
	m.values = m.values[:g.Columns]

	for x, top := range st.Heights {
		top = min(top, g.Rows)
		for y := top; y < g.Rows; y++ {
			c.SetCell(x, y, m.glyphs.Bar, s.pair(y))
		}
		m.values[x] = float64(g.Rows - top)
	}

	st.Advance(s.Bounce)
	return m.values
}
