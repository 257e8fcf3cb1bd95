// SPDX-License-Identifier: MIT
package visual

import (
	"math"

	"nausea/internal/render"
)

// WaveMode draws the raw samples as an oscilloscope trace.
type WaveMode struct {
	scale  float64
	glyphs Glyphs
}

var _ Mode = (*WaveMode)(nil)

// NewWave creates the oscilloscope mode. scale is the fraction of the half
// height a full-scale sample reaches.
func NewWave(scale float64, glyphs Glyphs) *WaveMode {
	return &WaveMode{scale: scale, glyphs: glyphs}
}

func (m *WaveMode) Kind() Kind     { return Wave }
func (m *WaveMode) Spectral() bool { return false }

// Render implements Mode. With fewer frames read than columns the screen is
// only cleared.
func (m *WaveMode) Render(frame *Frame, g Geometry, _ *Session, c render.Canvas) []float64 {
	c.Clear()
	if g.empty() || frame.Got < g.Columns {
		return nil
	}

	perCol := frame.Got / g.Columns
	half := float64(g.Rows / 2)
	prev := 0.0

	for x := range g.Columns {
		sum := 0.0
		for _, v := range frame.Samples[x*perCol : (x+1)*perCol] {
			sum += v
		}
		pt := sum / float64(perCol) / math.MaxInt16 * half * m.scale

		c.SetCell(x, clampRow(int(half+pt), g.Rows), m.glyphs.Point, render.NoColor)
		c.SetCell(x, clampRow(int(half+(prev+pt)/2), g.Rows), m.glyphs.Point, render.NoColor)
		prev = pt
	}
	return nil
}

func clampRow(y, rows int) int {
	return max(0, min(y, rows-1))
}
