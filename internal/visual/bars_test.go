// SPDX-License-Identifier: MIT
package visual

import (
	"testing"

	"nausea/internal/analysis"
	"nausea/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBars builds a mode where column i reads exactly bin i: a window of
// 20 gives 11 bins and a divisor of 10, so at 100 rows and scale 0.2 a bin
// of magnitude m draws a bar of 2m rows.
func newTestBars(t *testing.T) (*BarsMode, []complex128) {
	t.Helper()
	scaler, err := analysis.NewScaler(20, 11, 1, 0)
	require.NoError(t, err)
	return NewBars(scaler, 0.2, DefaultGlyphs()), make([]complex128, 11)
}

func TestBarsColoredColumn(t *testing.T) {
	bars, bins := newTestBars(t)
	bins[3] = 25 // 50 rows

	s := NewSession(Bars)
	s.Colors = true
	c := newFakeCanvas()

	values := bars.Render(&Frame{Bins: bins}, Geometry{Columns: 10, Rows: 100}, s, c)
	require.Len(t, values, 10)
	assert.Equal(t, 50.0, values[3])

	for y := range 100 {
		got, ok := c.at(3, y)
		if y < 50 {
			assert.False(t, ok, "row %d should be empty", y)
			continue
		}
		require.True(t, ok, "row %d should hold a bar", y)
		assert.Equal(t, '|', got.glyph)

		want := render.ColorPair(3)
		if y < 60 {
			want = 2
		}
		assert.Equal(t, want, got.pair, "row %d", y)
	}
	assert.Equal(t, 50, c.count('|'))
}

func TestBarsSilenceDrawsNothing(t *testing.T) {
	bars, bins := newTestBars(t)
	s := NewSession(Bars)
	s.Peaks = true
	c := newFakeCanvas()

	values := bars.Render(&Frame{Bins: bins}, Geometry{Columns: 10, Rows: 40}, s, c)

	for _, v := range values {
		assert.Zero(t, v)
	}
	assert.Empty(t, c.cells)
	for col := range 10 {
		assert.Equal(t, Hidden, s.PeakState.Row(col))
	}
}

func TestBarsUncoloredWhenColorsOff(t *testing.T) {
	bars, bins := newTestBars(t)
	bins[0] = 10
	s := NewSession(Bars)
	c := newFakeCanvas()

	bars.Render(&Frame{Bins: bins}, Geometry{Columns: 10, Rows: 100}, s, c)

	for _, got := range c.cells {
		assert.Equal(t, render.NoColor, got.pair)
	}
}

func TestBarsPeakFallsAfterBarDrops(t *testing.T) {
	bars, bins := newTestBars(t)
	s := NewSession(Bars)
	s.Peaks = true
	g := Geometry{Columns: 10, Rows: 100}
	c := newFakeCanvas()

	bins[0] = 25 // bar top at row 50
	bars.Render(&Frame{Bins: bins}, g, s, c)
	got, ok := c.at(0, 50)
	require.True(t, ok)
	assert.Equal(t, '.', got.glyph, "the peak is drawn over the bar top")
	assert.Equal(t, 50, s.PeakState.Row(0))

	bins[0] = 0
	for tick := 1; tick <= 3; tick++ {
		bars.Render(&Frame{Bins: bins}, g, s, c)
		assert.Equal(t, 50+tick, s.PeakState.Row(0))
		got, ok := c.at(0, 50+tick)
		require.True(t, ok)
		assert.Equal(t, '.', got.glyph)
	}
}

func TestBarsResizeResetsPeaksOnce(t *testing.T) {
	bars, bins := newTestBars(t)
	bins[1] = 10
	s := NewSession(Bars)
	s.Peaks = true
	c := newFakeCanvas()

	bars.Render(&Frame{Bins: bins}, Geometry{Columns: 10, Rows: 100}, s, c)
	assert.Equal(t, 80, s.PeakState.Row(1))

	bins[1] = 0
	bars.Render(&Frame{Bins: bins}, Geometry{Columns: 8, Rows: 100}, s, c)
	assert.Equal(t, 8, s.PeakState.Len())
	assert.Equal(t, Hidden, s.PeakState.Row(1), "resize hides the old peak before it can fall")

	assert.False(t, s.PeakState.Resize(8))
}

func TestBarsEmptyGeometry(t *testing.T) {
	bars, bins := newTestBars(t)
	c := newFakeCanvas()
	assert.Nil(t, bars.Render(&Frame{Bins: bins}, Geometry{}, NewSession(Bars), c))
	assert.Equal(t, 1, c.clears)
}
