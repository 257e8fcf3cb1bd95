// SPDX-License-Identifier: MIT
package visual

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeakTransitions(t *testing.T) {
	const rows = 20
	p := NewPeakTracker(1, 1)
	require.True(t, p.Resize(1))

	steps := []struct {
		ybegin int
		want   int
	}{
		{rows, Hidden}, // silent column stays hidden
		{10, 10},       // bar appears: snap
		{5, 5},         // bar rises: snap
		{12, 6},        // bar drops: fall one row
		{12, 7},
		{6, 6}, // bar catches up
		{rows, 7},
		{rows, 8},
	}

	for i, st := range steps {
		assert.Equal(t, st.want, p.Update(0, st.ybegin, rows), "step %d", i)
	}
}

func TestPeakHidesOnEmptyBar(t *testing.T) {
	const rows = 4
	p := NewPeakTracker(1, 1)
	p.Resize(1)

	p.Update(0, 2, rows)
	assert.Equal(t, 3, p.Update(0, rows, rows))
	assert.Equal(t, Hidden, p.Update(0, rows, rows))
	assert.Equal(t, Hidden, p.Update(0, rows, rows))
}

func TestPeakEvery(t *testing.T) {
	p := NewPeakTracker(2, 3)
	p.Resize(1)

	p.Update(0, 0, 100)
	got := []int{}
	for range 6 {
		got = append(got, p.Update(0, 50, 100))
	}
	assert.Equal(t, []int{0, 0, 2, 2, 2, 4}, got)
}

func TestPeakNeverDropsMoreThanDrop(t *testing.T) {
	const rows = 50
	rng := rand.New(rand.NewPCG(1, 2))

	for _, drop := range []int{1, 2, 5} {
		p := NewPeakTracker(drop, 1)
		p.Resize(1)

		prev := Hidden
		for range 2000 {
			ybegin := rng.IntN(rows + 1)
			got := p.Update(0, ybegin, rows)

			risen := prev == Hidden || ybegin <= prev
			if !risen && got != Hidden {
				require.LessOrEqual(t, got-prev, drop, "drop=%d prev=%d ybegin=%d", drop, prev, ybegin)
				require.LessOrEqual(t, got, ybegin, "peak fell below the bar")
			}
			prev = got
		}
	}
}

func TestPeakResize(t *testing.T) {
	p := NewPeakTracker(1, 1)
	assert.True(t, p.Resize(4))
	p.Update(2, 3, 10)

	assert.False(t, p.Resize(4), "same width keeps state")
	assert.Equal(t, 3, p.Row(2))

	assert.True(t, p.Resize(6))
	for col := range 6 {
		assert.Equal(t, Hidden, p.Row(col))
	}
	assert.Equal(t, Hidden, p.Row(99))
}

func TestPeakDefaultsClamped(t *testing.T) {
	p := NewPeakTracker(0, -1)
	p.Resize(1)
	p.Update(0, 0, 10)
	assert.Equal(t, 1, p.Update(0, 10, 10))
}
