// SPDX-License-Identifier: MIT
package visual

import "nausea/internal/render"

type cell struct {
	glyph rune
	pair  render.ColorPair
}

// fakeCanvas records the cells written since the last Clear.
type fakeCanvas struct {
	cells  map[[2]int]cell
	clears int
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{cells: map[[2]int]cell{}}
}

func (f *fakeCanvas) SetCell(x, y int, glyph rune, pair render.ColorPair) {
	f.cells[[2]int{x, y}] = cell{glyph, pair}
}

func (f *fakeCanvas) Clear() {
	clear(f.cells)
	f.clears++
}

func (f *fakeCanvas) at(x, y int) (cell, bool) {
	c, ok := f.cells[[2]int{x, y}]
	return c, ok
}

func (f *fakeCanvas) count(glyph rune) int {
	n := 0
	for _, c := range f.cells {
		if c.glyph == glyph {
			n++
		}
	}
	return n
}
