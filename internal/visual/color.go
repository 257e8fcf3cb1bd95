// SPDX-License-Identifier: MIT
package visual

import "nausea/internal/render"

// Band colors the rows from Min to Max percent of the screen height, with
// row 0 at the top.
type Band struct {
	Min   int
	Max   int
	Color string

	scaledMin int
	scaledMax int
}

// ColorBands maps rows to color pairs. Pair i+1 is the color of band i, so
// Palette must be registered with the surface in band order.
type ColorBands struct {
	bands []Band
}

// NewColorBands copies bands in lookup order.
func NewColorBands(bands ...Band) *ColorBands {
	return &ColorBands{bands: append([]Band(nil), bands...)}
}

// DefaultColorBands returns red for the top 20%, yellow to 60% and green
// for the rest.
func DefaultColorBands() *ColorBands {
	return NewColorBands(
		Band{Min: 0, Max: 20, Color: "red"},
		Band{Min: 20, Max: 60, Color: "yellow"},
		Band{Min: 60, Max: 100, Color: "green"},
	)
}

// Palette returns the band colors in pair order.
func (b *ColorBands) Palette() []string {
	names := make([]string, len(b.bands))
	for i, band := range b.bands {
		names[i] = band.Color
	}
	return names
}

// Scale recomputes the row bounds for a screen of rows lines.
func (b *ColorBands) Scale(rows int) {
	for i := range b.bands {
		b.bands[i].scaledMin = b.bands[i].Min * rows / 100
		b.bands[i].scaledMax = b.bands[i].Max * rows / 100
	}
}

// Lookup returns the pair of the first band containing row, or
// render.NoColor.
func (b *ColorBands) Lookup(row int) render.ColorPair {
	for i, band := range b.bands {
		if row >= band.scaledMin && row < band.scaledMax {
			return render.ColorPair(i + 1)
		}
	}
	return render.NoColor
}
