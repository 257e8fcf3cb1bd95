// SPDX-License-Identifier: MIT
package visual

// Hidden is the row of a peak that is not drawn.
const Hidden = -1

type peak struct {
	row int // Hidden or a screen row
	age int // ticks since the peak was last pushed up
}

// PeakTracker holds one falling peak marker per column.
type PeakTracker struct {
	drop  int // rows per step
	every int // ticks per step
	peaks []peak
}

// NewPeakTracker creates a tracker whose peaks fall drop rows every every
// ticks. Values below 1 are treated as 1.
func NewPeakTracker(drop, every int) *PeakTracker {
	return &PeakTracker{drop: max(drop, 1), every: max(every, 1)}
}

// Resize sizes the tracker to columns. If the count changed every peak is
// reset to Hidden and Resize returns true.
func (p *PeakTracker) Resize(columns int) bool {
	if columns == len(p.peaks) {
		return false
	}
	if cap(p.peaks) >= columns {
		p.peaks = p.peaks[:columns]
	} else {
		p.peaks = make([]peak, columns)
	}
	p.Reset()
	return true
}

// Reset hides every peak.
func (p *PeakTracker) Reset() {
	for i := range p.peaks {
		p.peaks[i] = peak{row: Hidden}
	}
}

// Len returns the number of tracked columns.
func (p *PeakTracker) Len() int {
	return len(p.peaks)
}

// Row returns the peak row of column col, or Hidden.
func (p *PeakTracker) Row(col int) int {
	if col < 0 || col >= len(p.peaks) {
		return Hidden
	}
	return p.peaks[col].row
}

// Update moves column col's peak given the bar top ybegin on a screen of
// rows lines and returns the new row, which may be Hidden. A bar at or above
// the peak pushes it up; otherwise the peak falls toward the bar but never
// below it. A peak resting on an empty bar disappears.
func (p *PeakTracker) Update(col, ybegin, rows int) int {
	pk := &p.peaks[col]

	if pk.row == Hidden || pk.row >= ybegin {
		pk.row = ybegin
		pk.age = 0
	} else {
		pk.age++
		if pk.age%p.every == 0 {
			pk.row = min(pk.row+p.drop, ybegin)
		}
	}

	if ybegin == rows && pk.row == rows {
		pk.row = Hidden
		pk.age = 0
	}
	return pk.row
}
