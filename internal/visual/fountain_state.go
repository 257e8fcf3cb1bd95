// SPDX-License-Identifier: MIT
package visual

// Direction is the way the fountain cursor moves.
type Direction int

const (
	Right Direction = iota
	Left
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

func (d Direction) step() int {
	if d == Left {
		return -1
	}
	return 1
}

func (d Direction) reverse() Direction {
	if d == Left {
		return Right
	}
	return Left
}

// FountainState is the per-column bar tops of the fountain plus its cursor.
// A height is the row of the top of the column's bar; rows means empty.
type FountainState struct {
	Heights   []int
	Cursor    int
	Direction Direction
}

// NewFountainState creates an empty state moving in dir.
func NewFountainState(dir Direction) *FountainState {
	return &FountainState{Direction: dir}
}

// Resize sizes the state to columns. If the count changed every column is
// emptied and Resize returns true.
func (f *FountainState) Resize(columns, rows int) bool {
	if columns == len(f.Heights) {
		return false
	}
	f.Heights = make([]int, columns)
	for i := range f.Heights {
		f.Heights[i] = rows
	}
	f.clampCursor()
	return true
}

func (f *FountainState) clampCursor() {
	n := len(f.Heights)
	switch {
	case n == 0 || f.Cursor < 0:
		f.Cursor = 0
	case f.Cursor >= n:
		f.Cursor = n - 1
	}
}

// Step writes ybegin to the cursor column. Other columns hold when keep is
// set and otherwise fall by one row, never past rows.
func (f *FountainState) Step(ybegin, rows int, keep bool) {
	if len(f.Heights) == 0 {
		return
	}
	f.clampCursor()

	for i := range f.Heights {
		switch {
		case i == f.Cursor:
			f.Heights[i] = ybegin
		case keep:
			f.Heights[i] = min(f.Heights[i], rows)
		default:
			f.Heights[i] = min(f.Heights[i]+1, rows)
		}
	}
}

// Advance moves the cursor one column. At an edge a bouncing cursor
// reverses and a wrapping one jumps to the other edge.
func (f *FountainState) Advance(bounce bool) {
	n := len(f.Heights)
	f.clampCursor()
	if n <= 1 {
		return
	}

	next := f.Cursor + f.Direction.step()
	if next >= 0 && next < n {
		f.Cursor = next
		return
	}

	if bounce {
		f.Direction = f.Direction.reverse()
		f.Cursor += f.Direction.step()
		return
	}

	if f.Direction == Right {
		f.Cursor = 0
	} else {
		f.Cursor = n - 1
	}
}
