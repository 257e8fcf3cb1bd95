// SPDX-License-Identifier: MIT
/*
Package bitint provides the power-of-two helpers used to size transform
windows and read buffers.

The analysis window is handed to a radix-2 friendly FFT, so configuration
rejects sizes that are not a power of two and suggests the nearest valid
neighbours:

	if !bitint.IsPowerOfTwo(window) {
		lo, hi := bitint.PrevPowerOfTwo(window), bitint.NextPowerOfTwo(window)
		...
	}

NextPowerOfTwo relies on bits.Len of (size-1). The subtraction keeps exact
powers of two unchanged: Len(7) is 3 and 1<<3 is 8, whereas Len(8) would be 4
and double the input.
*/
package bitint

import "math/bits"

// IsPowerOfTwo reports whether n is a positive power of two. A power of two
// has exactly one bit set, so clearing the lowest set bit leaves zero.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= size. Values <= 0
// return 1.
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return 1 << bits.Len(uint(size-1))
}

// PrevPowerOfTwo returns the largest power of two <= size. Values <= 0
// return 1.
func PrevPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return 1 << (bits.Len(uint(size)) - 1)
}
