// Package indicator implements the technical indicator series used by the
// scanners. Every function takes a value series and returns a series of the
// same length, padded with NaN until the indicator has enough history; the
// alignment lets callers index indicator values by bar offset.
package indicator

import "math"

// nanSlice returns a slice of the given length filled with NaN.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// Valid reports whether a series value at offset i exists and is a number.
func Valid(series []float64, i int) bool {
	return i >= 0 && i < len(series) && !math.IsNaN(series[i])
}

// CrossedAbove reports whether series a crossed above series b between bars
// i-1 and i. All four values must be valid; a cross requires a strict sign
// change, so a[i-1] == b[i-1] followed by a[i] > b[i] counts.
func CrossedAbove(a, b []float64, i int) bool {
	if i < 1 || !Valid(a, i) || !Valid(b, i) || !Valid(a, i-1) || !Valid(b, i-1) {
		return false
	}

	return a[i] > b[i] && a[i-1] <= b[i-1]
}

// CrossedBelow reports whether series a crossed below series b between bars
// i-1 and i.
func CrossedBelow(a, b []float64, i int) bool {
	if i < 1 || !Valid(a, i) || !Valid(b, i) || !Valid(a, i-1) || !Valid(b, i-1) {
		return false
	}

	return a[i] < b[i] && a[i-1] >= b[i-1]
}
