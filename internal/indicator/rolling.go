package indicator

import (
	"math"
	"sort"
)

// RollingMean computes a rolling mean over the trailing window, emitting a
// value once at least minPeriods observations are available. With
// minPeriods=1 the leading edge is an expanding mean, which is how the
// liquidity filter warms up on short histories.
func RollingMean(values []float64, window, minPeriods int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 {
		return out
	}

	if minPeriods < 1 {
		minPeriods = 1
	}

	var sum float64

	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}

		count := i + 1
		if count > window {
			count = window
		}

		if count >= minPeriods {
			out[i] = sum / float64(count)
		}
	}

	return out
}

// RollingMax computes the maximum over the trailing window. The first
// window-1 entries are NaN.
func RollingMax(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		m := values[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if values[j] > m {
				m = values[j]
			}
		}

		out[i] = m
	}

	return out
}

// RollingMin computes the minimum over the trailing window. The first
// window-1 entries are NaN.
func RollingMin(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}

	for i := window - 1; i < len(values); i++ {
		m := values[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if values[j] < m {
				m = values[j]
			}
		}

		out[i] = m
	}

	return out
}

// RollingQuantile computes the q-quantile over the trailing window with
// linear interpolation between order statistics. NaN entries inside the
// window make that offset NaN.
func RollingQuantile(values []float64, window int, q float64) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window || q < 0 || q > 1 {
		return out
	}

	buf := make([]float64, window)

	for i := window - 1; i < len(values); i++ {
		defined := true

		copy(buf, values[i-window+1:i+1])

		for _, v := range buf {
			if math.IsNaN(v) {
				defined = false
				break
			}
		}

		if !defined {
			continue
		}

		sort.Float64s(buf)

		pos := q * float64(window-1)
		lo := int(math.Floor(pos))

		hi := int(math.Ceil(pos))
		if lo == hi {
			out[i] = buf[lo]
			continue
		}

		frac := pos - float64(lo)
		out[i] = buf[lo]*(1-frac) + buf[hi]*frac
	}

	return out
}

// Max returns the maximum of a slice. NaN when empty.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}

	return m
}

// Min returns the minimum of a slice. NaN when empty.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}

	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}

	return m
}

// ArgMax returns the index of the maximum value, -1 when empty.
func ArgMax(values []float64) int {
	if len(values) == 0 {
		return -1
	}

	idx := 0
	for i, v := range values {
		if v > values[idx] {
			idx = i
		}
	}

	return idx
}

// ArgMin returns the index of the minimum value, -1 when empty.
func ArgMin(values []float64) int {
	if len(values) == 0 {
		return -1
	}

	idx := 0
	for i, v := range values {
		if v < values[idx] {
			idx = i
		}
	}

	return idx
}
