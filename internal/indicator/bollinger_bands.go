package indicator

import "math"

// BBands computes Bollinger Bands: a rolling mean with bands at devUp/devDn
// population standard deviations above and below. The first period-1 entries
// of each series are NaN.
func BBands(values []float64, period int, devUp, devDn float64) (upper, middle, lower []float64) {
	n := len(values)
	upper = nanSlice(n)
	middle = SMA(values, period)
	lower = nanSlice(n)

	if period <= 0 || n < period {
		return upper, middle, lower
	}

	for i := period - 1; i < n; i++ {
		mean := middle[i]

		var variance float64

		for j := i - period + 1; j <= i; j++ {
			d := values[j] - mean
			variance += d * d
		}

		std := math.Sqrt(variance / float64(period))
		upper[i] = mean + devUp*std
		lower[i] = mean - devDn*std
	}

	return upper, middle, lower
}

// BBWidth computes the normalized band width (upper-lower)/middle for each
// offset where all three series are defined.
func BBWidth(upper, middle, lower []float64) []float64 {
	out := nanSlice(len(middle))

	for i := range middle {
		if Valid(upper, i) && Valid(middle, i) && Valid(lower, i) && middle[i] != 0 {
			out[i] = (upper[i] - lower[i]) / middle[i]
		}
	}

	return out
}
