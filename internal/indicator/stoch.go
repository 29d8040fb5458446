package indicator

// Stoch computes the slow stochastic oscillator. FastK measures the close's
// position inside the rolling high-low range over fastKPeriod bars; slowK is
// a slowKPeriod simple average of fastK, and slowD a slowDPeriod simple
// average of slowK.
func Stoch(high, low, close []float64, fastKPeriod, slowKPeriod, slowDPeriod int) (slowK, slowD []float64) {
	n := len(close)

	fastK := nanSlice(n)
	if fastKPeriod <= 0 || n < fastKPeriod || len(high) != n || len(low) != n {
		return nanSlice(n), nanSlice(n)
	}

	for i := fastKPeriod - 1; i < n; i++ {
		highest := high[i]

		lowest := low[i]
		for j := i - fastKPeriod + 1; j <= i; j++ {
			if high[j] > highest {
				highest = high[j]
			}

			if low[j] < lowest {
				lowest = low[j]
			}
		}

		if highest == lowest {
			fastK[i] = 0
			continue
		}

		fastK[i] = 100 * (close[i] - lowest) / (highest - lowest)
	}

	slowK = smaSkipNaN(fastK, slowKPeriod)
	slowD = smaSkipNaN(slowK, slowDPeriod)

	return slowK, slowD
}

// smaSkipNaN averages the last period values at each offset, producing NaN
// until period consecutive defined values are available.
func smaSkipNaN(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 {
		return out
	}

	for i := period - 1; i < len(values); i++ {
		var sum float64

		defined := true

		for j := i - period + 1; j <= i; j++ {
			if !Valid(values, j) {
				defined = false
				break
			}

			sum += values[j]
		}

		if defined {
			out[i] = sum / float64(period)
		}
	}

	return out
}
