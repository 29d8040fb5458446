package indicator

import "math"

// MACD computes the MACD line (fast EMA minus slow EMA), its signal line (an
// EMA of the MACD line), and the histogram (line minus signal). Entries are
// NaN until both underlying averages are defined.
func MACD(values []float64, fastPeriod, slowPeriod, signalPeriod int) (line, signal, hist []float64) {
	n := len(values)
	line = nanSlice(n)
	signal = nanSlice(n)
	hist = nanSlice(n)

	if fastPeriod <= 0 || slowPeriod <= 0 || signalPeriod <= 0 || n < slowPeriod {
		return line, signal, hist
	}

	fast := EMA(values, fastPeriod)

	slow := EMA(values, slowPeriod)
	for i := range values {
		if Valid(fast, i) && Valid(slow, i) {
			line[i] = fast[i] - slow[i]
		}
	}

	// The signal EMA is seeded from the first signalPeriod defined MACD
	// values, mirroring how EMA seeds from raw prices.
	start := slowPeriod - 1
	if start+signalPeriod > n {
		return line, signal, hist
	}

	var seed float64
	for i := start; i < start+signalPeriod; i++ {
		seed += line[i]
	}

	seed /= float64(signalPeriod)
	signal[start+signalPeriod-1] = seed

	k := 2.0 / float64(signalPeriod+1)

	prev := seed
	for i := start + signalPeriod; i < n; i++ {
		prev = (line[i]-prev)*k + prev
		signal[i] = prev
	}

	for i := range values {
		if !math.IsNaN(line[i]) && !math.IsNaN(signal[i]) {
			hist[i] = line[i] - signal[i]
		}
	}

	return line, signal, hist
}
