package indicator

import "math"

// ADX computes the Average Directional Index with Wilder smoothing. The first
// defined value is at offset 2*period-1.
func ADX(high, low, close []float64, period int) []float64 {
	n := len(close)

	out := nanSlice(n)
	if period <= 0 || n < 2*period || len(high) != n || len(low) != n {
		return out
	}

	// Wilder-smoothed true range and directional movement.
	var smTR, smPlusDM, smMinusDM float64

	for i := 1; i <= period; i++ {
		tr, plusDM, minusDM := directionalMovement(high, low, close, i)
		smTR += tr
		smPlusDM += plusDM
		smMinusDM += minusDM
	}

	dx := nanSlice(n)
	dx[period] = dxValue(smTR, smPlusDM, smMinusDM)

	for i := period + 1; i < n; i++ {
		tr, plusDM, minusDM := directionalMovement(high, low, close, i)
		smTR = smTR - smTR/float64(period) + tr
		smPlusDM = smPlusDM - smPlusDM/float64(period) + plusDM
		smMinusDM = smMinusDM - smMinusDM/float64(period) + minusDM
		dx[i] = dxValue(smTR, smPlusDM, smMinusDM)
	}

	// ADX is a Wilder average of DX.
	var adxSum float64
	for i := period; i < 2*period; i++ {
		adxSum += dx[i]
	}

	adx := adxSum / float64(period)
	out[2*period-1] = adx

	for i := 2 * period; i < n; i++ {
		adx = (adx*float64(period-1) + dx[i]) / float64(period)
		out[i] = adx
	}

	return out
}

func directionalMovement(high, low, close []float64, i int) (tr, plusDM, minusDM float64) {
	tr = math.Max(high[i]-low[i], math.Max(math.Abs(high[i]-close[i-1]), math.Abs(low[i]-close[i-1])))

	upMove := high[i] - high[i-1]

	downMove := low[i-1] - low[i]
	if upMove > downMove && upMove > 0 {
		plusDM = upMove
	}

	if downMove > upMove && downMove > 0 {
		minusDM = downMove
	}

	return tr, plusDM, minusDM
}

func dxValue(tr, plusDM, minusDM float64) float64 {
	if tr == 0 {
		return 0
	}

	plusDI := 100 * plusDM / tr

	minusDI := 100 * minusDM / tr
	if plusDI+minusDI == 0 {
		return 0
	}

	return 100 * math.Abs(plusDI-minusDI) / (plusDI + minusDI)
}
