package scanner

import (
	"math"

	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
)

// applyTechFilter evaluates one indicator-backed filter against a company's
// price history. Filters fail closed: an unknown name, an operator the
// indicator does not support, or a NaN in the values being compared all
// return false rather than an error.
func applyTechFilter(bars []types.Bar, f types.FilterSpec) bool {
	switch f.Name {
	case "sma":
		return priceVersusSeries(bars, f, func(closes []float64, period int) []float64 {
			return indicator.SMA(closes, period)
		})
	case "ema":
		return priceVersusSeries(bars, f, func(closes []float64, period int) []float64 {
			return indicator.EMA(closes, period)
		})
	case "rsi":
		return rsiFilter(bars, f)
	case "adx":
		return adxFilter(bars, f)
	case "macd":
		return macdFilter(bars, f)
	case "stoch":
		return stochFilter(bars, f)
	case "bbands":
		return bbandsFilter(bars, f)
	default:
		return false
	}
}

// techThreshold extracts the scalar right-hand side of a threshold filter.
// Value wins; "value" inside the parameter map is accepted too so threshold
// and period can travel together.
func techThreshold(f types.FilterSpec) (float64, bool) {
	if f.Value != nil {
		return *f.Value, true
	}

	if v, ok := f.Params["value"]; ok {
		return v, true
	}

	return 0, false
}

// priceVersusSeries compares the latest close against the latest value of a
// close-derived series (SMA, EMA).
func priceVersusSeries(bars []types.Bar, f types.FilterSpec, compute func([]float64, int) []float64) bool {
	period := int(f.Param("period", 20))
	if period <= 0 || len(bars) < period {
		return false
	}

	closes := types.Closes(bars)
	series := compute(closes, period)

	last := len(bars) - 1
	if math.IsNaN(closes[last]) || math.IsNaN(series[last]) {
		return false
	}

	ok, err := f.Op.Compare(closes[last], series[last])
	if err != nil {
		return false
	}

	return ok
}

func rsiFilter(bars []types.Bar, f types.FilterSpec) bool {
	period := int(f.Param("period", 14))
	if period <= 0 || len(bars) < period+1 {
		return false
	}

	threshold, ok := techThreshold(f)
	if !ok {
		return false
	}

	rsi := indicator.RSI(types.Closes(bars), period)

	last := len(bars) - 1
	if math.IsNaN(rsi[last]) {
		return false
	}

	pass, err := f.Op.Compare(rsi[last], threshold)
	if err != nil {
		return false
	}

	return pass
}

func adxFilter(bars []types.Bar, f types.FilterSpec) bool {
	period := int(f.Param("period", 14))
	if period <= 0 || len(bars) < 2*period {
		return false
	}

	threshold, ok := techThreshold(f)
	if !ok {
		return false
	}

	adx := indicator.ADX(types.Highs(bars), types.Lows(bars), types.Closes(bars), period)

	last := len(bars) - 1
	if math.IsNaN(adx[last]) {
		return false
	}

	pass, err := f.Op.Compare(adx[last], threshold)
	if err != nil {
		return false
	}

	return pass
}

func macdFilter(bars []types.Bar, f types.FilterSpec) bool {
	fast := int(f.Param("fastperiod", 12))
	slow := int(f.Param("slowperiod", 26))
	signalPeriod := int(f.Param("signalperiod", 9))

	line, signal, _ := indicator.MACD(types.Closes(bars), fast, slow, signalPeriod)
	if len(line) < 2 {
		return false
	}

	last := len(line) - 1

	switch f.Op {
	case types.OpCrossAbove:
		return indicator.CrossedAbove(line, signal, last)
	case types.OpCrossBelow:
		return indicator.CrossedBelow(line, signal, last)
	default:
		return false
	}
}

func stochFilter(bars []types.Bar, f types.FilterSpec) bool {
	fastK := int(f.Param("fastk_period", 14))
	slowKPeriod := int(f.Param("slowk_period", 3))
	slowDPeriod := int(f.Param("slowd_period", 3))

	slowK, slowD := indicator.Stoch(types.Highs(bars), types.Lows(bars), types.Closes(bars), fastK, slowKPeriod, slowDPeriod)
	if len(slowK) < 2 {
		return false
	}

	last := len(slowK) - 1
	if math.IsNaN(slowK[last]) || math.IsNaN(slowD[last]) {
		return false
	}

	switch f.Op {
	case types.OpCrossAbove:
		return indicator.CrossedAbove(slowK, slowD, last)
	case types.OpCrossBelow:
		return indicator.CrossedBelow(slowK, slowD, last)
	case types.OpAbove, types.OpBelow:
		threshold, ok := techThreshold(f)
		if !ok {
			return false
		}

		pass, err := f.Op.Compare(slowK[last], threshold)
		if err != nil {
			return false
		}

		return pass
	default:
		return false
	}
}

func bbandsFilter(bars []types.Bar, f types.FilterSpec) bool {
	period := int(f.Param("period", 20))
	devUp := f.Param("nbdevup", 2)
	devDn := f.Param("nbdevdn", 2)

	if period <= 0 || len(bars) == 0 {
		return false
	}

	closes := types.Closes(bars)
	upper, _, lower := indicator.BBands(closes, period, devUp, devDn)

	last := len(closes) - 1
	if math.IsNaN(upper[last]) || math.IsNaN(lower[last]) || math.IsNaN(closes[last]) {
		return false
	}

	switch f.Op {
	case types.OpCrossAboveUpper:
		return closes[last] > upper[last]
	case types.OpCrossBelowLower:
		return closes[last] < lower[last]
	default:
		return false
	}
}
