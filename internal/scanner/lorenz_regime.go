package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// LorenzRegimeScanner classifies each bar into a {-1, 0, 1} regime from the
// close's position inside its rolling range, and matches stocks whose
// regime just flipped from unstable (0) to uptrend (1) while above the
// 200-day SMA.
type LorenzRegimeScanner struct {
	params types.Params
}

func NewLorenzRegimeScanner(params types.Params) *LorenzRegimeScanner {
	return &LorenzRegimeScanner{params: params}
}

func (s *LorenzRegimeScanner) Name() string { return "lorenz_regime" }

func (s *LorenzRegimeScanner) Params() []types.ParamSpec {
	return append(liquidityParams(250_000, defaultMinMarketCap),
		types.ParamSpec{Name: "lookback_period", Type: types.ParamTypeInt, Default: 50, Label: "State Lookback"},
		types.ParamSpec{Name: "momentum_period", Type: types.ParamTypeInt, Default: 14, Label: "Momentum Period"},
		types.ParamSpec{Name: "crossover_threshold", Type: types.ParamTypeFloat, Default: 0.1, Label: "Regime Threshold"},
	)
}

func (s *LorenzRegimeScanner) LeadingColumns() []string {
	return []string{"symbol", "longname", "industry", "marketcap", "lorenz_regime"}
}

func (s *LorenzRegimeScanner) SortInfo() types.SortSpec { return defaultSort() }

func (s *LorenzRegimeScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	lookback := s.params.Int("lookback_period", 50)
	threshold := s.params.Float("crossover_threshold", 0.1)

	n := len(bars)

	required := 201
	if lookback+2 > required {
		required = lookback + 2
	}

	if n < required {
		return nil, errors.NewInsufficientDataErrorf(required, n, snap.Symbol, "need %d bars for regime classification", required)
	}

	closes := types.Closes(bars)
	regimes := lorenzRegimes(closes, lookback, threshold)
	sma200 := indicator.SMA(closes, 200)

	last := n - 1
	if !indicator.Valid(sma200, last) {
		return nil, nil
	}

	flippedToUptrend := regimes[last] == 1 && regimes[last-1] == 0
	isUptrend := closes[last] > sma200[last]

	if flippedToUptrend && isUptrend {
		rec := snap.Record()
		rec["lorenz_regime"] = regimes[last]

		return rec, nil
	}

	return nil, nil
}

// lorenzRegimes maps each bar's close position inside its rolling range
// onto a regime: the position is rescaled to [-1, 1], values beyond the
// threshold become 1 (uptrend) or -1 (downtrend), the rest 0 (unstable).
// A flat or undefined range classifies as unstable.
func lorenzRegimes(closes []float64, lookback int, threshold float64) []int {
	rollingMin := indicator.RollingMin(closes, lookback)
	rollingMax := indicator.RollingMax(closes, lookback)

	regimes := make([]int, len(closes))

	for i := range closes {
		if !indicator.Valid(rollingMin, i) || !indicator.Valid(rollingMax, i) {
			continue
		}

		r := rollingMax[i] - rollingMin[i]
		if r <= 0 {
			continue
		}

		state := 2*(closes[i]-rollingMin[i])/r - 1

		switch {
		case state > threshold:
			regimes[i] = 1
		case state < -threshold:
			regimes[i] = -1
		}
	}

	return regimes
}
