package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// BbExtremeReversalScanner finds mean-reversion setups in an uptrend: the
// low touched or pierced the lower Bollinger Band inside the lookback, and
// today's close has recovered back above it.
type BbExtremeReversalScanner struct {
	params types.Params
}

func NewBbExtremeReversalScanner(params types.Params) *BbExtremeReversalScanner {
	return &BbExtremeReversalScanner{params: params}
}

func (s *BbExtremeReversalScanner) Name() string { return "bb_extreme_reversal" }

func (s *BbExtremeReversalScanner) Params() []types.ParamSpec {
	return append(liquidityParams(250_000, defaultMinMarketCap),
		types.ParamSpec{Name: "bb_period", Type: types.ParamTypeInt, Default: 20, Label: "BB Period"},
		types.ParamSpec{Name: "bb_std_dev", Type: types.ParamTypeFloat, Default: 2.0, Label: "BB Std. Dev."},
		types.ParamSpec{Name: "extreme_lookback", Type: types.ParamTypeInt, Default: defaultSetupLookback, Label: "Extreme Lookback (days)"},
	)
}

func (s *BbExtremeReversalScanner) LeadingColumns() []string {
	return []string{"symbol", "setup_date", "bb_lower", "bb_upper", "longname", "industry", "marketcap"}
}

func (s *BbExtremeReversalScanner) SortInfo() types.SortSpec { return defaultSort() }

func (s *BbExtremeReversalScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	bbPeriod := s.params.Int("bb_period", 20)
	stdDev := s.params.Float("bb_std_dev", 2.0)
	extremeLookback := s.params.Int("extreme_lookback", defaultSetupLookback)

	n := len(bars)
	if n < 201 {
		return nil, errors.NewInsufficientDataErrorf(201, n, snap.Symbol, "need 201 bars for the 200-day trend gate")
	}

	closes := types.Closes(bars)
	lows := types.Lows(bars)
	upper, _, lower := indicator.BBands(closes, bbPeriod, stdDev, stdDev)
	sma200 := indicator.SMA(closes, 200)

	last := n - 1
	if !indicator.Valid(lower, last) || !indicator.Valid(sma200, last) {
		return nil, nil
	}

	// Extreme within the lookback, excluding today.
	extremeInLookback := false

	for i := last - extremeLookback; i < last; i++ {
		if i >= 0 && indicator.Valid(lower, i) && lows[i] <= lower[i] {
			extremeInLookback = true
			break
		}
	}

	reversedToday := closes[last] > lower[last]
	isUptrend := closes[last] > sma200[last]

	if isUptrend && extremeInLookback && reversedToday {
		rec := snap.Record()
		rec["bb_lower"] = lower[last]
		rec["bb_upper"] = upper[last]
		rec["setup_date"] = formatDate(bars[last].Date)

		return rec, nil
	}

	return nil, nil
}
