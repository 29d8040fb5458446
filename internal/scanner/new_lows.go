package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// NewLowsScanner finds stocks whose daily low pierced the prior 252-bar
// low within the setup window. Used for capitulation hunting and for
// short-side candidates.
type NewLowsScanner struct {
	params types.Params
}

func NewNewLowsScanner(params types.Params) *NewLowsScanner {
	return &NewLowsScanner{params: params}
}

func (s *NewLowsScanner) Name() string { return "new_lows" }

func (s *NewLowsScanner) Params() []types.ParamSpec {
	return append(liquidityParams(250_000, defaultMinMarketCap),
		types.ParamSpec{Name: "setup_lookback_days", Type: types.ParamTypeInt, Default: defaultSetupLookback, Label: "Setup within (days)"},
	)
}

func (s *NewLowsScanner) LeadingColumns() []string {
	return []string{"symbol", "setup_date", "pct_from_low", "currentprice", "fiftytwoweeklow", "rs_percentile", "longname", "industry", "marketcap"}
}

func (s *NewLowsScanner) SortInfo() types.SortSpec {
	// Closest to the low first.
	return types.SortSpec{By: []string{"pct_from_low"}, Ascending: []bool{true}}
}

func (s *NewLowsScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	lookback := s.params.Int("setup_lookback_days", defaultSetupLookback)

	n := len(bars)
	if n < 252+lookback {
		return nil, errors.NewInsufficientDataErrorf(252+lookback, n, snap.Symbol, "need a year of bars for a 52-week low check")
	}

	lows := types.Lows(bars)
	closes := types.Closes(bars)

	for i := 1; i <= lookback; i++ {
		cur := n - i

		windowStart := n - (252 + i)
		if windowStart < 0 {
			continue
		}

		previousLow := indicator.Min(lows[windowStart:cur])
		if lows[cur] > previousLow {
			continue
		}

		rec := snap.Record()
		rec["currentprice"] = closes[cur]
		rec["fiftytwoweeklow"] = lows[cur]

		pctFromLow := 0.0
		if lows[cur] > 0 {
			pctFromLow = (closes[cur]/lows[cur] - 1) * 100
		}

		rec["pct_from_low"] = pctFromLow
		rec["setup_date"] = formatDate(bars[cur].Date)

		return rec, nil
	}

	return nil, nil
}
