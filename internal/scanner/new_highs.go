package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// NewHighsScanner finds stocks whose daily high pierced the prior 252-bar
// high within the setup window. Momentum leaders in their purest form.
type NewHighsScanner struct {
	params types.Params
}

func NewNewHighsScanner(params types.Params) *NewHighsScanner {
	return &NewHighsScanner{params: params}
}

func (s *NewHighsScanner) Name() string { return "new_highs" }

func (s *NewHighsScanner) Params() []types.ParamSpec {
	return append(liquidityParams(250_000, defaultMinMarketCap),
		types.ParamSpec{Name: "setup_lookback_days", Type: types.ParamTypeInt, Default: defaultSetupLookback, Label: "Setup within (days)"},
	)
}

func (s *NewHighsScanner) LeadingColumns() []string {
	return []string{"symbol", "setup_date", "pct_of_high", "currentprice", "fiftytwoweekhigh", "rs_percentile", "longname", "industry", "marketcap"}
}

func (s *NewHighsScanner) SortInfo() types.SortSpec {
	// Closest to the high first.
	return types.SortSpec{By: []string{"pct_of_high"}, Ascending: []bool{false}}
}

func (s *NewHighsScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	lookback := s.params.Int("setup_lookback_days", defaultSetupLookback)

	n := len(bars)
	if n < 252+lookback {
		return nil, errors.NewInsufficientDataErrorf(252+lookback, n, snap.Symbol, "need a year of bars for a 52-week high check")
	}

	highs := types.Highs(bars)
	closes := types.Closes(bars)

	for i := 1; i <= lookback; i++ {
		cur := n - i

		windowStart := n - (252 + i)
		if windowStart < 0 {
			continue
		}

		// The 52-week window strictly precedes the day being checked.
		previousHigh := indicator.Max(highs[windowStart:cur])
		if highs[cur] < previousHigh {
			continue
		}

		rec := snap.Record()
		rec["currentprice"] = closes[cur]
		rec["fiftytwoweekhigh"] = highs[cur]

		pctOfHigh := 0.0
		if highs[cur] > 0 {
			pctOfHigh = closes[cur] / highs[cur] * 100
		}

		rec["pct_of_high"] = pctOfHigh
		rec["setup_date"] = formatDate(bars[cur].Date)

		return rec, nil
	}

	return nil, nil
}
