package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// CanslimScanner applies a simplified CANSLIM screen: strong quarterly EPS
// growth, a high relative strength percentile, and price within a fraction
// of the 52-week high.
type CanslimScanner struct {
	params types.Params
}

func NewCanslimScanner(params types.Params) *CanslimScanner {
	return &CanslimScanner{params: params}
}

func (s *CanslimScanner) Name() string { return "canslim" }

func (s *CanslimScanner) Params() []types.ParamSpec {
	return append(liquidityParams(250_000, defaultMinMarketCap),
		types.ParamSpec{Name: "min_eps_growth_pct", Type: types.ParamTypeFloat, Default: 25.0, Label: "Min. Quarterly EPS Growth %"},
		types.ParamSpec{Name: "min_rs_percentile", Type: types.ParamTypeInt, Default: 80, Label: "Min. RS Percentile"},
		types.ParamSpec{Name: "within_pct_of_high", Type: types.ParamTypeFloat, Default: 15.0, Label: "Within % of 52W High"},
	)
}

func (s *CanslimScanner) LeadingColumns() []string {
	return []string{"symbol", "earningsquarterlygrowth", "rs_percentile", "pct_of_high", "longname", "industry", "marketcap"}
}

func (s *CanslimScanner) SortInfo() types.SortSpec {
	// Strongest leaders first.
	return types.SortSpec{By: []string{"rs_percentile"}, Ascending: []bool{false}}
}

func (s *CanslimScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	minEpsGrowthPct := s.params.Float("min_eps_growth_pct", 25.0)
	minRsPercentile := float64(s.params.Int("min_rs_percentile", 80))
	withinPctOfHigh := s.params.Float("within_pct_of_high", 15.0)

	// Fundamental gates come straight from the snapshot; companies missing
	// either attribute cannot qualify.
	if snap.EarningsQuarterlyGrowth == nil || snap.RelativeStrengthPercentile252 == nil {
		return nil, nil
	}

	isStrongGrowth := *snap.EarningsQuarterlyGrowth > minEpsGrowthPct/100
	isLeader := *snap.RelativeStrengthPercentile252 > minRsPercentile

	if !isStrongGrowth || !isLeader {
		return nil, nil
	}

	n := len(bars)
	if n < 252 {
		return nil, errors.NewInsufficientDataErrorf(252, n, snap.Symbol, "need a year of bars for the 52-week high gate")
	}

	closes := types.Closes(bars)
	highs := types.Highs(bars)

	currentPrice := closes[n-1]
	fiftyTwoWeekHigh := indicator.Max(highs[n-252:])

	if currentPrice < fiftyTwoWeekHigh*(1-withinPctOfHigh/100) {
		return nil, nil
	}

	rec := snap.Record()

	pctOfHigh := 0.0
	if fiftyTwoWeekHigh > 0 {
		pctOfHigh = currentPrice / fiftyTwoWeekHigh * 100
	}

	rec["pct_of_high"] = pctOfHigh
	rec["rs_percentile"] = *snap.RelativeStrengthPercentile252

	return rec, nil
}
