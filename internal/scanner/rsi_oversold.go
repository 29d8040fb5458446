package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// RsiOversoldScanner finds pullback candidates: RSI below an oversold
// threshold while the 200-day SMA is still rising and price holds within
// 5% below it. The trend gate separates dips from new downtrends.
type RsiOversoldScanner struct {
	params types.Params
}

func NewRsiOversoldScanner(params types.Params) *RsiOversoldScanner {
	return &RsiOversoldScanner{params: params}
}

func (s *RsiOversoldScanner) Name() string { return "rsi_oversold" }

func (s *RsiOversoldScanner) Params() []types.ParamSpec {
	return append(liquidityParams(defaultMinAvgVolume, defaultMinMarketCap),
		types.ParamSpec{Name: "rsi_period", Type: types.ParamTypeInt, Default: 14, Label: "RSI Period"},
		types.ParamSpec{Name: "rsi_oversold_threshold", Type: types.ParamTypeInt, Default: 30, Label: "RSI Oversold Level"},
		types.ParamSpec{Name: "setup_lookback_days", Type: types.ParamTypeInt, Default: defaultSetupLookback, Label: "Setup within (days)"},
	)
}

func (s *RsiOversoldScanner) LeadingColumns() []string {
	return []string{"symbol", "rsi", "sma200", "setup_date", "longname", "sector", "marketcap"}
}

func (s *RsiOversoldScanner) SortInfo() types.SortSpec {
	// Most oversold first.
	return types.SortSpec{By: []string{"rsi"}, Ascending: []bool{true}}
}

func (s *RsiOversoldScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	rsiPeriod := s.params.Int("rsi_period", 14)
	threshold := float64(s.params.Int("rsi_oversold_threshold", 30))
	lookback := s.params.Int("setup_lookback_days", defaultSetupLookback)

	n := len(bars)
	if n < 201+lookback {
		return nil, errors.NewInsufficientDataErrorf(201+lookback, n, snap.Symbol, "need %d bars for a 200-day trend check", 201+lookback)
	}

	closes := types.Closes(bars)
	rsi := indicator.RSI(closes, rsiPeriod)
	sma200 := indicator.SMA(closes, 200)

	for i := 1; i <= lookback; i++ {
		cur := n - i

		ref := cur - 5
		if ref < 0 || !indicator.Valid(rsi, cur) || !indicator.Valid(sma200, cur) || !indicator.Valid(sma200, ref) {
			continue
		}

		isOversold := rsi[cur] < threshold
		isSMARising := sma200[cur] > sma200[ref]
		isNearSMA := closes[cur] > sma200[cur]*0.95

		if isOversold && isSMARising && isNearSMA {
			rec := snap.Record()
			rec["rsi"] = rsi[cur]
			rec["sma200"] = sma200[cur]
			rec["setup_date"] = formatDate(bars[cur].Date)

			return rec, nil
		}
	}

	return nil, nil
}
