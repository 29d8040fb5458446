package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// GoldenCrossScanner finds stocks whose 50-day SMA recently crossed above
// the 200-day SMA, a classic long-term bullish trend shift. A price
// extension gate rejects stocks that have already run too far above the
// 50-day SMA by the time the cross is detected.
type GoldenCrossScanner struct {
	params types.Params
}

func NewGoldenCrossScanner(params types.Params) *GoldenCrossScanner {
	return &GoldenCrossScanner{params: params}
}

func (s *GoldenCrossScanner) Name() string { return "golden_cross" }

func (s *GoldenCrossScanner) Params() []types.ParamSpec {
	return append(liquidityParams(defaultMinAvgVolume, defaultMinMarketCap),
		types.ParamSpec{Name: "crossover_lookback_days", Type: types.ParamTypeInt, Default: 5, Label: "Crossover within (days)"},
		types.ParamSpec{Name: "max_price_extension_pct", Type: types.ParamTypeFloat, Default: 5.0, Label: "Max Price Extension % from SMA50"},
	)
}

func (s *GoldenCrossScanner) LeadingColumns() []string {
	return []string{"symbol", "sma50", "sma200", "crossover_date", "longname", "sector", "marketcap"}
}

func (s *GoldenCrossScanner) SortInfo() types.SortSpec { return defaultSort() }

func (s *GoldenCrossScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	lookback := s.params.Int("crossover_lookback_days", 5)
	maxExtensionPct := s.params.Float("max_price_extension_pct", 5.0)

	n := len(bars)
	if n < 200+lookback {
		return nil, errors.NewInsufficientDataErrorf(200+lookback, n, snap.Symbol, "need %d bars for a 200-day crossover check", 200+lookback)
	}

	closes := types.Closes(bars)
	sma50 := indicator.SMA(closes, 50)
	sma200 := indicator.SMA(closes, 200)

	for i := 1; i <= lookback+1; i++ {
		cur := n - i

		prev := cur - 1
		if prev < 0 || !indicator.Valid(sma50, cur) || !indicator.Valid(sma200, cur) {
			continue
		}

		if sma50[cur] > sma200[cur] && sma50[prev] <= sma200[prev] {
			currentPrice := closes[n-1]

			currentSMA50 := sma50[n-1]
			if indicator.Valid(sma50, n-1) && currentPrice < currentSMA50*(1+maxExtensionPct/100) {
				rec := snap.Record()
				rec["sma50"] = currentSMA50
				rec["sma200"] = sma200[n-1]
				rec["crossover_date"] = formatDate(bars[cur].Date)

				return rec, nil
			}

			// The most recent cross failed the extension gate; an older
			// one would be even more extended.
			break
		}
	}

	return nil, nil
}
