package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// DeathCrossScanner finds stocks whose 50-day SMA recently crossed below
// the 200-day SMA while price remains below the 50-day SMA, confirming
// a bearish long-term trend shift.
type DeathCrossScanner struct {
	params types.Params
}

func NewDeathCrossScanner(params types.Params) *DeathCrossScanner {
	return &DeathCrossScanner{params: params}
}

func (s *DeathCrossScanner) Name() string { return "death_cross" }

func (s *DeathCrossScanner) Params() []types.ParamSpec {
	return append(liquidityParams(defaultMinAvgVolume, defaultMinMarketCap),
		types.ParamSpec{Name: "crossover_lookback_days", Type: types.ParamTypeInt, Default: 5, Label: "Crossover within (days)"},
	)
}

func (s *DeathCrossScanner) LeadingColumns() []string {
	return []string{"symbol", "sma50", "sma200", "crossover_date", "longname", "sector", "marketcap"}
}

func (s *DeathCrossScanner) SortInfo() types.SortSpec { return defaultSort() }

func (s *DeathCrossScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	lookback := s.params.Int("crossover_lookback_days", 5)

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

		if sma50[cur] < sma200[cur] && sma50[prev] >= sma200[prev] {
			// Cross found; require price still weak.
			if closes[n-1] < sma50[n-1] {
				rec := snap.Record()
				rec["sma50"] = sma50[n-1]
				rec["sma200"] = sma200[n-1]
				rec["crossover_date"] = formatDate(bars[cur].Date)

				return rec, nil
			}

			break
		}
	}

	return nil, nil
}
