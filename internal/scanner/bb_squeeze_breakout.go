package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// BbSqueezeBreakoutScanner finds volatility compression resolving upward:
// Bollinger Band width sat in the lowest decile of its own trailing range
// on the bar before a close above the upper band, inside an uptrend.
type BbSqueezeBreakoutScanner struct {
	params types.Params
}

func NewBbSqueezeBreakoutScanner(params types.Params) *BbSqueezeBreakoutScanner {
	return &BbSqueezeBreakoutScanner{params: params}
}

func (s *BbSqueezeBreakoutScanner) Name() string { return "bb_squeeze_breakout" }

func (s *BbSqueezeBreakoutScanner) Params() []types.ParamSpec {
	return append(liquidityParams(250_000, defaultMinMarketCap),
		types.ParamSpec{Name: "bb_period", Type: types.ParamTypeInt, Default: 20, Label: "BB Period"},
		types.ParamSpec{Name: "squeeze_period", Type: types.ParamTypeInt, Default: 120, Label: "Squeeze Lookback"},
		types.ParamSpec{Name: "squeeze_quantile", Type: types.ParamTypeFloat, Default: 0.1, Label: "Squeeze Quantile"},
		types.ParamSpec{Name: "breakout_lookback_days", Type: types.ParamTypeInt, Default: defaultSetupLookback, Label: "Breakout within (days)"},
	)
}

func (s *BbSqueezeBreakoutScanner) LeadingColumns() []string {
	return []string{"symbol", "breakout_date", "longname", "industry", "marketcap"}
}

func (s *BbSqueezeBreakoutScanner) SortInfo() types.SortSpec { return defaultSort() }

func (s *BbSqueezeBreakoutScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	bbPeriod := s.params.Int("bb_period", 20)
	squeezePeriod := s.params.Int("squeeze_period", 120)
	squeezeQuantile := s.params.Float("squeeze_quantile", 0.1)
	lookback := s.params.Int("breakout_lookback_days", defaultSetupLookback)

	n := len(bars)
	if n < squeezePeriod {
		return nil, errors.NewInsufficientDataErrorf(squeezePeriod, n, snap.Symbol, "need %d bars to measure the squeeze baseline", squeezePeriod)
	}

	closes := types.Closes(bars)
	upper, middle, lower := indicator.BBands(closes, bbPeriod, 2.0, 2.0)
	sma200 := indicator.SMA(closes, 200)
	width := indicator.BBWidth(upper, middle, lower)
	squeezeThreshold := indicator.RollingQuantile(width, squeezePeriod, squeezeQuantile)

	for i := 1; i <= lookback; i++ {
		cur := n - i

		prev := cur - 1
		if prev < 0 || !indicator.Valid(width, cur) || !indicator.Valid(sma200, cur) {
			continue
		}

		// The squeeze must hold on the bar before the breakout.
		inSqueeze := indicator.Valid(squeezeThreshold, prev) && indicator.Valid(width, prev) &&
			width[prev] <= squeezeThreshold[prev]
		isBreakout := closes[cur] > upper[cur]
		isUptrend := closes[cur] > sma200[cur]

		if isUptrend && inSqueeze && isBreakout {
			rec := snap.Record()
			rec["breakout_date"] = formatDate(bars[cur].Date)

			return rec, nil
		}
	}

	return nil, nil
}
