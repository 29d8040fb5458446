package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// The three divergence scanners share one engine: price makes a new extreme
// against a trailing window while RSI fails to confirm it, inside a trend
// regime defined by the 200-day SMA.
//
// bullish_rsi_divergence: downtrend, new price low, RSI holds higher.
// bearish_rsi_divergence: uptrend, new price high, RSI rolls lower.
// bearish_rally_failure: downtrend rally makes a higher high, RSI lags.

type divergenceDirection int

const (
	divergenceBullish divergenceDirection = iota
	divergenceBearish
	divergenceRallyFailure
)

func scanDivergence(bars []types.Bar, snap types.Snapshot, params types.Params, dir divergenceDirection, defaultRsiPeriod int) (types.Record, error) {
	rsiPeriod := params.Int("rsi_period", defaultRsiPeriod)
	divLookback := params.Int("divergence_lookback", 30)
	setupLookback := params.Int("setup_lookback_days", defaultSetupLookback)

	n := len(bars)

	required := divLookback + rsiPeriod + setupLookback
	if n < required {
		return nil, errors.NewInsufficientDataErrorf(required, n, snap.Symbol, "need %d bars for divergence detection", required)
	}

	closes := types.Closes(bars)

	highs := types.Highs(bars)

	lows := types.Lows(bars)

	rsi := indicator.RSI(closes, rsiPeriod)
	sma200 := indicator.SMA(closes, 200)

	for i := 1; i <= setupLookback; i++ {
		cur := n - i

		windowStart := n - (divLookback + i)
		if windowStart < 0 || !indicator.Valid(rsi, cur) || !indicator.Valid(sma200, cur) {
			continue
		}

		var (
			extremeIdx int
			matched    bool
		)

		switch dir {
		case divergenceBullish:
			extremeIdx = windowStart + indicator.ArgMin(lows[windowStart:cur])
			matched = closes[cur] < sma200[cur] && // downtrend
				lows[cur] < lows[extremeIdx] && // new low
				rsi[cur] > rsi[extremeIdx] // momentum holds

		case divergenceBearish:
			extremeIdx = windowStart + indicator.ArgMax(highs[windowStart:cur])
			matched = closes[cur] > sma200[cur] &&
				highs[cur] > highs[extremeIdx] &&
				rsi[cur] < rsi[extremeIdx]

		case divergenceRallyFailure:
			extremeIdx = windowStart + indicator.ArgMax(highs[windowStart:cur])
			matched = closes[cur] < sma200[cur] &&
				highs[cur] > highs[extremeIdx] &&
				rsi[cur] < rsi[extremeIdx]
		}

		if matched {
			rec := snap.Record()
			rec["rsi"] = rsi[cur]
			rec["divergence_date"] = formatDate(bars[cur].Date)

			return rec, nil
		}
	}

	return nil, nil
}

func divergenceParams(defaultRsiPeriod int) []types.ParamSpec {
	return append(liquidityParams(250_000, defaultMinMarketCap),
		types.ParamSpec{Name: "rsi_period", Type: types.ParamTypeInt, Default: defaultRsiPeriod, Label: "RSI Period"},
		types.ParamSpec{Name: "divergence_lookback", Type: types.ParamTypeInt, Default: 30, Label: "Divergence Lookback"},
		types.ParamSpec{Name: "setup_lookback_days", Type: types.ParamTypeInt, Default: defaultSetupLookback, Label: "Setup within (days)"},
	)
}

var divergenceLeadingColumns = []string{"symbol", "rsi", "divergence_date", "longname", "marketcap"}

// BullishRsiDivergenceScanner finds weakening downtrends: a new price low
// the RSI refuses to confirm.
type BullishRsiDivergenceScanner struct {
	params types.Params
}

func NewBullishRsiDivergenceScanner(params types.Params) *BullishRsiDivergenceScanner {
	return &BullishRsiDivergenceScanner{params: params}
}

func (s *BullishRsiDivergenceScanner) Name() string              { return "bullish_rsi_divergence" }
func (s *BullishRsiDivergenceScanner) Params() []types.ParamSpec { return divergenceParams(14) }
func (s *BullishRsiDivergenceScanner) LeadingColumns() []string  { return divergenceLeadingColumns }
func (s *BullishRsiDivergenceScanner) SortInfo() types.SortSpec  { return defaultSort() }

func (s *BullishRsiDivergenceScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	return scanDivergence(bars, snap, s.params, divergenceBullish, 14)
}

// BearishRsiDivergenceScanner finds weakening uptrends: a new price high
// with a lower RSI high.
type BearishRsiDivergenceScanner struct {
	params types.Params
}

func NewBearishRsiDivergenceScanner(params types.Params) *BearishRsiDivergenceScanner {
	return &BearishRsiDivergenceScanner{params: params}
}

func (s *BearishRsiDivergenceScanner) Name() string              { return "bearish_rsi_divergence" }
func (s *BearishRsiDivergenceScanner) Params() []types.ParamSpec { return divergenceParams(14) }
func (s *BearishRsiDivergenceScanner) LeadingColumns() []string  { return divergenceLeadingColumns }
func (s *BearishRsiDivergenceScanner) SortInfo() types.SortSpec  { return defaultSort() }

func (s *BearishRsiDivergenceScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	return scanDivergence(bars, snap, s.params, divergenceBearish, 14)
}

// BearishRallyFailureScanner finds failed relief rallies inside downtrends:
// a higher price high with fading short-period RSI momentum.
type BearishRallyFailureScanner struct {
	params types.Params
}

func NewBearishRallyFailureScanner(params types.Params) *BearishRallyFailureScanner {
	return &BearishRallyFailureScanner{params: params}
}

func (s *BearishRallyFailureScanner) Name() string              { return "bearish_rally_failure" }
func (s *BearishRallyFailureScanner) Params() []types.ParamSpec { return divergenceParams(7) }
func (s *BearishRallyFailureScanner) LeadingColumns() []string  { return divergenceLeadingColumns }
func (s *BearishRallyFailureScanner) SortInfo() types.SortSpec  { return defaultSort() }

func (s *BearishRallyFailureScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	return scanDivergence(bars, snap, s.params, divergenceRallyFailure, 7)
}
