package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// SellingClimaxScanner finds capitulation bars: a new N-day low on a
// volume spike, with the close recovering into the upper part of the
// day's range. Panic supply absorbed by stronger hands.
type SellingClimaxScanner struct {
	params types.Params
}

func NewSellingClimaxScanner(params types.Params) *SellingClimaxScanner {
	return &SellingClimaxScanner{params: params}
}

func (s *SellingClimaxScanner) Name() string { return "selling_climax" }

func (s *SellingClimaxScanner) Params() []types.ParamSpec {
	return append(liquidityParams(250_000, 500_000_000),
		types.ParamSpec{Name: "new_low_period", Type: types.ParamTypeInt, Default: 20, Label: "New Low Period (days)"},
		types.ParamSpec{Name: "volume_spike_multiplier", Type: types.ParamTypeFloat, Default: 2.5, Label: "Volume Spike x"},
		types.ParamSpec{Name: "close_reversal_pct", Type: types.ParamTypeFloat, Default: 50.0, Label: "Min. Close Position in Range %"},
		types.ParamSpec{Name: "setup_lookback_days", Type: types.ParamTypeInt, Default: defaultSetupLookback, Label: "Setup within (days)"},
	)
}

func (s *SellingClimaxScanner) LeadingColumns() []string {
	return []string{"symbol", "climax_date", "close_pos_in_range", "longname", "marketcap"}
}

func (s *SellingClimaxScanner) SortInfo() types.SortSpec { return defaultSort() }

func (s *SellingClimaxScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	newLowPeriod := s.params.Int("new_low_period", 20)
	spikeMultiplier := s.params.Float("volume_spike_multiplier", 2.5)
	reversalPct := s.params.Float("close_reversal_pct", 50.0)
	lookback := s.params.Int("setup_lookback_days", defaultSetupLookback)

	n := len(bars)

	required := newLowPeriod + 1 + lookback
	if n < required {
		return nil, errors.NewInsufficientDataErrorf(required, n, snap.Symbol, "need %d bars for a %d-day low check", required, newLowPeriod)
	}

	lows := types.Lows(bars)
	volumes := types.Volumes(bars)
	avgVolume20 := indicator.SMA(volumes, 20)

	for i := 1; i <= lookback; i++ {
		cur := n - i

		windowStart := n - (newLowPeriod + i)
		if windowStart < 0 || !indicator.Valid(avgVolume20, cur) {
			continue
		}

		isNewLow := lows[cur] < indicator.Min(lows[windowStart:cur])
		isHighVolume := volumes[cur] > avgVolume20[cur]*spikeMultiplier

		closePos, ok := closePositionInRange(bars[cur])
		if !ok {
			continue
		}

		isReversalClose := closePos > reversalPct

		if isNewLow && isHighVolume && isReversalClose {
			rec := snap.Record()
			rec["close_pos_in_range"] = closePos
			rec["climax_date"] = formatDate(bars[cur].Date)

			return rec, nil
		}
	}

	return nil, nil
}
