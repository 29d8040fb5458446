package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// WyckoffSpringScanner finds a simplified spring: price briefly pierces the
// floor of a tight consolidation box and closes back above it on restrained
// volume. A shakeout with no genuine selling pressure behind it.
type WyckoffSpringScanner struct {
	params types.Params
}

func NewWyckoffSpringScanner(params types.Params) *WyckoffSpringScanner {
	return &WyckoffSpringScanner{params: params}
}

func (s *WyckoffSpringScanner) Name() string { return "wyckoff_spring" }

func (s *WyckoffSpringScanner) Params() []types.ParamSpec {
	return append(liquidityParams(250_000, defaultMinMarketCap),
		types.ParamSpec{Name: "support_period", Type: types.ParamTypeInt, Default: 60, Label: "Support Period (days)"},
		types.ParamSpec{Name: "max_volume_ratio", Type: types.ParamTypeFloat, Default: 1.2, Label: "Max Volume Ratio"},
		types.ParamSpec{Name: "max_box_height_pct", Type: types.ParamTypeFloat, Default: 10.0, Label: "Max Box Height %"},
		types.ParamSpec{Name: "min_close_position_pct", Type: types.ParamTypeFloat, Default: 50.0, Label: "Min Close Pos in Range %"},
		types.ParamSpec{Name: "setup_lookback_days", Type: types.ParamTypeInt, Default: defaultSetupLookback, Label: "Setup within (days)"},
	)
}

func (s *WyckoffSpringScanner) LeadingColumns() []string {
	return []string{"symbol", "spring_date", "support_level", "longname", "marketcap"}
}

func (s *WyckoffSpringScanner) SortInfo() types.SortSpec { return defaultSort() }

func (s *WyckoffSpringScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	supportPeriod := s.params.Int("support_period", 60)
	maxVolumeRatio := s.params.Float("max_volume_ratio", 1.2)
	maxBoxHeightPct := s.params.Float("max_box_height_pct", 10.0)
	minClosePosPct := s.params.Float("min_close_position_pct", 50.0)
	lookback := s.params.Int("setup_lookback_days", defaultSetupLookback)

	n := len(bars)

	required := supportPeriod + 1 + lookback
	if n < required {
		return nil, errors.NewInsufficientDataErrorf(required, n, snap.Symbol, "need %d bars to define the consolidation box", required)
	}

	highs := types.Highs(bars)
	lows := types.Lows(bars)
	closes := types.Closes(bars)
	volumes := types.Volumes(bars)
	avgVolume20 := indicator.SMA(volumes, 20)

	for i := 1; i <= lookback; i++ {
		cur := n - i

		windowStart := n - (supportPeriod + i)
		if windowStart < 0 || !indicator.Valid(avgVolume20, cur) {
			continue
		}

		boxHigh := indicator.Max(highs[windowStart:cur])

		boxLow := indicator.Min(lows[windowStart:cur])

		boxHeightPct := 0.0
		if boxLow > 0 {
			boxHeightPct = (boxHigh - boxLow) / boxLow * 100
		}

		isTightBox := boxHeightPct > 0 && boxHeightPct < maxBoxHeightPct

		closePos, ok := closePositionInRange(bars[cur])
		if !ok {
			continue
		}

		hasLongTail := closePos >= minClosePosPct
		isSpringAction := lows[cur] < boxLow && closes[cur] > boxLow
		isLowVolume := volumes[cur]/avgVolume20[cur] < maxVolumeRatio

		if isTightBox && isSpringAction && hasLongTail && isLowVolume {
			rec := snap.Record()
			rec["support_level"] = boxLow
			rec["spring_date"] = formatDate(bars[cur].Date)

			return rec, nil
		}
	}

	return nil, nil
}
