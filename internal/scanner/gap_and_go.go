package scanner

import (
	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// GapAndGoScanner finds momentum gaps: the open jumps a minimum percentage
// over the previous close on a volume spike, inside an uptrend.
type GapAndGoScanner struct {
	params types.Params
}

func NewGapAndGoScanner(params types.Params) *GapAndGoScanner {
	return &GapAndGoScanner{params: params}
}

func (s *GapAndGoScanner) Name() string { return "gap_and_go" }

func (s *GapAndGoScanner) Params() []types.ParamSpec {
	return append(liquidityParams(500_000, 500_000_000),
		types.ParamSpec{Name: "min_gap_up_pct", Type: types.ParamTypeFloat, Default: 2.0, Label: "Min. Gap Up %"},
		types.ParamSpec{Name: "volume_spike_multiplier", Type: types.ParamTypeFloat, Default: 1.5, Label: "Volume Spike x"},
		types.ParamSpec{Name: "gap_lookback_days", Type: types.ParamTypeInt, Default: defaultSetupLookback, Label: "Gap within (days)"},
	)
}

func (s *GapAndGoScanner) LeadingColumns() []string {
	return []string{"symbol", "gap_pct", "gap_date", "longname", "marketcap"}
}

func (s *GapAndGoScanner) SortInfo() types.SortSpec {
	return types.SortSpec{By: []string{"gap_pct"}, Ascending: []bool{false}}
}

func (s *GapAndGoScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	minGapPct := s.params.Float("min_gap_up_pct", 2.0)
	spikeMultiplier := s.params.Float("volume_spike_multiplier", 1.5)
	lookback := s.params.Int("gap_lookback_days", defaultSetupLookback)

	n := len(bars)
	if n < 201+lookback {
		return nil, errors.NewInsufficientDataErrorf(201+lookback, n, snap.Symbol, "need %d bars for the 200-day trend gate", 201+lookback)
	}

	opens := types.Opens(bars)
	closes := types.Closes(bars)
	volumes := types.Volumes(bars)
	sma200 := indicator.SMA(closes, 200)
	avgVolume20 := indicator.SMA(volumes, 20)

	for i := 1; i <= lookback; i++ {
		cur := n - i

		prev := cur - 1
		if prev < 0 || !indicator.Valid(sma200, cur) || !indicator.Valid(avgVolume20, cur) {
			continue
		}

		gap := (opens[cur] - closes[prev]) / closes[prev]
		isGapUp := gap > minGapPct/100
		isHighVolume := volumes[cur] > avgVolume20[cur]*spikeMultiplier
		isUptrend := closes[cur] > sma200[cur]

		if isUptrend && isGapUp && isHighVolume {
			rec := snap.Record()
			rec["gap_pct"] = gap * 100
			rec["gap_date"] = formatDate(bars[cur].Date)

			return rec, nil
		}
	}

	return nil, nil
}
