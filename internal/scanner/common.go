package scanner

import (
	"github.com/alphabeam/screenline/internal/types"
)

// Shared defaults of the orchestration pipeline.
const (
	defaultMarket         = "us"
	defaultMinMarketCap   = 1_000_000_000
	defaultMinAvgVolume   = 100_000
	defaultVolumeLookback = 50
	defaultDaysBack       = 500
	defaultSetupLookback  = 2
)

// liquidityParams returns the parameter specs shared by almost every
// scanner. Individual scanners override the volume and market cap defaults.
func liquidityParams(minAvgVolume, minMarketCap int) []types.ParamSpec {
	return []types.ParamSpec{
		{Name: "min_avg_volume", Type: types.ParamTypeInt, Default: minAvgVolume, Label: "Min. Avg. Volume"},
		{Name: "volume_lookback_days", Type: types.ParamTypeInt, Default: defaultVolumeLookback, Label: "Avg. Volume Lookback"},
		{Name: "min_market_cap", Type: types.ParamTypeInt, Default: minMarketCap, Label: "Min. Market Cap"},
	}
}

// defaultSort sorts results by market cap descending, largest first.
func defaultSort() types.SortSpec {
	return types.DefaultSortSpec()
}

// mergedParams overlays run-time parameters on top of the parameters the
// scanner was constructed with.
func mergedParams(base, overlay types.Params) types.Params {
	if len(overlay) == 0 {
		return base
	}

	if len(base) == 0 {
		return overlay
	}

	out := make(types.Params, len(base)+len(overlay))

	for k, v := range base {
		out[k] = v
	}

	for k, v := range overlay {
		out[k] = v
	}

	return out
}
