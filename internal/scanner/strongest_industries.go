package scanner

import (
	"math"
	"sort"

	"github.com/alphabeam/screenline/internal/types"
)

// StrongestIndustriesScanner ranks industries by their average relative
// strength percentile and surfaces the strongest stocks within the top
// industries. It never touches price history, so it implements Orchestrated
// and runs its own pipeline instead of the per-company one.
type StrongestIndustriesScanner struct {
	params types.Params
}

func NewStrongestIndustriesScanner(params types.Params) *StrongestIndustriesScanner {
	return &StrongestIndustriesScanner{params: params}
}

func (s *StrongestIndustriesScanner) Name() string { return "strongest_industries" }

func (s *StrongestIndustriesScanner) Params() []types.ParamSpec {
	return []types.ParamSpec{
		{Name: "rs_period_months", Type: types.ParamTypeSelect, Default: 12, Label: "RS Period (Months)", Options: []any{12, 6, 3}},
		{Name: "top_n_industries", Type: types.ParamTypeInt, Default: 5, Label: "Top N Industries"},
		{Name: "top_n_stocks_per_industry", Type: types.ParamTypeInt, Default: 5, Label: "Top N Stocks per Industry"},
		{Name: "min_market_cap", Type: types.ParamTypeInt, Default: 1_000_000_000, Label: "Min. Market Cap"},
		{Name: "min_industry_size", Type: types.ParamTypeInt, Default: 30, Label: "Min. Stocks in Industry"},
	}
}

func (s *StrongestIndustriesScanner) LeadingColumns() []string {
	return []string{"symbol", "longname", "industry", "industry_rs_percentile", "rs_percentile"}
}

func (s *StrongestIndustriesScanner) SortInfo() types.SortSpec {
	return types.SortSpec{
		By:        []string{"industry_rs_percentile", "rs_percentile"},
		Ascending: []bool{false, false},
	}
}

// ScanCompany is never called; the Orchestrated path replaces it.
func (s *StrongestIndustriesScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	return nil, nil
}

// RunFullScan builds the industry ranking in one pass over the candidate
// snapshots. Companies without an industry or a relative strength value for
// the chosen period are ignored.
func (s *StrongestIndustriesScanner) RunFullScan(st CandidateSource, opts ScanOptions) (*types.ResultTable, error) {
	params := mergedParams(s.params, opts.Params)

	market := params.String("market", defaultMarket)
	rsPeriodMonths := params.Int("rs_period_months", 12)
	topNIndustries := params.Int("top_n_industries", 5)
	topNStocks := params.Int("top_n_stocks_per_industry", 5)
	minMarketCap := params.Float("min_market_cap", defaultMinMarketCap)
	minIndustrySize := params.Int("min_industry_size", 30)

	candidates := opts.Candidates
	if candidates == nil {
		var err error

		candidates, err = st.Candidates(market, []types.FilterSpec{
			{Name: "marketcap", Op: types.OpGT, Value: float64Ptr(minMarketCap)},
		})
		if err != nil {
			return nil, err
		}
	}

	type member struct {
		snap types.Snapshot
		rs   float64
	}

	byIndustry := make(map[string][]member)

	for _, snap := range candidates {
		rs := rsPercentile(snap, rsPeriodMonths)
		if snap.Industry == "" || rs == nil {
			continue
		}

		byIndustry[snap.Industry] = append(byIndustry[snap.Industry], member{snap: snap, rs: *rs})
	}

	type ranked struct {
		industry string
		meanRS   float64
	}

	var industries []ranked

	for industry, members := range byIndustry {
		if len(members) < minIndustrySize {
			continue
		}

		sum := 0.0
		for _, m := range members {
			sum += m.rs
		}

		industries = append(industries, ranked{industry: industry, meanRS: sum / float64(len(members))})
	}

	sort.Slice(industries, func(i, j int) bool {
		if industries[i].meanRS != industries[j].meanRS {
			return industries[i].meanRS > industries[j].meanRS
		}

		return industries[i].industry < industries[j].industry
	})

	if len(industries) > topNIndustries {
		industries = industries[:topNIndustries]
	}

	var records []types.Record

	for _, ind := range industries {
		members := byIndustry[ind.industry]

		sort.SliceStable(members, func(i, j int) bool {
			return members[i].rs > members[j].rs
		})

		if len(members) > topNStocks {
			members = members[:topNStocks]
		}

		for _, m := range members {
			records = append(records, types.Record{
				"symbol":                 m.snap.Symbol,
				"longname":               m.snap.LongName,
				"industry":               m.snap.Industry,
				"industry_rs_percentile": round2(ind.meanRS),
				"rs_percentile":          round2(m.rs),
			})
		}
	}

	return types.BuildResultTable(records, s.LeadingColumns(), s.SortInfo()), nil
}

// rsPercentile picks the relative strength column for the requested period.
// Unknown periods fall back to the 12-month column.
func rsPercentile(snap types.Snapshot, months int) *float64 {
	switch months {
	case 6:
		return snap.RelativeStrengthPercentile126
	case 3:
		return snap.RelativeStrengthPercentile63
	default:
		return snap.RelativeStrengthPercentile252
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
