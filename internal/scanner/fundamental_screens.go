package scanner

import (
	"github.com/alphabeam/screenline/internal/types"
)

// The three screens in this file are expressed entirely as database
// filters. They implement CandidateFilterer, so the orchestrator folds
// their conditions into the candidate query and skips per-bar analysis;
// ScanCompany matches unconditionally.

// GarpScanner screens for growth at a reasonable price: profitable, a
// bounded P/E and PEG, and double-digit quarterly earnings and revenue
// growth.
type GarpScanner struct {
	params types.Params
}

func NewGarpScanner(params types.Params) *GarpScanner {
	return &GarpScanner{params: params}
}

func (s *GarpScanner) Name() string { return "garp" }

func (s *GarpScanner) Params() []types.ParamSpec {
	return append(liquidityParams(defaultMinAvgVolume, defaultMinMarketCap),
		types.ParamSpec{Name: "max_pe_ratio", Type: types.ParamTypeFloat, Default: 25.0, Label: "Max. P/E Ratio"},
		types.ParamSpec{Name: "max_peg_ratio", Type: types.ParamTypeFloat, Default: 1.5, Label: "Max. PEG Ratio"},
		types.ParamSpec{Name: "min_eps_growth_pct", Type: types.ParamTypeFloat, Default: 10.0, Label: "Min. Quarterly EPS Growth %"},
		types.ParamSpec{Name: "min_revenue_growth_pct", Type: types.ParamTypeFloat, Default: 10.0, Label: "Min. Quarterly Revenue Growth %"},
	)
}

func (s *GarpScanner) LeadingColumns() []string {
	return []string{"symbol", "trailingpegratio", "trailingpe", "earningsquarterlygrowth", "revenuegrowth", "longname", "industry", "marketcap"}
}

func (s *GarpScanner) SortInfo() types.SortSpec {
	// Cheapest growth first.
	return types.SortSpec{By: []string{"trailingpegratio"}, Ascending: []bool{true}}
}

func (s *GarpScanner) CandidateFilters() []types.FilterSpec {
	return []types.FilterSpec{
		{Name: "trailingpe", Op: types.OpGT, Value: float64Ptr(0)},
		{Name: "trailingpe", Op: types.OpLT, Value: float64Ptr(s.params.Float("max_pe_ratio", 25.0))},
		{Name: "trailingpegratio", Op: types.OpGT, Value: float64Ptr(0)},
		{Name: "trailingpegratio", Op: types.OpLT, Value: float64Ptr(s.params.Float("max_peg_ratio", 1.5))},
		{Name: "earningsquarterlygrowth", Op: types.OpGT, Value: float64Ptr(s.params.Float("min_eps_growth_pct", 10.0))},
		{Name: "revenuegrowth", Op: types.OpGT, Value: float64Ptr(s.params.Float("min_revenue_growth_pct", 10.0))},
	}
}

func (s *GarpScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	return snap.Record(), nil
}

// UndervaluedPbScanner screens for classic value candidates: a low but
// positive price-to-book ratio, profitability, and restrained leverage.
type UndervaluedPbScanner struct {
	params types.Params
}

func NewUndervaluedPbScanner(params types.Params) *UndervaluedPbScanner {
	return &UndervaluedPbScanner{params: params}
}

func (s *UndervaluedPbScanner) Name() string { return "undervalued_pb" }

func (s *UndervaluedPbScanner) Params() []types.ParamSpec {
	return append(liquidityParams(defaultMinAvgVolume, 500_000_000),
		types.ParamSpec{Name: "max_pb_ratio", Type: types.ParamTypeFloat, Default: 1.5, Label: "Max. Price-to-Book Ratio"},
		types.ParamSpec{Name: "min_pb_ratio", Type: types.ParamTypeFloat, Default: 0.1, Label: "Min. Price-to-Book Ratio"},
		types.ParamSpec{Name: "max_debt_to_equity", Type: types.ParamTypeFloat, Default: 2.0, Label: "Max. Debt-to-Equity"},
	)
}

func (s *UndervaluedPbScanner) LeadingColumns() []string {
	return []string{"symbol", "pricetobook", "trailingpe", "debttoequity", "longname", "industry", "marketcap"}
}

func (s *UndervaluedPbScanner) SortInfo() types.SortSpec {
	// Most undervalued first.
	return types.SortSpec{By: []string{"pricetobook"}, Ascending: []bool{true}}
}

func (s *UndervaluedPbScanner) CandidateFilters() []types.FilterSpec {
	return []types.FilterSpec{
		{Name: "bookvalue", Op: types.OpGT, Value: float64Ptr(0)},
		{Name: "pricetobook", Op: types.OpGT, Value: float64Ptr(s.params.Float("min_pb_ratio", 0.1))},
		{Name: "pricetobook", Op: types.OpLT, Value: float64Ptr(s.params.Float("max_pb_ratio", 1.5))},
		{Name: "trailingpe", Op: types.OpGT, Value: float64Ptr(0)},
		{Name: "debttoequity", Op: types.OpLT, Value: float64Ptr(s.params.Float("max_debt_to_equity", 2.0))},
	}
}

func (s *UndervaluedPbScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	return snap.Record(), nil
}

// HighDividendYieldScanner screens for income candidates: a minimum
// dividend yield backed by a payout ratio low enough to be sustainable.
type HighDividendYieldScanner struct {
	params types.Params
}

func NewHighDividendYieldScanner(params types.Params) *HighDividendYieldScanner {
	return &HighDividendYieldScanner{params: params}
}

func (s *HighDividendYieldScanner) Name() string { return "high_dividend_yield" }

func (s *HighDividendYieldScanner) Params() []types.ParamSpec {
	return append(liquidityParams(defaultMinAvgVolume, defaultMinMarketCap),
		types.ParamSpec{Name: "min_dividend_yield_pct", Type: types.ParamTypeFloat, Default: 3.0, Label: "Min. Dividend Yield %"},
		types.ParamSpec{Name: "max_payout_ratio_pct", Type: types.ParamTypeFloat, Default: 80.0, Label: "Max. Payout Ratio %"},
	)
}

func (s *HighDividendYieldScanner) LeadingColumns() []string {
	return []string{"symbol", "dividendyield", "payoutratio", "longname", "industry", "marketcap"}
}

func (s *HighDividendYieldScanner) SortInfo() types.SortSpec {
	// Highest yield first.
	return types.SortSpec{By: []string{"dividendyield"}, Ascending: []bool{false}}
}

func (s *HighDividendYieldScanner) CandidateFilters() []types.FilterSpec {
	return []types.FilterSpec{
		{Name: "dividendyield", Op: types.OpGT, Value: float64Ptr(s.params.Float("min_dividend_yield_pct", 3.0))},
		{Name: "payoutratio", Op: types.OpGT, Value: float64Ptr(0)},
		{Name: "payoutratio", Op: types.OpLT, Value: float64Ptr(s.params.Float("max_payout_ratio_pct", 80.0))},
	}
}

func (s *HighDividendYieldScanner) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	return snap.Record(), nil
}
