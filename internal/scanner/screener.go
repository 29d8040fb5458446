package scanner

import (
	"github.com/alphabeam/screenline/internal/types"
)

// Screener is the fully user-configurable screen: the caller supplies an
// arbitrary list of filters and the screener splits them into a database
// stage and an indicator stage. Database filters narrow the candidate set
// before any price history is loaded; indicator filters are evaluated per
// company against its history, all of them required to pass.
type Screener struct {
	params     types.Params
	dbFilters  []types.FilterSpec
	techFilter []types.FilterSpec
}

func NewScreener(params types.Params) *Screener {
	db, tech := types.SplitFilters(params.Filters("filters"))

	return &Screener{params: params, dbFilters: db, techFilter: tech}
}

func (s *Screener) Name() string { return "screener" }

// Params returns nothing; the screener's inputs are the free-form filter
// list, not a fixed parameter schema.
func (s *Screener) Params() []types.ParamSpec { return nil }

func (s *Screener) LeadingColumns() []string {
	return s.params.Strings("output_columns", []string{"symbol", "longname", "marketcap"})
}

func (s *Screener) SortInfo() types.SortSpec { return defaultSort() }

func (s *Screener) CandidateFilters() []types.FilterSpec { return s.dbFilters }

func (s *Screener) ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error) {
	for _, f := range s.techFilter {
		if !applyTechFilter(bars, f) {
			return nil, nil
		}
	}

	return snap.Record(), nil
}
