// Package scanner hosts the scanning engine: the Scanner contract, the
// registry of built-in scanners, and the orchestrator that drives a scan
// from candidate selection through to a sorted result table.
package scanner

import (
	"time"

	"github.com/alphabeam/screenline/internal/types"
)

// Scanner is one screening strategy. Implementations are stateless beyond
// their construction parameters.
//
// ScanCompany must be pure: it must not mutate its inputs and identical
// inputs always produce the same result. It returns (nil, nil) when the
// company does not match, and errors.InsufficientDataError when the price
// history is too short to evaluate the rule; the orchestrator skips the
// company silently in both cases.
type Scanner interface {
	Name() string
	Params() []types.ParamSpec
	ScanCompany(bars []types.Bar, snap types.Snapshot) (types.Record, error)
	LeadingColumns() []string
	SortInfo() types.SortSpec
}

// CandidateFilterer is implemented by scanners whose rule is expressed
// entirely as database filters. Their filters are folded into the candidate
// query and every company that survives it (and the liquidity filter)
// matches without per-bar work.
type CandidateFilterer interface {
	Scanner
	CandidateFilters() []types.FilterSpec
}

// Orchestrated is implemented by scanners that replace the per-company
// pipeline entirely, e.g. rankings computed across the whole candidate set.
type Orchestrated interface {
	Scanner
	RunFullScan(st CandidateSource, opts ScanOptions) (*types.ResultTable, error)
}

// CandidateSource is the slice of the store the Orchestrated path needs.
type CandidateSource interface {
	Candidates(market string, filters []types.FilterSpec) ([]types.Snapshot, error)
}

// dateFormat is how setup dates appear in result records.
const dateFormat = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(dateFormat)
}

// closePositionInRange returns where the close sits inside the bar's
// high-low range, in percent. ok is false for zero-range bars.
func closePositionInRange(bar types.Bar) (pct float64, ok bool) {
	r := bar.High - bar.Low
	if r == 0 {
		return 0, false
	}

	return (bar.Close - bar.Low) / r * 100, true
}

// float64Ptr is a convenience for building FilterSpec thresholds.
func float64Ptr(v float64) *float64 {
	return &v
}
