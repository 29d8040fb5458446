package types

import (
	"fmt"
	"sort"
	"strings"
)

// Record is one matching company's snapshot enriched with scanner-computed
// fields. Records are ephemeral; ownership passes to the caller once the
// result table is assembled.
type Record map[string]any

// Float returns a numeric field by column name, with ok=false when the field
// is absent or not numeric.
func (r Record) Float(name string) (float64, bool) {
	v, ok := r[name]
	if !ok {
		return 0, false
	}

	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// SortSpec declares how a scanner wants its result table ordered. By and
// Ascending are parallel; a missing Ascending entry means descending.
type SortSpec struct {
	By        []string `json:"by"`
	Ascending []bool   `json:"ascending"`
}

// DefaultSortSpec sorts by market cap descending, the convention shared by
// most scanners.
func DefaultSortSpec() SortSpec {
	return SortSpec{
		By:        []string{"marketcap"},
		Ascending: []bool{false},
	}
}

// ResultTable is the ordered output of one scan: column names with
// scanner-declared leading columns first, one row per matching company.
type ResultTable struct {
	Columns []string `json:"columns"`
	Rows    []Record `json:"rows"`
}

// EmptyResultTable returns a table with no rows and no columns.
func EmptyResultTable() *ResultTable {
	return &ResultTable{}
}

// Empty reports whether the table has no rows.
func (t *ResultTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// BuildResultTable assembles records into a table. Leading columns appear
// first in their declared order (only those actually present), followed by the
// canonical snapshot columns, then any scanner-computed columns sorted by
// name. Rows are sorted per the sort spec; a sort key that is absent from the
// table is skipped silently.
func BuildResultTable(records []Record, leading []string, sortSpec SortSpec) *ResultTable {
	table := &ResultTable{
		Columns: nil,
		Rows:    records,
	}
	if len(records) == 0 {
		return table
	}

	present := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			present[k] = true
		}
	}

	taken := make(map[string]bool)

	for _, col := range leading {
		if present[col] && !taken[col] {
			table.Columns = append(table.Columns, col)
			taken[col] = true
		}
	}

	for _, col := range snapshotColumnOrder {
		if present[col] && !taken[col] {
			table.Columns = append(table.Columns, col)
			taken[col] = true
		}
	}

	var extras []string

	for col := range present {
		if !taken[col] {
			extras = append(extras, col)
		}
	}

	sort.Strings(extras)
	table.Columns = append(table.Columns, extras...)

	table.sortRows(sortSpec)

	return table
}

func (t *ResultTable) sortRows(spec SortSpec) {
	type sortKey struct {
		column    string
		ascending bool
	}

	var keys []sortKey

	for i, col := range spec.By {
		if !t.hasColumn(col) {
			continue
		}

		ascending := false
		if i < len(spec.Ascending) {
			ascending = spec.Ascending[i]
		}

		keys = append(keys, sortKey{column: col, ascending: ascending})
	}

	if len(keys) == 0 {
		return
	}

	sort.SliceStable(t.Rows, func(i, j int) bool {
		for _, key := range keys {
			c := compareValues(t.Rows[i][key.column], t.Rows[j][key.column])
			if c == 0 {
				continue
			}

			if key.ascending {
				return c < 0
			}

			return c > 0
		}

		return false
	})
}

func (t *ResultTable) hasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}

	return false
}

// compareValues orders two cell values. Numerics compare numerically,
// everything else falls back to string comparison; a missing value sorts
// before any present value.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}

	if a == nil {
		return -1
	}

	if b == nil {
		return 1
	}

	af, aok := asFloat(a)

	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
