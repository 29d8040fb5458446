package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResultTableTestSuite struct {
	suite.Suite
}

func TestResultTableSuite(t *testing.T) {
	suite.Run(t, new(ResultTableTestSuite))
}

func (suite *ResultTableTestSuite) TestEmptyRecords() {
	table := BuildResultTable(nil, []string{"symbol"}, DefaultSortSpec())
	suite.True(table.Empty())
	suite.Empty(table.Columns)
}

func (suite *ResultTableTestSuite) TestLeadingColumnsFirst() {
	records := []Record{
		{"symbol": "AAA", "marketcap": 2e9, "sector": "tech", "crossover_date": "2024-01-10"},
		{"symbol": "BBB", "marketcap": 5e9, "sector": "energy", "crossover_date": "2024-01-09"},
	}

	table := BuildResultTable(records, []string{"symbol", "crossover_date", "not_present"}, DefaultSortSpec())

	// Declared leading columns that exist come first, declared order preserved;
	// the absent one is silently dropped.
	suite.Equal("symbol", table.Columns[0])
	suite.Equal("crossover_date", table.Columns[1])
	suite.NotContains(table.Columns, "not_present")

	// All remaining columns must appear exactly once.
	suite.ElementsMatch([]string{"symbol", "crossover_date", "sector", "marketcap"}, table.Columns)
}

func (suite *ResultTableTestSuite) TestSortDescendingByDefault() {
	records := []Record{
		{"symbol": "AAA", "marketcap": 2e9},
		{"symbol": "BBB", "marketcap": 5e9},
		{"symbol": "CCC", "marketcap": 3e9},
	}

	table := BuildResultTable(records, []string{"symbol"}, DefaultSortSpec())

	suite.Equal("BBB", table.Rows[0]["symbol"])
	suite.Equal("CCC", table.Rows[1]["symbol"])
	suite.Equal("AAA", table.Rows[2]["symbol"])
}

func (suite *ResultTableTestSuite) TestSortAscending() {
	records := []Record{
		{"symbol": "AAA", "rsi": 44.0},
		{"symbol": "BBB", "rsi": 21.0},
	}

	spec := SortSpec{By: []string{"rsi"}, Ascending: []bool{true}}
	table := BuildResultTable(records, nil, spec)

	suite.Equal("BBB", table.Rows[0]["symbol"])
}

func (suite *ResultTableTestSuite) TestMissingSortKeySkippedSilently() {
	records := []Record{
		{"symbol": "AAA"},
		{"symbol": "BBB"},
	}

	table := BuildResultTable(records, nil, DefaultSortSpec())

	// No marketcap column anywhere: original order preserved, no error.
	suite.Equal("AAA", table.Rows[0]["symbol"])
	suite.Equal("BBB", table.Rows[1]["symbol"])
}

func (suite *ResultTableTestSuite) TestMultiKeySort() {
	records := []Record{
		{"symbol": "AAA", "industry_rs_percentile": 90.0, "rs_percentile": 70.0},
		{"symbol": "BBB", "industry_rs_percentile": 90.0, "rs_percentile": 95.0},
		{"symbol": "CCC", "industry_rs_percentile": 80.0, "rs_percentile": 99.0},
	}

	spec := SortSpec{By: []string{"industry_rs_percentile", "rs_percentile"}, Ascending: []bool{false, false}}
	table := BuildResultTable(records, nil, spec)

	suite.Equal("BBB", table.Rows[0]["symbol"])
	suite.Equal("AAA", table.Rows[1]["symbol"])
	suite.Equal("CCC", table.Rows[2]["symbol"])
}

func (suite *ResultTableTestSuite) TestSnapshotRecordOmitsBookkeeping() {
	pe := 21.5
	snap := Snapshot{
		ID:         17,
		Symbol:     "AAA",
		LongName:   "Alpha Atlantic",
		IsActive:   true,
		MarketCap:  4e9,
		TrailingPE: &pe,
	}

	rec := snap.Record()
	suite.Equal("AAA", rec["symbol"])
	suite.Equal(21.5, rec["trailingpe"])
	suite.NotContains(rec, "id")
	suite.NotContains(rec, "isactive")
	suite.NotContains(rec, "pricetobook") // nil optionals are omitted
}
