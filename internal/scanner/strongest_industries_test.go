package scanner

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/alphabeam/screenline/internal/types"
)

type StrongestIndustriesTestSuite struct {
	suite.Suite

	store *fakeStore
}

func TestStrongestIndustriesSuite(t *testing.T) {
	suite.Run(t, new(StrongestIndustriesTestSuite))
}

func (suite *StrongestIndustriesTestSuite) SetupTest() {
	suite.store = &fakeStore{history: make(map[int64][]types.Bar)}
}

func (suite *StrongestIndustriesTestSuite) addMember(id int64, symbol, industry string, rs float64) {
	snap := testSnapshot(id, symbol)
	snap.Industry = industry
	snap.RelativeStrengthPercentile252 = &rs

	suite.store.snapshots = append(suite.store.snapshots, snap)
}

func (suite *StrongestIndustriesTestSuite) run(params types.Params) *types.ResultTable {
	sc := NewStrongestIndustriesScanner(params)

	table, err := sc.RunFullScan(suite.store, ScanOptions{Params: params})
	suite.Require().NoError(err)

	return table
}

func (suite *StrongestIndustriesTestSuite) TestRanksIndustriesByMeanRS() {
	suite.addMember(1, "SOFT1", "Software", 95)
	suite.addMember(2, "SOFT2", "Software", 85)
	suite.addMember(3, "BANK1", "Banks", 60)
	suite.addMember(4, "BANK2", "Banks", 50)
	suite.addMember(5, "GOLD1", "Gold", 99)

	params := types.Params{"min_industry_size": 2, "top_n_industries": 1}
	table := suite.run(params)

	// Gold has the single strongest stock but only one member, so Software
	// wins on mean RS.
	suite.Equal([]string{"SOFT1", "SOFT2"}, symbols(table))

	suite.Equal(90.0, table.Rows[0]["industry_rs_percentile"])
	suite.Equal(95.0, table.Rows[0]["rs_percentile"])
}

func (suite *StrongestIndustriesTestSuite) TestTopStocksPerIndustryCapped() {
	for i := int64(1); i <= 4; i++ {
		suite.addMember(i, "S"+string(rune('0'+i)), "Software", float64(60+i*5))
	}

	params := types.Params{"min_industry_size": 2, "top_n_stocks_per_industry": 2}
	table := suite.run(params)

	suite.Equal([]string{"S4", "S3"}, symbols(table))
}

func (suite *StrongestIndustriesTestSuite) TestSmallIndustriesDropped() {
	suite.addMember(1, "ONLY", "Tobacco", 99)

	table := suite.run(types.Params{"min_industry_size": 2})
	suite.True(table.Empty())
}

func (suite *StrongestIndustriesTestSuite) TestMissingIndustryOrRSIgnored() {
	suite.addMember(1, "OK1", "Software", 80)
	suite.addMember(2, "OK2", "Software", 70)

	noIndustry := testSnapshot(3, "NOIND")
	noIndustry.Industry = ""
	rs := 99.0
	noIndustry.RelativeStrengthPercentile252 = &rs
	suite.store.snapshots = append(suite.store.snapshots, noIndustry)

	noRS := testSnapshot(4, "NORS")
	noRS.Industry = "Software"
	noRS.RelativeStrengthPercentile252 = nil
	suite.store.snapshots = append(suite.store.snapshots, noRS)

	table := suite.run(types.Params{"min_industry_size": 2})
	suite.Equal([]string{"OK1", "OK2"}, symbols(table))
}

func (suite *StrongestIndustriesTestSuite) TestAlternateRSPeriodColumn() {
	rs63 := 88.0

	snapA := testSnapshot(1, "A63")
	snapA.Industry = "Software"
	snapA.RelativeStrengthPercentile63 = &rs63

	snapB := testSnapshot(2, "B63")
	snapB.Industry = "Software"
	snapB.RelativeStrengthPercentile63 = &rs63

	suite.store.snapshots = append(suite.store.snapshots, snapA, snapB)

	// With the 3-month column selected, the missing 12-month values no
	// longer matter.
	table := suite.run(types.Params{"min_industry_size": 2, "rs_period_months": 3})
	suite.Len(table.Rows, 2)
	suite.Equal(88.0, table.Rows[0]["rs_percentile"])
}

func (suite *StrongestIndustriesTestSuite) TestRoundsToTwoDecimals() {
	suite.addMember(1, "A", "Software", 33.333333)
	suite.addMember(2, "B", "Software", 66.666666)

	table := suite.run(types.Params{"min_industry_size": 2})

	suite.Equal(66.67, table.Rows[0]["rs_percentile"])
	suite.Equal(50.0, table.Rows[0]["industry_rs_percentile"])
}
