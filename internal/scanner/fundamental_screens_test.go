package scanner

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/alphabeam/screenline/internal/types"
)

type FundamentalScreensTestSuite struct {
	suite.Suite
}

func TestFundamentalScreensSuite(t *testing.T) {
	suite.Run(t, new(FundamentalScreensTestSuite))
}

func (suite *FundamentalScreensTestSuite) filterValues(filters []types.FilterSpec, name string, op types.Operator) []float64 {
	var out []float64

	for _, f := range filters {
		if f.Name == name && f.Op == op && f.Value != nil {
			out = append(out, *f.Value)
		}
	}

	return out
}

func (suite *FundamentalScreensTestSuite) TestGarpMatchesUnconditionally() {
	sc := NewGarpScanner(types.Params{})

	rec, err := sc.ScanCompany(nil, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Require().NotNil(rec)
	suite.Equal("AAA", rec["symbol"])
}

func (suite *FundamentalScreensTestSuite) TestGarpFiltersBoundValuationAndGrowth() {
	sc := NewGarpScanner(types.Params{})
	filters := sc.CandidateFilters()

	suite.Equal([]float64{25.0}, suite.filterValues(filters, "trailingpe", types.OpLT))
	suite.Equal([]float64{1.5}, suite.filterValues(filters, "trailingpegratio", types.OpLT))
	suite.Equal([]float64{10.0}, suite.filterValues(filters, "earningsquarterlygrowth", types.OpGT))
	suite.Equal([]float64{10.0}, suite.filterValues(filters, "revenuegrowth", types.OpGT))

	// Negative earnings never pass.
	suite.Equal([]float64{0}, suite.filterValues(filters, "trailingpe", types.OpGT))
}

func (suite *FundamentalScreensTestSuite) TestGarpFilterThresholdsFollowParams() {
	sc := NewGarpScanner(types.Params{"max_pe_ratio": 15.0, "max_peg_ratio": 1.0})
	filters := sc.CandidateFilters()

	suite.Equal([]float64{15.0}, suite.filterValues(filters, "trailingpe", types.OpLT))
	suite.Equal([]float64{1.0}, suite.filterValues(filters, "trailingpegratio", types.OpLT))
}

func (suite *FundamentalScreensTestSuite) TestUndervaluedPbRequiresPositiveBookValue() {
	sc := NewUndervaluedPbScanner(types.Params{})
	filters := sc.CandidateFilters()

	// bookvalue > 0 keeps rows with missing book data out of the screen.
	suite.Equal([]float64{0}, suite.filterValues(filters, "bookvalue", types.OpGT))
	suite.Equal([]float64{1.5}, suite.filterValues(filters, "pricetobook", types.OpLT))
	suite.Equal([]float64{0.1}, suite.filterValues(filters, "pricetobook", types.OpGT))
	suite.Equal([]float64{2.0}, suite.filterValues(filters, "debttoequity", types.OpLT))
}

func (suite *FundamentalScreensTestSuite) TestUndervaluedPbSortsCheapestFirst() {
	sc := NewUndervaluedPbScanner(types.Params{})

	sort := sc.SortInfo()
	suite.Equal([]string{"pricetobook"}, sort.By)
	suite.Equal([]bool{true}, sort.Ascending)
}

func (suite *FundamentalScreensTestSuite) TestHighDividendYieldFilters() {
	sc := NewHighDividendYieldScanner(types.Params{"min_dividend_yield_pct": 5.0})
	filters := sc.CandidateFilters()

	suite.Equal([]float64{5.0}, suite.filterValues(filters, "dividendyield", types.OpGT))
	suite.Equal([]float64{80.0}, suite.filterValues(filters, "payoutratio", types.OpLT))
	suite.Equal([]float64{0}, suite.filterValues(filters, "payoutratio", types.OpGT))
}

func (suite *FundamentalScreensTestSuite) TestHighDividendYieldSortsHighestFirst() {
	sc := NewHighDividendYieldScanner(types.Params{})

	sort := sc.SortInfo()
	suite.Equal([]string{"dividendyield"}, sort.By)
	suite.Equal([]bool{false}, sort.Ascending)
}
