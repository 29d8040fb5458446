package store

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/alphabeam/screenline/internal/logger"
	"github.com/alphabeam/screenline/internal/types"
)

type StoreTestSuite struct {
	suite.Suite
	store *DuckDBStore
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

// SetupTest creates a fresh in-memory database for each test.
func (suite *StoreTestSuite) SetupTest() {
	st, err := NewStore(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Require().NoError(st.InitSchema())
	suite.store = st
}

func (suite *StoreTestSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Close()
		suite.store = nil
	}
}

func (suite *StoreTestSuite) seedCompany(id int64, symbol, exchange string, marketCap float64, mutate func(*types.Snapshot)) {
	snap := types.Snapshot{
		ID:           id,
		Symbol:       symbol,
		LongName:     symbol + " Inc",
		Exchange:     exchange,
		Sector:       "Technology",
		Industry:     "Software",
		Country:      "United States of America",
		IsActive:     true,
		MarketCap:    marketCap,
		CurrentPrice: 100,
	}
	if mutate != nil {
		mutate(&snap)
	}

	suite.Require().NoError(suite.store.UpsertCompany(snap))
}

func (suite *StoreTestSuite) TestInitSchemaIsIdempotent() {
	suite.Require().NoError(suite.store.InitSchema())

	var count int
	err := suite.store.DB().QueryRow(`SELECT COUNT(*) FROM exchange`).Scan(&count)
	suite.Require().NoError(err)

	// Seeded exactly once despite two InitSchema calls.
	suite.Equal(68, count)
}

func (suite *StoreTestSuite) TestCandidatesByMarket() {
	suite.seedCompany(1, "AAA", "NYSE", 5e9, nil)
	suite.seedCompany(2, "BBB", "NMS", 3e9, nil)
	suite.seedCompany(3, "CCC", "TOR", 4e9, nil)

	snaps, err := suite.store.Candidates("us", nil)
	suite.Require().NoError(err)
	suite.Len(snaps, 2)

	symbols := []string{snaps[0].Symbol, snaps[1].Symbol}
	suite.ElementsMatch([]string{"AAA", "BBB"}, symbols)
}

func (suite *StoreTestSuite) TestCandidatesExcludeInactive() {
	suite.seedCompany(1, "AAA", "NYSE", 5e9, nil)
	suite.seedCompany(2, "BBB", "NYSE", 5e9, func(s *types.Snapshot) { s.IsActive = false })

	snaps, err := suite.store.Candidates("us", nil)
	suite.Require().NoError(err)
	suite.Len(snaps, 1)
	suite.Equal("AAA", snaps[0].Symbol)
}

func (suite *StoreTestSuite) TestCandidatesNumericFilter() {
	suite.seedCompany(1, "BIG", "NYSE", 5e9, nil)
	suite.seedCompany(2, "SML", "NYSE", 5e8, nil)

	threshold := 1e9

	snaps, err := suite.store.Candidates("us", []types.FilterSpec{
		{Name: "marketcap", Op: types.OpGT, Value: &threshold},
	})
	suite.Require().NoError(err)
	suite.Len(snaps, 1)
	suite.Equal("BIG", snaps[0].Symbol)
}

func (suite *StoreTestSuite) TestCandidatesPercentageFilterDividesBy100() {
	roe := 0.25

	suite.seedCompany(1, "HI", "NYSE", 5e9, func(s *types.Snapshot) { s.ReturnOnEquity = &roe })

	low := 0.05

	suite.seedCompany(2, "LO", "NYSE", 5e9, func(s *types.Snapshot) { s.ReturnOnEquity = &low })

	// User asks for ROE > 15 (percent); stored values are fractions.
	threshold := 15.0

	snaps, err := suite.store.Candidates("us", []types.FilterSpec{
		{Name: "returnonequity", Op: types.OpGT, Value: &threshold},
	})
	suite.Require().NoError(err)
	suite.Len(snaps, 1)
	suite.Equal("HI", snaps[0].Symbol)
}

func (suite *StoreTestSuite) TestCandidatesNullAttributeNeverMatches() {
	pe := 10.0

	suite.seedCompany(1, "HAS", "NYSE", 5e9, func(s *types.Snapshot) { s.TrailingPE = &pe })
	suite.seedCompany(2, "NIL", "NYSE", 5e9, nil)

	threshold := 50.0

	snaps, err := suite.store.Candidates("us", []types.FilterSpec{
		{Name: "trailingpe", Op: types.OpLT, Value: &threshold},
	})
	suite.Require().NoError(err)
	suite.Len(snaps, 1)
	suite.Equal("HAS", snaps[0].Symbol)
}

func (suite *StoreTestSuite) TestCandidatesUnknownFilterIgnored() {
	suite.seedCompany(1, "AAA", "NYSE", 5e9, nil)

	value := 1.0

	snaps, err := suite.store.Candidates("us", []types.FilterSpec{
		{Name: "no_such_metric", Op: types.OpGT, Value: &value},
	})
	suite.Require().NoError(err)
	suite.Len(snaps, 1)
}

func (suite *StoreTestSuite) TestCandidatesContradictoryBoundsEmpty() {
	suite.seedCompany(1, "AAA", "NYSE", 5e9, nil)

	lower := 1e12

	upper := 1e6

	snaps, err := suite.store.Candidates("us", []types.FilterSpec{
		{Name: "marketcap", Op: types.OpGT, Value: &lower},
		{Name: "marketcap", Op: types.OpLT, Value: &upper},
	})
	suite.Require().NoError(err)
	suite.Empty(snaps)
}

func (suite *StoreTestSuite) TestCandidatesCategoryIn() {
	suite.seedCompany(1, "AAA", "NYSE", 5e9, func(s *types.Snapshot) { s.Sector = "Technology" })
	suite.seedCompany(2, "BBB", "NYSE", 5e9, func(s *types.Snapshot) { s.Sector = "Energy" })
	suite.seedCompany(3, "CCC", "NYSE", 5e9, func(s *types.Snapshot) { s.Sector = "Utilities" })

	snaps, err := suite.store.Candidates("us", []types.FilterSpec{
		{Name: "sector", Op: types.OpIn, Values: []string{"Technology", "Energy"}},
	})
	suite.Require().NoError(err)
	suite.Len(snaps, 2)
}

func (suite *StoreTestSuite) TestCandidatesRoundTripOptionalFields() {
	pb := 1.5

	dy := 0.04

	suite.seedCompany(1, "AAA", "NYSE", 5e9, func(s *types.Snapshot) {
		s.PriceToBook = &pb
		s.DividendYield = &dy
	})

	snaps, err := suite.store.Candidates("us", nil)
	suite.Require().NoError(err)
	suite.Require().Len(snaps, 1)

	snap := snaps[0]
	suite.Require().NotNil(snap.PriceToBook)
	suite.InDelta(1.5, *snap.PriceToBook, 1e-9)
	suite.Require().NotNil(snap.DividendYield)
	suite.InDelta(0.04, *snap.DividendYield, 1e-9)
	suite.Nil(snap.TrailingPE)
}

func (suite *StoreTestSuite) seedBars(companyID int64, start time.Time, closes []float64, splits []float64) {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		split := 1.0
		if splits != nil {
			split = splits[i]
		}

		bars[i] = types.Bar{
			CompanyID:        companyID,
			Date:             start.AddDate(0, 0, i),
			Open:             c,
			High:             c + 1,
			Low:              c - 1,
			Close:            c,
			AdjClose:         c,
			Volume:           1000,
			SplitCoefficient: split,
		}
	}

	suite.Require().NoError(suite.store.UpsertBars(bars))
}

func (suite *StoreTestSuite) TestPriceHistorySortedPerCompany() {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	suite.seedBars(1, start, []float64{10, 11, 12}, nil)
	suite.seedBars(2, start, []float64{20, 21}, nil)

	end := start.AddDate(0, 0, 10)

	history, err := suite.store.PriceHistory([]int64{1, 2}, 30, optional.Some(end))
	suite.Require().NoError(err)
	suite.Len(history, 2)
	suite.Len(history[1], 3)
	suite.Len(history[2], 2)

	for i := 1; i < len(history[1]); i++ {
		suite.True(history[1][i].Date.After(history[1][i-1].Date))
	}
}

func (suite *StoreTestSuite) TestPriceHistoryWindowBound() {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	suite.seedBars(1, start, []float64{10, 11, 12, 13, 14, 15}, nil)

	end := start.AddDate(0, 0, 5)

	history, err := suite.store.PriceHistory([]int64{1}, 3, optional.Some(end))
	suite.Require().NoError(err)

	// Only bars within the trailing 3 calendar days of the end date.
	suite.Len(history[1], 4)
	suite.InDelta(12.0, history[1][0].Close, 1e-9)
}

func (suite *StoreTestSuite) TestPriceHistoryAppliesSplitAdjustment() {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	// A 2:1 split on the third day: earlier prices are halved.
	suite.seedBars(1, start, []float64{100, 102, 51}, []float64{1, 1, 2})

	end := start.AddDate(0, 0, 10)

	history, err := suite.store.PriceHistory([]int64{1}, 30, optional.Some(end))
	suite.Require().NoError(err)
	suite.Require().Len(history[1], 3)

	suite.InDelta(50.0, history[1][0].Close, 1e-9)
	suite.InDelta(51.0, history[1][1].Close, 1e-9)
	suite.InDelta(25.5, history[1][2].Close, 1e-9)
}

func (suite *StoreTestSuite) TestPriceHistoryEmptyIDs() {
	history, err := suite.store.PriceHistory(nil, 30, optional.None[time.Time]())
	suite.Require().NoError(err)
	suite.Empty(history)
}

type AdjustForSplitsTestSuite struct {
	suite.Suite
}

func TestAdjustForSplitsSuite(t *testing.T) {
	suite.Run(t, new(AdjustForSplitsTestSuite))
}

func (suite *AdjustForSplitsTestSuite) TestZeroCoefficientTreatedAsOne() {
	bars := []types.Bar{
		{Close: 10, Open: 10, High: 10, Low: 10, SplitCoefficient: 0},
		{Close: 10, Open: 10, High: 10, Low: 10, SplitCoefficient: 0},
	}

	adjusted := AdjustForSplits(bars)
	suite.InDelta(10.0, adjusted[0].Close, 1e-9)
	suite.InDelta(10.0, adjusted[1].Close, 1e-9)
}

func (suite *AdjustForSplitsTestSuite) TestInputNotMutated() {
	bars := []types.Bar{
		{Close: 100, Open: 100, High: 100, Low: 100, SplitCoefficient: 1},
		{Close: 50, Open: 50, High: 50, Low: 50, SplitCoefficient: 2},
	}

	adjusted := AdjustForSplits(bars)
	suite.InDelta(50.0, adjusted[0].Close, 1e-9)
	suite.InDelta(100.0, bars[0].Close, 1e-9)
}

func (suite *AdjustForSplitsTestSuite) TestUnitCoefficientsAreIdempotent() {
	bars := []types.Bar{
		{Close: 100, Open: 101, High: 102, Low: 99, SplitCoefficient: 1},
		{Close: 105, Open: 104, High: 106, Low: 103, SplitCoefficient: 1},
	}

	once := AdjustForSplits(bars)
	twice := AdjustForSplits(once)

	for i := range bars {
		suite.InDelta(bars[i].Close, once[i].Close, 1e-9)
		suite.InDelta(once[i].Close, twice[i].Close, 1e-9)
	}
}

func (suite *AdjustForSplitsTestSuite) TestCurrentBarIncludesOwnCoefficient() {
	bars := []types.Bar{
		{Close: 100, Open: 100, High: 100, Low: 100, SplitCoefficient: 1},
		{Close: 100, Open: 100, High: 100, Low: 100, SplitCoefficient: 4},
	}

	adjusted := AdjustForSplits(bars)

	// The split-day bar is divided by its own coefficient as well.
	suite.InDelta(25.0, adjusted[0].Close, 1e-9)
	suite.InDelta(25.0, adjusted[1].Close, 1e-9)
}
