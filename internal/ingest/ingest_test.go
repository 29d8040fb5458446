package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"

	"github.com/alphabeam/screenline/internal/logger"
	"github.com/alphabeam/screenline/internal/store"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// fakeSource returns a fixed number of flat daily bars per symbol.
type fakeSource struct {
	barsPerSymbol int
	calls         []string
}

func (f *fakeSource) DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]types.Bar, error) {
	f.calls = append(f.calls, symbol)

	bars := make([]types.Bar, f.barsPerSymbol)
	for i := range bars {
		bars[i] = types.Bar{
			Date:             from.AddDate(0, 0, i),
			Open:             100,
			High:             101,
			Low:              99,
			Close:            100,
			AdjClose:         100,
			Volume:           1_000_000,
			SplitCoefficient: 1,
		}
	}

	return bars, nil
}

type IngestTestSuite struct {
	suite.Suite

	store    *store.DuckDBStore
	source   *fakeSource
	ingester *Ingester
}

func TestIngestSuite(t *testing.T) {
	suite.Run(t, new(IngestTestSuite))
}

func (suite *IngestTestSuite) SetupTest() {
	st, err := store.NewStore(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Require().NoError(st.InitSchema())

	suite.store = st
	suite.source = &fakeSource{barsPerSymbol: 3}
	suite.ingester = NewIngester(st, suite.source, logger.NewNopLogger())
}

func (suite *IngestTestSuite) TearDownTest() {
	if suite.store != nil {
		suite.store.Close()
		suite.store = nil
	}
}

func (suite *IngestTestSuite) seedCompany(id int64, symbol string) {
	suite.Require().NoError(suite.store.UpsertCompany(types.Snapshot{
		ID:        id,
		Symbol:    symbol,
		LongName:  symbol + " Inc",
		Exchange:  "NMS",
		IsActive:  true,
		MarketCap: 5e9,
	}))
}

func (suite *IngestTestSuite) TestIngestWritesBars() {
	suite.seedCompany(1, "AAA")

	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 4)

	result, err := suite.ingester.Run(context.Background(), []string{"AAA"}, from, to, false)

	suite.Require().NoError(err)
	suite.Equal(1, result.Symbols)
	suite.Equal(3, result.Bars)
	suite.Empty(result.Skipped)
	suite.NotEmpty(result.BatchID)

	history, err := suite.store.PriceHistory([]int64{1}, 30, optional.Some(to))
	suite.Require().NoError(err)
	suite.Len(history[1], 3)
	suite.Equal(int64(1), history[1][0].CompanyID)
}

func (suite *IngestTestSuite) TestUnknownSymbolSkipped() {
	suite.seedCompany(1, "AAA")

	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	result, err := suite.ingester.Run(context.Background(), []string{"ZZZ", "AAA"}, from, from.AddDate(0, 0, 4), false)

	suite.Require().NoError(err)
	suite.Equal([]string{"ZZZ"}, result.Skipped)
	suite.Equal(1, result.Symbols)

	// The source is never asked about unknown symbols.
	suite.Equal([]string{"AAA"}, suite.source.calls)
}

func (suite *IngestTestSuite) TestReingestReplacesNotDuplicates() {
	suite.seedCompany(1, "AAA")

	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 4)

	_, err := suite.ingester.Run(context.Background(), []string{"AAA"}, from, to, false)
	suite.Require().NoError(err)

	_, err = suite.ingester.Run(context.Background(), []string{"AAA"}, from, to, false)
	suite.Require().NoError(err)

	history, err := suite.store.PriceHistory([]int64{1}, 30, optional.Some(to))
	suite.Require().NoError(err)
	suite.Len(history[1], 3)
}

func (suite *IngestTestSuite) TestInvertedRangeRejected() {
	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	_, err := suite.ingester.Run(context.Background(), []string{"AAA"}, from, from.AddDate(0, 0, -1), false)

	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}
