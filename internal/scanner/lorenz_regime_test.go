package scanner

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

type LorenzRegimeTestSuite struct {
	suite.Suite
}

func TestLorenzRegimeSuite(t *testing.T) {
	suite.Run(t, new(LorenzRegimeTestSuite))
}

// regimeFlipCloses drifts down inside an uptrend, recovers to mid-range
// (regime 0 on the next-to-last bar), then pops into the upper range on the
// final bar (regime 1).
func regimeFlipCloses() []float64 {
	closes := risingCloses(200, 100, 0.5)
	closes = append(closes, risingCloses(39, 199, -0.5)...)
	closes = append(closes, risingCloses(19, 180.5, 0.5)...)
	closes = append(closes, 187.5, 192)

	return closes
}

func (suite *LorenzRegimeTestSuite) TestFlipFromUnstableToUptrendMatches() {
	sc := NewLorenzRegimeScanner(types.Params{})
	bars := barsFromCloses(1, regimeFlipCloses(), 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Require().NotNil(rec)
	suite.Equal(1, rec["lorenz_regime"])
}

func (suite *LorenzRegimeTestSuite) TestSteadyUptrendNeverFlips() {
	// A monotone rise pins the close at the top of its range, so the regime
	// is already 1 and no transition fires.
	sc := NewLorenzRegimeScanner(types.Params{})
	bars := barsFromCloses(1, risingCloses(260, 100, 0.5), 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Nil(rec)
}

func (suite *LorenzRegimeTestSuite) TestFlatSeriesStaysUnstable() {
	sc := NewLorenzRegimeScanner(types.Params{})
	bars := barsFromCloses(1, constantCloses(260, 100), 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Nil(rec)
}

func (suite *LorenzRegimeTestSuite) TestShortHistoryIsInsufficientData() {
	sc := NewLorenzRegimeScanner(types.Params{})
	bars := barsFromCloses(1, risingCloses(100, 100, 0.5), 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
	suite.Nil(rec)
}
