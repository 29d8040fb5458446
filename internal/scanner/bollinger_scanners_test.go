package scanner

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

type BbSqueezeBreakoutTestSuite struct {
	suite.Suite
}

func TestBbSqueezeBreakoutSuite(t *testing.T) {
	suite.Run(t, new(BbSqueezeBreakoutTestSuite))
}

func (suite *BbSqueezeBreakoutTestSuite) TestBreakoutFromDeadFlatBaseMatches() {
	// Zero band width is trivially inside its own lowest decile; the final
	// bar clears the widened upper band.
	closes := constantCloses(249, 100)
	closes = append(closes, 110)

	sc := NewBbSqueezeBreakoutScanner(types.Params{})
	bars := barsFromCloses(1, closes, 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Require().NotNil(rec)
	suite.Equal(formatDate(bars[len(bars)-1].Date), rec["breakout_date"])
}

func (suite *BbSqueezeBreakoutTestSuite) TestBreakoutWithoutSqueezeRejected() {
	// Band width stays elevated against a baseline full of flat bars, so the
	// squeeze precondition fails on the bar before the pop.
	closes := constantCloses(200, 100)
	for i := 0; i < 49; i++ {
		if i%2 == 0 {
			closes = append(closes, 110)
		} else {
			closes = append(closes, 100)
		}
	}

	closes = append(closes, 130)

	sc := NewBbSqueezeBreakoutScanner(types.Params{})
	bars := barsFromCloses(1, closes, 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Nil(rec)
}

func (suite *BbSqueezeBreakoutTestSuite) TestFlatBaseWithoutBreakoutRejected() {
	sc := NewBbSqueezeBreakoutScanner(types.Params{})
	bars := barsFromCloses(1, constantCloses(250, 100), 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Nil(rec)
}

func (suite *BbSqueezeBreakoutTestSuite) TestShortHistoryIsInsufficientData() {
	sc := NewBbSqueezeBreakoutScanner(types.Params{})
	bars := barsFromCloses(1, constantCloses(50, 100), 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
	suite.Nil(rec)
}

type BbExtremeReversalTestSuite struct {
	suite.Suite
}

func TestBbExtremeReversalSuite(t *testing.T) {
	suite.Run(t, new(BbExtremeReversalTestSuite))
}

func (suite *BbExtremeReversalTestSuite) TestRecoveryAfterBandPierceMatches() {
	// One deep flush bar drags the low through the lower band; the next bar
	// closes back above it with the uptrend intact.
	closes := risingCloses(258, 100, 0.5)
	peak := closes[len(closes)-1]
	closes = append(closes, peak-20, peak-2)

	sc := NewBbExtremeReversalScanner(types.Params{})
	bars := barsFromCloses(1, closes, 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Require().NotNil(rec)
	suite.Equal(formatDate(bars[len(bars)-1].Date), rec["setup_date"])

	lower, ok := rec["bb_lower"].(float64)
	suite.Require().True(ok)
	suite.Less(lower, peak-2)
}

func (suite *BbExtremeReversalTestSuite) TestUptrendWithoutExtremeRejected() {
	sc := NewBbExtremeReversalScanner(types.Params{})
	bars := barsFromCloses(1, risingCloses(260, 100, 0.5), 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Nil(rec)
}

func (suite *BbExtremeReversalTestSuite) TestFlatSeriesNeverRecovers() {
	// With zero band width the close sits on the band, never above it.
	sc := NewBbExtremeReversalScanner(types.Params{})
	bars := barsFromCloses(1, constantCloses(260, 100), 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Nil(rec)
}

func (suite *BbExtremeReversalTestSuite) TestShortHistoryIsInsufficientData() {
	sc := NewBbExtremeReversalScanner(types.Params{})
	bars := barsFromCloses(1, risingCloses(100, 100, 0.5), 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
	suite.Nil(rec)
}
