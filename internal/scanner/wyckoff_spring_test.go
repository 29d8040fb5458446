package scanner

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

type WyckoffSpringTestSuite struct {
	suite.Suite
}

func TestWyckoffSpringSuite(t *testing.T) {
	suite.Run(t, new(WyckoffSpringTestSuite))
}

// springBars is a tight 80-bar box at 100 whose final bar pierces the box
// floor and closes back inside the upper half of its range.
func springBars(springVolume float64) []types.Bar {
	bars := barsFromCloses(1, constantCloses(80, 100), 1_000_000)

	last := len(bars) - 1
	bars[last].Open = 99
	bars[last].High = 101
	bars[last].Low = 97
	bars[last].Close = 100
	bars[last].AdjClose = 100
	bars[last].Volume = springVolume

	return bars
}

func (suite *WyckoffSpringTestSuite) TestQuietShakeoutMatches() {
	sc := NewWyckoffSpringScanner(types.Params{})
	bars := springBars(1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Require().NotNil(rec)

	support, ok := rec["support_level"].(float64)
	suite.Require().True(ok)
	suite.InDelta(99.0, support, 1e-9)
	suite.Equal(formatDate(bars[len(bars)-1].Date), rec["spring_date"])
}

func (suite *WyckoffSpringTestSuite) TestHeavyVolumeShakeoutRejected() {
	// Real selling pressure behind the pierce disqualifies the spring.
	sc := NewWyckoffSpringScanner(types.Params{})
	bars := springBars(5_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Nil(rec)
}

func (suite *WyckoffSpringTestSuite) TestNoPierceNoSpring() {
	sc := NewWyckoffSpringScanner(types.Params{})
	bars := springBars(1_000_000)

	last := len(bars) - 1
	bars[last].Low = 99.5

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Nil(rec)
}

func (suite *WyckoffSpringTestSuite) TestTrendingBoxIsTooTall() {
	// A rising channel is not a consolidation; the box height gate rejects
	// it even when the final bar has spring mechanics.
	sc := NewWyckoffSpringScanner(types.Params{})
	bars := barsFromCloses(1, risingCloses(80, 100, 0.5), 1_000_000)

	last := len(bars) - 1
	bars[last].Open = 99.5
	bars[last].High = 101
	bars[last].Low = 97
	bars[last].Close = 100.5
	bars[last].AdjClose = 100.5

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().NoError(err)
	suite.Nil(rec)
}

func (suite *WyckoffSpringTestSuite) TestShortHistoryIsInsufficientData() {
	sc := NewWyckoffSpringScanner(types.Params{})
	bars := barsFromCloses(1, constantCloses(30, 100), 1_000_000)

	rec, err := sc.ScanCompany(bars, testSnapshot(1, "AAA"))
	suite.Require().Error(err)
	suite.True(errors.IsInsufficientDataError(err))
	suite.Nil(rec)
}
