package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestBands() {
	values := []float64{1, 2, 3, 4, 5}
	upper, middle, lower := BBands(values, 5, 2.0, 2.0)

	suite.True(math.IsNaN(middle[3]))
	suite.InDelta(3.0, middle[4], 1e-9)

	// Population stddev of 1..5 is sqrt(2).
	std := math.Sqrt(2)
	suite.InDelta(3+2*std, upper[4], 1e-9)
	suite.InDelta(3-2*std, lower[4], 1e-9)
}

func (suite *BollingerBandsTestSuite) TestConstantSeriesCollapses() {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 50
	}

	upper, middle, lower := BBands(values, 20, 2.0, 2.0)
	suite.InDelta(50.0, upper[29], 1e-9)
	suite.InDelta(50.0, middle[29], 1e-9)
	suite.InDelta(50.0, lower[29], 1e-9)
}

func (suite *BollingerBandsTestSuite) TestWidth() {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 100 + float64(i%5)
	}

	upper, middle, lower := BBands(values, 20, 2.0, 2.0)
	width := BBWidth(upper, middle, lower)

	suite.True(math.IsNaN(width[18]))
	suite.False(math.IsNaN(width[29]))
	suite.InDelta((upper[29]-lower[29])/middle[29], width[29], 1e-12)
}
