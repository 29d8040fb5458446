package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}

func (suite *RSITestSuite) TestLeadingNaN() {
	values := []float64{44, 44.3, 44.1, 43.6, 44.3, 44.8, 45.1, 45.4, 45.8, 46.1,
		46.0, 46.4, 46.2, 46.3, 46.3}

	out := RSI(values, 14)
	for i := 0; i < 14; i++ {
		suite.True(math.IsNaN(out[i]), "offset %d", i)
	}

	suite.False(math.IsNaN(out[14]))
	suite.Greater(out[14], 0.0)
	suite.Less(out[14], 100.0)
}

func (suite *RSITestSuite) TestAllGainsSaturates() {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(i + 1)
	}

	out := RSI(values, 14)
	suite.InDelta(100.0, out[len(out)-1], 1e-9)
}

func (suite *RSITestSuite) TestAllLossesFloors() {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(100 - i)
	}

	out := RSI(values, 14)
	suite.InDelta(0.0, out[len(out)-1], 1e-9)
}

func (suite *RSITestSuite) TestFlatSeriesIsNeutral() {
	values := make([]float64, 30)
	for i := range values {
		values[i] = 50
	}

	out := RSI(values, 14)
	suite.InDelta(50.0, out[len(out)-1], 1e-9)
}

func (suite *RSITestSuite) TestInsufficientData() {
	out := RSI([]float64{1, 2, 3}, 14)
	for _, v := range out {
		suite.True(math.IsNaN(v))
	}
}
