package scanner

import (
	"time"

	"github.com/alphabeam/screenline/internal/types"
)

var testEpoch = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// barsFromCloses builds a daily bar series around a close series. Highs and
// lows bracket the close by one point so range-position logic stays sane.
func barsFromCloses(companyID int64, closes []float64, volume float64) []types.Bar {
	bars := make([]types.Bar, len(closes))

	for i, c := range closes {
		bars[i] = types.Bar{
			CompanyID:        companyID,
			Date:             testEpoch.AddDate(0, 0, i),
			Open:             c,
			High:             c + 1,
			Low:              c - 1,
			Close:            c,
			AdjClose:         c,
			Volume:           volume,
			SplitCoefficient: 1,
		}
	}

	return bars
}

func constantCloses(n int, price float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = price
	}

	return out
}

func risingCloses(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}

	return out
}

func testSnapshot(id int64, symbol string) types.Snapshot {
	return types.Snapshot{
		ID:           id,
		Symbol:       symbol,
		LongName:     symbol + " Inc.",
		Exchange:     "NMS",
		Sector:       "technology",
		Industry:     "Software",
		IsActive:     true,
		MarketCap:    5_000_000_000,
		CurrentPrice: 100,
	}
}
