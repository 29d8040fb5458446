package types

import "time"

// Bar represents one day's OHLCV record for a company. Bars for a company are
// strictly ordered by date with no duplicate dates. OHLC values are split
// adjusted by the store before they reach any scanner.
type Bar struct {
	CompanyID        int64     `json:"company_id"`
	Date             time.Time `json:"date"`
	Open             float64   `json:"open"`
	High             float64   `json:"high"`
	Low              float64   `json:"low"`
	Close            float64   `json:"close"`
	AdjClose         float64   `json:"adjclose"`
	Volume           float64   `json:"volume"`
	SplitCoefficient float64   `json:"split_coefficient"`
}

// Closes extracts the close series from a bar sequence.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}

	return out
}

// Opens extracts the open series from a bar sequence.
func Opens(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Open
	}

	return out
}

// Highs extracts the high series from a bar sequence.
func Highs(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}

	return out
}

// Lows extracts the low series from a bar sequence.
func Lows(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}

	return out
}

// Volumes extracts the volume series from a bar sequence.
func Volumes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}

	return out
}
