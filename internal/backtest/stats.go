package backtest

import (
	"github.com/shopspring/decimal"
)

// maxProfitFactor caps the ratio when a strategy has no losing trades.
const maxProfitFactor = 999.0

var hundred = decimal.NewFromInt(100)

// strategyState accumulates one scanner's trades and its compounding
// equity curve during the replay.
type strategyState struct {
	name   string
	trades []Trade
	equity []decimal.Decimal
}

func newStrategyState(name string) *strategyState {
	return &strategyState{
		name:   name,
		equity: []decimal.Decimal{startingEquity},
	}
}

// record books the trade and compounds the curve by its return. Decimal
// arithmetic keeps the curve exact over long runs where float compounding
// would drift.
func (s *strategyState) record(trade Trade) {
	s.trades = append(s.trades, trade)

	last := s.equity[len(s.equity)-1]
	growth := decimal.NewFromInt(1).Add(decimal.NewFromFloat(trade.PnlPct).Div(hundred))

	s.equity = append(s.equity, last.Mul(growth))
}

func (s *strategyState) summarize() StrategyResult {
	result := StrategyResult{
		Scanner:     s.name,
		Trades:      s.trades,
		EquityCurve: s.equity,
		FinalEquity: s.equity[len(s.equity)-1],
	}

	if len(s.trades) == 0 {
		return result
	}

	var (
		winSum, lossSum float64
		wins, losses    int
	)

	for _, t := range s.trades {
		if t.PnlPct > 0 {
			winSum += t.PnlPct
			wins++
		} else {
			lossSum += t.PnlPct
			losses++
		}
	}

	result.WinRate = float64(wins) / float64(len(s.trades)) * 100

	if wins > 0 {
		result.AvgWinPct = winSum / float64(wins)
	}

	if losses > 0 {
		result.AvgLossPct = lossSum / float64(losses)
	}

	if losses > 0 && result.AvgLossPct != 0 {
		pf := result.AvgWinPct / result.AvgLossPct
		if pf < 0 {
			pf = -pf
		}

		result.ProfitFactor = pf
	} else {
		result.ProfitFactor = maxProfitFactor
	}

	totalReturn := result.FinalEquity.Div(startingEquity).Sub(decimal.NewFromInt(1)).Mul(hundred)
	result.TotalReturnPct, _ = totalReturn.Float64()

	return result
}
