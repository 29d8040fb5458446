// Package backtest replays scanners over historical business days and
// measures how their signals would have performed with a fixed-hold exit.
package backtest

import (
	"context"
	"sort"
	"time"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/alphabeam/screenline/internal/logger"
	"github.com/alphabeam/screenline/internal/scanner"
	"github.com/alphabeam/screenline/internal/store"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// startingEquity is the notional account each strategy curve starts from.
var startingEquity = decimal.NewFromInt(100_000)

// Options configures one backtest run. Scanners are referenced by registry
// name; Params is shared across all of them (per-scanner defaults apply for
// anything absent). Progress, when set, is called once per simulated day.
type Options struct {
	Start    time.Time
	End      time.Time
	HoldDays int
	Scanners []string
	Params   types.Params
	Progress func(done, total int)
}

// Trade is one completed round trip: entered at the close of the signal
// day, exited at the close HoldDays bars later.
type Trade struct {
	Symbol     string    `json:"symbol"`
	Scanner    string    `json:"scanner"`
	EntryDate  time.Time `json:"entry_date"`
	ExitDate   time.Time `json:"exit_date"`
	EntryPrice float64   `json:"entry_price"`
	ExitPrice  float64   `json:"exit_price"`
	PnlPct     float64   `json:"pnl_pct"`
}

// StrategyResult aggregates one scanner's trades over the run.
type StrategyResult struct {
	Scanner        string            `json:"scanner"`
	Trades         []Trade           `json:"trades"`
	WinRate        float64           `json:"win_rate"`
	ProfitFactor   float64           `json:"profit_factor"`
	AvgWinPct      float64           `json:"avg_win_pct"`
	AvgLossPct     float64           `json:"avg_loss_pct"`
	TotalReturnPct float64           `json:"total_return_pct"`
	EquityCurve    []decimal.Decimal `json:"equity_curve"`
	FinalEquity    decimal.Decimal   `json:"final_equity"`
}

// Report is the full outcome of a backtest run.
type Report struct {
	Start       time.Time        `json:"start"`
	End         time.Time        `json:"end"`
	TradingDays int              `json:"trading_days"`
	TotalTrades int              `json:"total_trades"`
	Strategies  []StrategyResult `json:"strategies"`
}

// Engine replays scanners against stored history. It shares the scan
// orchestrator with live scans so signal semantics cannot drift between
// scanning and backtesting.
type Engine struct {
	store    store.Store
	registry scanner.Registry
	orch     *scanner.Orchestrator
	logger   *logger.Logger
}

func NewEngine(st store.Store, registry scanner.Registry, log *logger.Logger) *Engine {
	return &Engine{
		store:    st,
		registry: registry,
		orch:     scanner.NewOrchestrator(st, log),
		logger:   log,
	}
}

// Run simulates every business day in [Start, End]. Each day the scanners
// see only bars up to that day; signals enter at that day's close and exit
// HoldDays bars later. Signals too close to the end of the data to complete
// their exit are dropped.
func (e *Engine) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.End.Before(opts.Start) {
		return nil, errors.Newf(errors.ErrCodeInvalidBacktestRange, "end %s before start %s",
			opts.End.Format("2006-01-02"), opts.Start.Format("2006-01-02"))
	}

	if len(opts.Scanners) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidParameter, "no scanners selected")
	}

	holdDays := opts.HoldDays
	if holdDays <= 0 {
		holdDays = 5
	}

	params := opts.Params
	if params == nil {
		params = types.Params{}
	}

	scanners := make([]scanner.Scanner, 0, len(opts.Scanners))

	for _, name := range opts.Scanners {
		sc, err := e.registry.Get(name, params)
		if err != nil {
			return nil, err
		}

		scanners = append(scanners, sc)
	}

	universe, err := e.loadUniverse(params, opts)
	if err != nil {
		return nil, err
	}

	days := businessDays(opts.Start, opts.End)

	curves := make(map[string]*strategyState, len(scanners))
	for _, sc := range scanners {
		curves[sc.Name()] = newStrategyState(sc.Name())
	}

	for i, day := range days {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeBacktestFailed, "backtest cancelled", err)
		}

		truncated := universe.asOf(day)

		for _, sc := range scanners {
			table, err := e.orch.RunScan(ctx, sc, scanner.ScanOptions{
				Params:     params,
				Candidates: universe.candidates,
				History:    truncated,
			})
			if err != nil {
				return nil, errors.Wrapf(errors.ErrCodeBacktestFailed, err, "scanner %s failed on %s", sc.Name(), day.Format("2006-01-02"))
			}

			state := curves[sc.Name()]

			for _, row := range table.Rows {
				symbol, ok := row["symbol"].(string)
				if !ok {
					continue
				}

				if trade, ok := universe.simulateTrade(symbol, sc.Name(), day, holdDays); ok {
					state.record(trade)
				}
			}
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(days))
		}
	}

	report := &Report{
		Start:       opts.Start,
		End:         opts.End,
		TradingDays: len(days),
	}

	for _, sc := range scanners {
		result := curves[sc.Name()].summarize()
		report.TotalTrades += len(result.Trades)
		report.Strategies = append(report.Strategies, result)
	}

	e.logger.Info("backtest complete",
		zap.Int("trading_days", report.TradingDays),
		zap.Int("total_trades", report.TotalTrades),
		zap.Int("strategies", len(report.Strategies)))

	return report, nil
}

// universe is the immutable full-history view the replay slices from.
type universe struct {
	candidates []types.Snapshot
	history    map[int64][]types.Bar
	bySymbol   map[string][]types.Bar
}

func (e *Engine) loadUniverse(params types.Params, opts Options) (*universe, error) {
	market := params.String("market", "us")
	minMarketCap := params.Float("min_market_cap", 1_000_000_000)

	capFloor := minMarketCap
	candidates, err := e.store.Candidates(market, []types.FilterSpec{
		{Name: "marketcap", Op: types.OpGT, Value: &capFloor},
	})
	if err != nil {
		return nil, err
	}

	// Load enough history before the start date that every scanner has a
	// full warmup on day one.
	warmupDays := params.Int("days_back", 500)
	span := int(opts.End.Sub(opts.Start).Hours()/24) + warmupDays

	ids := make([]int64, len(candidates))
	for i, snap := range candidates {
		ids[i] = snap.ID
	}

	history, err := e.store.PriceHistory(ids, span, optional.Some(opts.End))
	if err != nil {
		return nil, err
	}

	bySymbol := make(map[string][]types.Bar, len(candidates))
	for _, snap := range candidates {
		bySymbol[snap.Symbol] = history[snap.ID]
	}

	return &universe{candidates: candidates, history: history, bySymbol: bySymbol}, nil
}

// asOf returns each company's bars truncated at the given day, inclusive.
// Subslices share the backing array; callers must not mutate them.
func (u *universe) asOf(day time.Time) map[int64][]types.Bar {
	out := make(map[int64][]types.Bar, len(u.history))

	for id, bars := range u.history {
		cut := sort.Search(len(bars), func(i int) bool {
			return bars[i].Date.After(day)
		})

		if cut > 0 {
			out[id] = bars[:cut]
		}
	}

	return out
}

// simulateTrade enters at the close of the last bar on or before the signal
// day and exits holdDays bars later. ok is false when the exit falls past
// the loaded history.
func (u *universe) simulateTrade(symbol, scannerName string, day time.Time, holdDays int) (Trade, bool) {
	bars := u.bySymbol[symbol]
	if len(bars) == 0 {
		return Trade{}, false
	}

	entry := sort.Search(len(bars), func(i int) bool {
		return bars[i].Date.After(day)
	}) - 1
	if entry < 0 {
		return Trade{}, false
	}

	exit := entry + holdDays
	if exit >= len(bars) {
		return Trade{}, false
	}

	entryPrice := bars[entry].Close
	if entryPrice == 0 {
		return Trade{}, false
	}

	exitPrice := bars[exit].Close

	return Trade{
		Symbol:     symbol,
		Scanner:    scannerName,
		EntryDate:  bars[entry].Date,
		ExitDate:   bars[exit].Date,
		EntryPrice: entryPrice,
		ExitPrice:  exitPrice,
		PnlPct:     (exitPrice/entryPrice - 1) * 100,
	}, true
}

// businessDays lists the Monday-to-Friday days in [start, end].
func businessDays(start, end time.Time) []time.Time {
	var days []time.Time

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			continue
		default:
			days = append(days, d)
		}
	}

	return days
}
