package scanner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/alphabeam/screenline/internal/indicator"
	"github.com/alphabeam/screenline/internal/logger"
	"github.com/alphabeam/screenline/internal/store"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// ScanOptions configures one scan run. Params carries the same runtime
// parameter map the scanner was constructed with; the orchestrator reads
// the shared pipeline parameters (market, min_market_cap, min_avg_volume,
// volume_lookback_days, days_back) from it.
//
// Candidates and History, when set, replace the store lookups. The
// backtester uses them to replay truncated histories without re-querying.
type ScanOptions struct {
	Params     types.Params
	Candidates []types.Snapshot
	History    map[int64][]types.Bar
	End        optional.Option[time.Time]
}

// Orchestrator drives a scan end to end: candidate selection, bulk price
// loading, the liquidity filter, per-company evaluation, and result
// assembly. Scans are synchronous and share nothing with each other.
type Orchestrator struct {
	store  store.Store
	logger *logger.Logger
}

func NewOrchestrator(st store.Store, log *logger.Logger) *Orchestrator {
	return &Orchestrator{store: st, logger: log}
}

// RunScan evaluates one scanner across the candidate universe and returns
// a sorted result table. A company whose evaluation fails is skipped, not
// fatal; only store access errors abort the whole scan.
func (o *Orchestrator) RunScan(ctx context.Context, sc Scanner, opts ScanOptions) (*types.ResultTable, error) {
	runID := uuid.NewString()
	started := time.Now()

	params := opts.Params
	if params == nil {
		params = types.Params{}
	}

	// Ranking scanners own their whole pipeline.
	if full, ok := sc.(Orchestrated); ok {
		return full.RunFullScan(o.store, opts)
	}

	candidates, err := o.resolveCandidates(sc, params, opts)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		return types.EmptyResultTable(), nil
	}

	history, err := o.resolveHistory(params, opts, candidates)
	if err != nil {
		return nil, err
	}

	minAvgVolume := params.Float("min_avg_volume", defaultMinAvgVolume)
	volumeLookback := params.Int("volume_lookback_days", defaultVolumeLookback)
	liquid := liquidCompanies(history, volumeLookback, minAvgVolume)

	var (
		records []types.Record
		skipped int
	)

	for _, snap := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeScanFailed, "scan cancelled", err)
		}

		bars, ok := liquid[snap.ID]
		if !ok {
			continue
		}

		rec, err := o.scanOne(sc, bars, snap)
		if err != nil {
			skipped++
			continue
		}

		if rec != nil {
			records = append(records, rec)
		}
	}

	table := types.BuildResultTable(records, sc.LeadingColumns(), sc.SortInfo())

	o.logger.Info("scan complete",
		zap.String("run_id", runID),
		zap.String("scanner", sc.Name()),
		zap.Int("candidates", len(candidates)),
		zap.Int("evaluated", len(liquid)),
		zap.Int("matches", len(records)),
		zap.Int("skipped", skipped),
		zap.Duration("elapsed", time.Since(started)))

	return table, nil
}

// scanOne evaluates a single company, isolating panics and non-fatal
// errors so one bad company cannot take down the run.
func (o *Orchestrator) scanOne(sc Scanner, bars []types.Bar, snap types.Snapshot) (rec types.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Warn("scanner panicked on company",
				zap.String("scanner", sc.Name()),
				zap.Int64("company_id", snap.ID),
				zap.String("symbol", snap.Symbol),
				zap.Any("panic", r))

			rec = nil
			err = errors.Newf(errors.ErrCodeScanFailed, "scanner %s panicked on %s", sc.Name(), snap.Symbol)
		}
	}()

	rec, err = sc.ScanCompany(bars, snap)
	if err != nil {
		if errors.IsInsufficientDataError(err) {
			// Expected for thin histories; not worth a warning.
			o.logger.Debug("insufficient history",
				zap.String("scanner", sc.Name()),
				zap.String("symbol", snap.Symbol))

			return nil, err
		}

		o.logger.Warn("company evaluation failed",
			zap.String("scanner", sc.Name()),
			zap.Int64("company_id", snap.ID),
			zap.String("symbol", snap.Symbol),
			zap.Error(err))

		return nil, err
	}

	return rec, nil
}

func (o *Orchestrator) resolveCandidates(sc Scanner, params types.Params, opts ScanOptions) ([]types.Snapshot, error) {
	if opts.Candidates != nil {
		return opts.Candidates, nil
	}

	market := params.String("market", defaultMarket)
	minMarketCap := params.Float("min_market_cap", defaultMinMarketCap)

	filters := []types.FilterSpec{
		{Name: "marketcap", Op: types.OpGT, Value: float64Ptr(minMarketCap)},
	}

	if cf, ok := sc.(CandidateFilterer); ok {
		filters = append(filters, cf.CandidateFilters()...)
	}

	return o.store.Candidates(market, filters)
}

func (o *Orchestrator) resolveHistory(params types.Params, opts ScanOptions, candidates []types.Snapshot) (map[int64][]types.Bar, error) {
	if opts.History != nil {
		return opts.History, nil
	}

	daysBack := params.Int("days_back", defaultDaysBack)

	ids := make([]int64, len(candidates))
	for i, snap := range candidates {
		ids[i] = snap.ID
	}

	return o.store.PriceHistory(ids, daysBack, opts.End)
}

// liquidCompanies drops companies whose latest rolling average volume is
// under the floor. Companies with no history at all are dropped too; they
// are never presented to the scanner.
func liquidCompanies(history map[int64][]types.Bar, lookback int, minAvgVolume float64) map[int64][]types.Bar {
	out := make(map[int64][]types.Bar, len(history))

	for id, bars := range history {
		if len(bars) == 0 {
			continue
		}

		avg := indicator.RollingMean(types.Volumes(bars), lookback, 1)
		if avg[len(avg)-1] >= minAvgVolume {
			out[id] = bars
		}
	}

	return out
}
