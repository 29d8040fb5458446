// Package ingest pulls daily price bars from Polygon into the store. It is
// the write side of the pipeline; the scanning core only ever reads.
package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/alphabeam/screenline/internal/logger"
	"github.com/alphabeam/screenline/internal/store"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// BarSource fetches daily bars for one symbol. CompanyID is left zero; the
// ingester resolves it against the store.
type BarSource interface {
	DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]types.Bar, error)
}

// PolygonSource fetches daily aggregates from the Polygon REST API.
type PolygonSource struct {
	client *polygon.Client
}

func NewPolygonSource(apiKey string) (*PolygonSource, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon api key is not set")
	}

	return &PolygonSource{client: polygon.New(apiKey)}, nil
}

// DailyBars lists 1-day aggregates over [from, to]. Polygon aggregates are
// unadjusted here; split coefficients default to 1 and adjusted close mirrors
// the close until a corporate-actions pass rewrites them.
func (p *PolygonSource) DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]types.Bar, error) {
	params := models.ListAggsParams{
		Ticker:     symbol,
		From:       models.Millis(from),
		To:         models.Millis(to),
		Multiplier: 1,
		Timespan:   models.Day,
	}

	iter := p.client.ListAggs(ctx, &params)

	var bars []types.Bar

	for iter.Next() {
		agg := iter.Item()

		day := time.Time(agg.Timestamp).UTC().Truncate(24 * time.Hour)

		bars = append(bars, types.Bar{
			Date:             day,
			Open:             agg.Open,
			High:             agg.High,
			Low:              agg.Low,
			Close:            agg.Close,
			AdjClose:         agg.Close,
			Volume:           agg.Volume,
			SplitCoefficient: 1,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeIngestFailed, err, "failed to list aggregates for %s", symbol)
	}

	return bars, nil
}

// Ingester writes fetched bars into the store, one symbol at a time.
type Ingester struct {
	store  *store.DuckDBStore
	source BarSource
	logger *logger.Logger
}

func NewIngester(st *store.DuckDBStore, source BarSource, log *logger.Logger) *Ingester {
	return &Ingester{store: st, source: source, logger: log}
}

// Result summarizes one ingest batch.
type Result struct {
	BatchID string
	Symbols int
	Bars    int
	Skipped []string
}

// Run ingests daily bars for each symbol over [from, to]. Symbols unknown to
// the company table are skipped and reported, not fatal. showProgress draws
// a terminal progress bar over the symbol list.
func (i *Ingester) Run(ctx context.Context, symbols []string, from, to time.Time, showProgress bool) (*Result, error) {
	if to.Before(from) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "ingest range ends %s before it starts %s",
			to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	result := &Result{BatchID: uuid.NewString()}

	var bar *progressbar.ProgressBar
	if showProgress {
		bar = progressbar.Default(int64(len(symbols)))
	}

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeIngestFailed, "ingest cancelled", err)
		}

		if err := i.ingestSymbol(ctx, symbol, from, to, result); err != nil {
			return nil, err
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	i.logger.Info("ingest batch complete",
		zap.String("batch_id", result.BatchID),
		zap.Int("symbols", result.Symbols),
		zap.Int("bars", result.Bars),
		zap.Int("skipped", len(result.Skipped)))

	return result, nil
}

func (i *Ingester) ingestSymbol(ctx context.Context, symbol string, from, to time.Time, result *Result) error {
	companyID, err := i.store.CompanyIDBySymbol(symbol)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeDataNotFound) {
			i.logger.Warn("skipping unknown symbol", zap.String("symbol", symbol))
			result.Skipped = append(result.Skipped, symbol)

			return nil
		}

		return err
	}

	bars, err := i.source.DailyBars(ctx, symbol, from, to)
	if err != nil {
		return err
	}

	for idx := range bars {
		bars[idx].CompanyID = companyID
	}

	if err := i.store.UpsertBars(bars); err != nil {
		return err
	}

	result.Symbols++
	result.Bars += len(bars)

	return nil
}
