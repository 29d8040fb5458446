// Package store owns the DuckDB database behind the scanning engine: the
// static exchange reference table, the company snapshot table maintained by
// the ingestion process, and daily price history. It is the only package
// that speaks SQL; everything above it works on types.Snapshot and types.Bar.
package store

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/alphabeam/screenline/internal/logger"
	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// Store is the read surface the scan pipeline depends on.
type Store interface {
	// Candidates returns active companies on the exchanges of the given
	// market, narrowed by the database-evaluable filters.
	Candidates(market string, filters []types.FilterSpec) ([]types.Snapshot, error)

	// PriceHistory bulk-loads split-adjusted daily bars for the given
	// companies over a trailing calendar-day window ending at end (now
	// when None). Bars are sorted by date per company.
	PriceHistory(companyIDs []int64, daysBack int, end optional.Option[time.Time]) (map[int64][]types.Bar, error)

	Close() error
}

// DuckDBStore implements Store on a DuckDB database file.
type DuckDBStore struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

var _ Store = (*DuckDBStore)(nil)

// NewStore opens (creating if needed) the DuckDB database at path. The
// caller owns the returned store and must Close it.
func NewStore(path string, logger *logger.Logger) (*DuckDBStore, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreUnavailable, err, "failed to open database at %s", path)
	}

	if err := db.Ping(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStoreUnavailable, err, "database at %s is not reachable", path)
	}

	return &DuckDBStore{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Close implements Store.
func (s *DuckDBStore) Close() error {
	s.logger.Debug("closing store")

	return s.db.Close()
}

// DB exposes the underlying handle for the ingestion process. The scan
// pipeline never touches it.
func (s *DuckDBStore) DB() *sql.DB {
	return s.db
}

// UpsertBars writes daily bars into price_history, replacing any existing
// row for the same (company_id, date).
func (s *DuckDBStore) UpsertBars(bars []types.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to begin bar upsert", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO price_history
			(company_id, date, open, high, low, close, adjclose, volume, split_coefficient)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()

		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to prepare bar upsert", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(b.CompanyID, b.Date, b.Open, b.High, b.Low, b.Close, b.AdjClose, b.Volume, b.SplitCoefficient); err != nil {
			_ = tx.Rollback()

			return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to upsert bar for company %d", b.CompanyID)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to commit bar upsert", err)
	}

	s.logger.Debug("upserted bars", zap.Int("count", len(bars)))

	return nil
}

// CompanyIDBySymbol resolves a ticker symbol to its company id.
func (s *DuckDBStore) CompanyIDBySymbol(symbol string) (int64, error) {
	query, args, err := s.sq.Select("id").From("company").Where(squirrel.Eq{"symbol": symbol}).ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build company lookup", err)
	}

	var id int64

	if err := s.db.QueryRow(query, args...).Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return 0, errors.Newf(errors.ErrCodeDataNotFound, "no company with symbol %s", symbol)
		}

		return 0, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to look up company %s", symbol)
	}

	return id, nil
}

// UpsertCompany writes a company snapshot, replacing any existing row with
// the same id.
func (s *DuckDBStore) UpsertCompany(snap types.Snapshot) error {
	cols := []string{
		"id", "symbol", "longname", "exchange", "sector", "industry",
		"country", "recommendationkey", "isactive", "marketcap", "currentprice",
	}

	vals := []any{
		snap.ID, snap.Symbol, snap.LongName, snap.Exchange, snap.Sector, snap.Industry,
		snap.Country, snap.RecommendationKey, snap.IsActive, snap.MarketCap, snap.CurrentPrice,
	}

	for _, opt := range snapshotOptionalColumns(&snap) {
		cols = append(cols, opt.column)
		if opt.value != nil {
			vals = append(vals, *opt.value)
		} else {
			vals = append(vals, nil)
		}
	}

	query, args, err := s.sq.Insert("company").Columns(cols...).Values(vals...).
		Options("OR REPLACE").ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to build company upsert", err)
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to upsert company %s", snap.Symbol)
	}

	return nil
}
