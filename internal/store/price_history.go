package store

import (
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// PriceHistory implements Store. One bulk query loads the trailing window
// for every company; split adjustment is applied here so indicator math
// upstream always sees prices consistent with charting software.
func (s *DuckDBStore) PriceHistory(companyIDs []int64, daysBack int, end optional.Option[time.Time]) (map[int64][]types.Bar, error) {
	if len(companyIDs) == 0 {
		return map[int64][]types.Bar{}, nil
	}

	if daysBack <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "daysBack must be positive, got %d", daysBack)
	}

	endDate := end.TakeOr(time.Now().UTC())
	startDate := endDate.AddDate(0, 0, -daysBack)

	query := s.sq.Select(
		"company_id", "date", "open", "high", "low", "close",
		"adjclose", "volume", "split_coefficient",
	).
		From("price_history").
		Where(squirrel.Eq{"company_id": companyIDs}).
		Where(squirrel.GtOrEq{"date": startDate}).
		Where(squirrel.LtOrEq{"date": endDate}).
		OrderBy("company_id", "date")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build price history query", err)
	}

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "price history query failed", err)
	}
	defer rows.Close()

	history := make(map[int64][]types.Bar, len(companyIDs))

	var total int

	for rows.Next() {
		var b types.Bar
		if err := rows.Scan(&b.CompanyID, &b.Date, &b.Open, &b.High, &b.Low, &b.Close,
			&b.AdjClose, &b.Volume, &b.SplitCoefficient); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan price history row", err)
		}

		history[b.CompanyID] = append(history[b.CompanyID], b)
		total++
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "price history rows failed", err)
	}

	for id, bars := range history {
		history[id] = AdjustForSplits(bars)
	}

	s.logger.Debug("loaded price history",
		zap.Int("companies", len(history)),
		zap.Int("bars", total),
		zap.Int("days_back", daysBack))

	return history, nil
}

// AdjustForSplits rescales OHLC prices within a window so the whole series
// is expressed in post-split terms. Each bar is divided by the cumulative
// product of the split coefficients from that bar to the end of the window;
// a zero coefficient means "no split recorded" and is treated as 1. Bars
// must be sorted by date. The input slice is not mutated; stored prices
// stay raw so the adjustment is recomputed per load.
func AdjustForSplits(bars []types.Bar) []types.Bar {
	adjusted := make([]types.Bar, len(bars))
	copy(adjusted, bars)

	cum := 1.0

	for i := len(adjusted) - 1; i >= 0; i-- {
		coeff := adjusted[i].SplitCoefficient
		if coeff == 0 {
			coeff = 1
		}

		cum *= coeff

		adjusted[i].Open /= cum
		adjusted[i].High /= cum
		adjusted[i].Low /= cum
		adjusted[i].Close /= cum
	}

	return adjusted
}
