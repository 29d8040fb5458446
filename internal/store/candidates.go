package store

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/alphabeam/screenline/internal/types"
	"github.com/alphabeam/screenline/pkg/errors"
)

// snapshotColumns is the full column list of the company table in scan
// order. It must stay aligned with scanSnapshot below.
var snapshotColumns = []string{
	"id", "symbol", "longname", "exchange", "sector", "industry",
	"country", "recommendationkey", "isactive", "marketcap", "currentprice",
	"trailingpe", "forwardpe", "trailingpegratio",
	"pricetosalestrailing12months", "pricetobook", "enterprisetoebitda",
	"bookvalue",
	"returnonequity", "returnonassets", "profitmargins", "grossmargins",
	"operatingmargins", "earningsquarterlygrowth", "revenuegrowth",
	"eps_cagr_3year",
	"debttoequity", "currentratio", "payoutratio", "dividendyield",
	"beta", "price_relative_to_52week_high",
	"relative_strength_percentile_252", "relative_strength_percentile_126",
	"relative_strength_percentile_63", "_52weekchange",
}

// Candidates implements Store. Filters that reference unrecognized or
// non-database attributes are ignored; each applied filter carries an
// implicit NOT NULL guard so companies missing the attribute never match.
func (s *DuckDBStore) Candidates(market string, filters []types.FilterSpec) ([]types.Snapshot, error) {
	query := s.sq.Select(snapshotColumns...).
		From("company").
		Where(squirrel.Eq{"isactive": true}).
		Where("exchange IN (SELECT exchange_code FROM exchange WHERE country_code = ?)", market)

	for _, f := range filters {
		cond, ok := dbFilterCondition(f)
		if !ok {
			continue
		}

		query = query.Where(cond)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build candidate query", err)
	}

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "candidate query failed", err)
	}
	defer rows.Close()

	var snapshots []types.Snapshot

	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}

		snapshots = append(snapshots, snap)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "candidate rows failed", err)
	}

	s.logger.Debug("selected candidates",
		zap.String("market", market),
		zap.Int("filters", len(filters)),
		zap.Int("count", len(snapshots)))

	return snapshots, nil
}

// dbFilterCondition translates one filter spec into a squirrel condition.
// Returns ok=false for specs that do not apply at the database layer.
func dbFilterCondition(f types.FilterSpec) (squirrel.Sqlizer, bool) {
	if f.Malformed() {
		return nil, false
	}

	info, known := types.FilterMap[f.Name]
	if !known || info.Source != types.SourceDB {
		return nil, false
	}

	col := info.Column
	notNull := squirrel.NotEq{col: nil}

	if f.Op == types.OpIn {
		if len(f.Values) == 0 {
			return nil, false
		}

		return squirrel.And{notNull, squirrel.Eq{col: f.Values}}, true
	}

	if info.Kind == types.KindCategory {
		// Category attributes only support == and in; anything else is
		// dropped like an unrecognized name.
		if f.Op != types.OpEQ || len(f.Values) != 1 {
			return nil, false
		}

		return squirrel.And{notNull, squirrel.Eq{col: f.Values[0]}}, true
	}

	if f.Value == nil {
		return nil, false
	}

	value := *f.Value
	if info.Kind == types.KindPercentage {
		// Stored as a fraction, supplied in percent.
		value /= 100
	}

	var cmp squirrel.Sqlizer

	switch f.Op {
	case types.OpGT:
		cmp = squirrel.Gt{col: value}
	case types.OpGTE:
		cmp = squirrel.GtOrEq{col: value}
	case types.OpLT:
		cmp = squirrel.Lt{col: value}
	case types.OpLTE:
		cmp = squirrel.LtOrEq{col: value}
	case types.OpEQ:
		cmp = squirrel.Eq{col: value}
	default:
		return nil, false
	}

	return squirrel.And{notNull, cmp}, true
}

type optionalColumn struct {
	column string
	value  *float64
}

// snapshotOptionalColumns pairs each nullable snapshot attribute with its
// column name, in snapshotColumns order.
func snapshotOptionalColumns(snap *types.Snapshot) []optionalColumn {
	return []optionalColumn{
		{"trailingpe", snap.TrailingPE},
		{"forwardpe", snap.ForwardPE},
		{"trailingpegratio", snap.TrailingPegRatio},
		{"pricetosalestrailing12months", snap.PriceToSalesTTM},
		{"pricetobook", snap.PriceToBook},
		{"enterprisetoebitda", snap.EnterpriseToEbitda},
		{"bookvalue", snap.BookValue},
		{"returnonequity", snap.ReturnOnEquity},
		{"returnonassets", snap.ReturnOnAssets},
		{"profitmargins", snap.ProfitMargins},
		{"grossmargins", snap.GrossMargins},
		{"operatingmargins", snap.OperatingMargins},
		{"earningsquarterlygrowth", snap.EarningsQuarterlyGrowth},
		{"revenuegrowth", snap.RevenueGrowth},
		{"eps_cagr_3year", snap.EpsCagr3Year},
		{"debttoequity", snap.DebtToEquity},
		{"currentratio", snap.CurrentRatio},
		{"payoutratio", snap.PayoutRatio},
		{"dividendyield", snap.DividendYield},
		{"beta", snap.Beta},
		{"price_relative_to_52week_high", snap.PriceRelativeTo52WeekHigh},
		{"relative_strength_percentile_252", snap.RelativeStrengthPercentile252},
		{"relative_strength_percentile_126", snap.RelativeStrengthPercentile126},
		{"relative_strength_percentile_63", snap.RelativeStrengthPercentile63},
		{"_52weekchange", snap.FiftyTwoWeekChange},
	}
}

// scanSnapshot reads one company row. Nullable text columns collapse to ""
// and nullable numerics to nil pointers.
func scanSnapshot(rows *sql.Rows) (types.Snapshot, error) {
	var (
		snap                       types.Snapshot
		longName, exchange, sector sql.NullString
		industry, country, rec     sql.NullString
		marketCap, currentPrice    sql.NullFloat64
		optionals                  [25]sql.NullFloat64
	)

	dest := []any{
		&snap.ID, &snap.Symbol, &longName, &exchange, &sector, &industry,
		&country, &rec, &snap.IsActive, &marketCap, &currentPrice,
	}
	for i := range optionals {
		dest = append(dest, &optionals[i])
	}

	if err := rows.Scan(dest...); err != nil {
		return types.Snapshot{}, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan company row", err)
	}

	snap.LongName = longName.String
	snap.Exchange = exchange.String
	snap.Sector = sector.String
	snap.Industry = industry.String
	snap.Country = country.String
	snap.RecommendationKey = rec.String
	snap.MarketCap = marketCap.Float64
	snap.CurrentPrice = currentPrice.Float64

	targets := snapshotOptionalTargets(&snap)
	for i, v := range optionals {
		if v.Valid {
			value := v.Float64
			*targets[i] = &value
		}
	}

	return snap, nil
}

// snapshotOptionalTargets returns pointers to the nullable attribute fields
// in the same order as snapshotOptionalColumns.
func snapshotOptionalTargets(snap *types.Snapshot) []**float64 {
	return []**float64{
		&snap.TrailingPE, &snap.ForwardPE, &snap.TrailingPegRatio,
		&snap.PriceToSalesTTM, &snap.PriceToBook, &snap.EnterpriseToEbitda,
		&snap.BookValue,
		&snap.ReturnOnEquity, &snap.ReturnOnAssets, &snap.ProfitMargins,
		&snap.GrossMargins, &snap.OperatingMargins, &snap.EarningsQuarterlyGrowth,
		&snap.RevenueGrowth, &snap.EpsCagr3Year,
		&snap.DebtToEquity, &snap.CurrentRatio, &snap.PayoutRatio,
		&snap.DividendYield,
		&snap.Beta, &snap.PriceRelativeTo52WeekHigh,
		&snap.RelativeStrengthPercentile252, &snap.RelativeStrengthPercentile126,
		&snap.RelativeStrengthPercentile63, &snap.FiftyTwoWeekChange,
	}
}
