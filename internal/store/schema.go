package store

import (
	"github.com/alphabeam/screenline/pkg/errors"
)

// schemaStatements creates the three tables. All statements are idempotent
// so InitSchema can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS exchange (
		id BIGINT PRIMARY KEY,
		continent VARCHAR NOT NULL,
		country VARCHAR NOT NULL,
		country_code VARCHAR NOT NULL,
		exchange_code VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		suffix VARCHAR,
		open_time VARCHAR NOT NULL,
		close_time VARCHAR NOT NULL,
		timezone VARCHAR NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS company (
		id BIGINT PRIMARY KEY,
		symbol VARCHAR NOT NULL,
		longname VARCHAR,
		exchange VARCHAR,
		sector VARCHAR,
		industry VARCHAR,
		country VARCHAR,
		recommendationkey VARCHAR,
		isactive BOOLEAN NOT NULL DEFAULT TRUE,
		marketcap DOUBLE,
		currentprice DOUBLE,
		trailingpe DOUBLE,
		forwardpe DOUBLE,
		trailingpegratio DOUBLE,
		pricetosalestrailing12months DOUBLE,
		pricetobook DOUBLE,
		enterprisetoebitda DOUBLE,
		bookvalue DOUBLE,
		returnonequity DOUBLE,
		returnonassets DOUBLE,
		profitmargins DOUBLE,
		grossmargins DOUBLE,
		operatingmargins DOUBLE,
		earningsquarterlygrowth DOUBLE,
		revenuegrowth DOUBLE,
		eps_cagr_3year DOUBLE,
		debttoequity DOUBLE,
		currentratio DOUBLE,
		payoutratio DOUBLE,
		dividendyield DOUBLE,
		beta DOUBLE,
		price_relative_to_52week_high DOUBLE,
		relative_strength_percentile_252 DOUBLE,
		relative_strength_percentile_126 DOUBLE,
		relative_strength_percentile_63 DOUBLE,
		_52weekchange DOUBLE
	)`,
	`CREATE TABLE IF NOT EXISTS price_history (
		company_id BIGINT NOT NULL,
		date TIMESTAMP NOT NULL,
		open DOUBLE NOT NULL,
		high DOUBLE NOT NULL,
		low DOUBLE NOT NULL,
		close DOUBLE NOT NULL,
		adjclose DOUBLE,
		volume DOUBLE NOT NULL,
		split_coefficient DOUBLE NOT NULL DEFAULT 1,
		PRIMARY KEY (company_id, date)
	)`,
}

// InitSchema creates the schema when missing and seeds the exchange
// reference table. Safe to call repeatedly.
func (s *DuckDBStore) InitSchema() error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(errors.ErrCodeSchemaFailed, "failed to create schema", err)
		}
	}

	return s.SeedExchanges()
}

// SeedExchanges populates the exchange table from the static reference
// list. It checks for existing rows first so the seed runs only once.
func (s *DuckDBStore) SeedExchanges() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM exchange`).Scan(&count); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to count exchanges", err)
	}

	if count > 0 {
		return nil
	}

	builder := s.sq.Insert("exchange").Columns(
		"id", "continent", "country", "country_code", "exchange_code",
		"name", "suffix", "open_time", "close_time", "timezone",
	)

	for _, e := range exchangeSeed {
		var suffix any
		if e.Suffix != "" {
			suffix = e.Suffix
		}

		builder = builder.Values(e.ID, e.Continent, e.Country, e.CountryCode, e.Code, e.Name, suffix, e.OpenTime, e.CloseTime, e.Timezone)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to build exchange seed", err)
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to seed exchanges", err)
	}

	return nil
}
