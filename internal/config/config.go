// Package config loads and validates the engine configuration from YAML.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/alphabeam/screenline/pkg/errors"
)

// Config is the full engine configuration. Zero values are filled from
// DefaultConfig before validation, so a partial YAML file is fine.
type Config struct {
	// DatabasePath is the DuckDB file backing the store.
	DatabasePath string `yaml:"database_path" json:"database_path" validate:"required"`
	// ListenAddr is the HTTP API bind address.
	ListenAddr string `yaml:"listen_addr" json:"listen_addr" validate:"required"`
	// Market selects the candidate universe by country code.
	Market string `yaml:"market" json:"market" validate:"required"`

	Scan     ScanConfig     `yaml:"scan" json:"scan"`
	Backtest BacktestConfig `yaml:"backtest" json:"backtest"`
	Ingest   IngestConfig   `yaml:"ingest" json:"ingest"`
}

// ScanConfig carries the shared scan pipeline defaults.
type ScanConfig struct {
	DaysBack           int     `yaml:"days_back" json:"days_back" validate:"gt=0"`
	VolumeLookbackDays int     `yaml:"volume_lookback_days" json:"volume_lookback_days" validate:"gt=0"`
	MinAvgVolume       float64 `yaml:"min_avg_volume" json:"min_avg_volume" validate:"gte=0"`
	MinMarketCap       float64 `yaml:"min_market_cap" json:"min_market_cap" validate:"gte=0"`
	SetupLookbackDays  int     `yaml:"setup_lookback_days" json:"setup_lookback_days" validate:"gt=0"`
}

// BacktestConfig carries replay defaults.
type BacktestConfig struct {
	HoldDays int `yaml:"hold_days" json:"hold_days" validate:"gt=0"`
}

// IngestConfig configures the price ingestion client.
type IngestConfig struct {
	PolygonAPIKey string `yaml:"polygon_api_key" json:"polygon_api_key"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	return Config{
		DatabasePath: "screenline.db",
		ListenAddr:   ":8080",
		Market:       "us",
		Scan: ScanConfig{
			DaysBack:           500,
			VolumeLookbackDays: 50,
			MinAvgVolume:       100_000,
			MinMarketCap:       1_000_000_000,
			SetupLookbackDays:  2,
		},
		Backtest: BacktestConfig{
			HoldDays: 5,
		},
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "cannot read config file %s", path)
	}

	return ParseConfig(data)
}

// ParseConfig unmarshals YAML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config yaml", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}
