package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/papertrade/ledger/market"
)

// Config represents the complete ledger configuration
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Feed    FeedConfig    `json:"feed" yaml:"feed"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// AccountConfig contains account initialization parameters, used only
// when the store holds no previous snapshot.
type AccountConfig struct {
	ID       string  `json:"id" yaml:"id"`
	Currency string  `json:"currency" yaml:"currency"`
	Balance  float64 `json:"balance" yaml:"balance"`
}

// FeedConfig contains simulated price feed parameters
type FeedConfig struct {
	Interval   string             `json:"interval" yaml:"interval"` // e.g. "1500ms"
	Volatility float64            `json:"volatility" yaml:"volatility"`
	Seed       int64              `json:"seed,omitempty" yaml:"seed,omitempty"`
	Initial    map[string]float64 `json:"initial" yaml:"initial"`
}

// ParseInterval converts the interval string to time.Duration
func (fc FeedConfig) ParseInterval() (time.Duration, error) {
	return time.ParseDuration(fc.Interval)
}

// StoreConfig contains state persistence parameters
type StoreConfig struct {
	DBPath string `json:"db_path" yaml:"db_path"`
}

// JournalConfig contains settlement journaling parameters
type JournalConfig struct {
	Type            string `json:"type" yaml:"type"` // "csv" or "sqlite"
	SettlementsFile string `json:"settlements_file,omitempty" yaml:"settlements_file,omitempty"`
	EquityFile      string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath          string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	File       string `json:"file,omitempty" yaml:"file,omitempty"`
	Level      string `json:"level,omitempty" yaml:"level,omitempty"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" yaml:"max_size_mb,omitempty"`
	MaxBackups int    `json:"max_backups,omitempty" yaml:"max_backups,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
	Compress   bool   `json:"compress,omitempty" yaml:"compress,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if _, err := c.Feed.ParseInterval(); err != nil {
		return fmt.Errorf("feed.interval: %w", err)
	}
	if c.Feed.Volatility <= 0 || c.Feed.Volatility >= 1 {
		return fmt.Errorf("feed.volatility must be between 0 and 1")
	}
	if len(c.Feed.Initial) == 0 {
		return fmt.Errorf("feed.initial must list at least one symbol")
	}
	for symbol, price := range c.Feed.Initial {
		if _, ok := market.Lookup(symbol); !ok {
			return fmt.Errorf("unknown instrument: %s", symbol)
		}
		if price <= 0 {
			return fmt.Errorf("feed.initial[%s] must be positive", symbol)
		}
	}
	if c.Store.DBPath == "" {
		return fmt.Errorf("store.db_path is required")
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && (c.Journal.SettlementsFile == "" || c.Journal.EquityFile == "") {
		return fmt.Errorf("journal settlements_file and equity_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:       "PAPER-001",
			Currency: "USDT",
			Balance:  10000,
		},
		Feed: FeedConfig{
			Interval:   "1500ms",
			Volatility: 0.004,
			Initial: map[string]float64{
				"BTC/USDT": 67245.50,
				"ETH/USDT": 3421.80,
			},
		},
		Store: StoreConfig{
			DBPath: "./ledger-state.db",
		},
		Journal: JournalConfig{
			Type:            "csv",
			SettlementsFile: "./settlements.csv",
			EquityFile:      "./equity.csv",
		},
		Log: LogConfig{
			Level: "INFO",
		},
	}
}
