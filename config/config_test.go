package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()
	assert.NoError(t, Default().Validate())
}

func TestParseInterval(t *testing.T) {
	t.Parallel()

	fc := FeedConfig{Interval: "1500ms"}
	d, err := fc.ParseInterval()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)
}

func TestSaveLoadYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.Account.Balance = 25000
	cfg.Feed.Seed = 99

	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 25000.0, got.Account.Balance, 1e-9)
	assert.Equal(t, int64(99), got.Feed.Seed)
	assert.Equal(t, cfg.Feed.Initial, got.Feed.Initial)
}

func TestSaveLoadJSONRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()

	require.NoError(t, cfg.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Journal.Type, got.Journal.Type)
	assert.Equal(t, cfg.Store.DBPath, got.Store.DBPath)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadGarbage(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: [or json"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing_currency", func(c *Config) { c.Account.Currency = "" }},
		{"zero_balance", func(c *Config) { c.Account.Balance = 0 }},
		{"bad_interval", func(c *Config) { c.Feed.Interval = "soon" }},
		{"zero_volatility", func(c *Config) { c.Feed.Volatility = 0 }},
		{"excess_volatility", func(c *Config) { c.Feed.Volatility = 1.5 }},
		{"no_symbols", func(c *Config) { c.Feed.Initial = nil }},
		{"unknown_symbol", func(c *Config) { c.Feed.Initial = map[string]float64{"NO/SUCH": 1} }},
		{"negative_price", func(c *Config) { c.Feed.Initial["BTC/USDT"] = -1 }},
		{"missing_store_path", func(c *Config) { c.Store.DBPath = "" }},
		{"bad_journal_type", func(c *Config) { c.Journal.Type = "parquet" }},
		{"csv_missing_files", func(c *Config) { c.Journal.SettlementsFile = "" }},
		{"sqlite_missing_path", func(c *Config) {
			c.Journal.Type = "sqlite"
			c.Journal.DBPath = ""
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
