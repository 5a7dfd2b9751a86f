package cmd

import (
	"fmt"

	"github.com/papertrade/ledger/config"
	"github.com/papertrade/ledger/journal"
	"github.com/papertrade/ledger/ledger"
	"github.com/papertrade/ledger/store"
)

// loadConfig reads the config file when a path is given, otherwise
// falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	if cfg.Journal.Type == "sqlite" {
		return journal.NewSQLite(cfg.Journal.DBPath)
	}
	return journal.NewCSV(cfg.Journal.SettlementsFile, cfg.Journal.EquityFile)
}

// restoreLedger opens the state store and rebuilds the ledger from its
// last snapshot. Caller must Close the returned store.
func restoreLedger(cfg *config.Config, j journal.Journal) (*ledger.Ledger, *store.SQLite, error) {
	st, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	l, err := ledger.Restore(ledger.Account{
		ID:       cfg.Account.ID,
		Currency: cfg.Account.Currency,
		Balance:  cfg.Account.Balance,
	}, st, j)
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	return l, st, nil
}
