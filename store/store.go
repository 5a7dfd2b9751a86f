// Package store persists ledger snapshots in SQLite as JSON values in
// a small key-value table. Two logical keys are used: one for the
// account, one for the open-position list.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/papertrade/ledger/ledger"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const (
	keyAccount   = "account"
	keyPositions = "positions"
)

type SQLite struct {
	db *sql.DB
}

// Open creates the database file (and its directory) if needed and
// enables WAL mode so readers never block the writer.
func Open(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Get returns the raw value for a key. ok is false when the key has
// never been set.
func (s *SQLite) Get(key string) (value string, ok bool, err error) {
	row := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set upserts a key in a single statement, so a concurrent Get sees
// either the old value or the new one.
func (s *SQLite) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	return err
}

// accountRow and positionRow pin the JSON layout so renaming a ledger
// field cannot silently break old snapshots.
type accountRow struct {
	ID       string  `json:"id"`
	Currency string  `json:"currency"`
	Balance  float64 `json:"balance"`
}

type positionRow struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Direction    string    `json:"direction"`
	EntryPrice   float64   `json:"entry_price"`
	Margin       float64   `json:"margin"`
	Leverage     int       `json:"leverage"`
	OpenTime     time.Time `json:"open_time"`
	UnrealizedPL float64   `json:"unrealized_pl"`
}

// SaveState writes both snapshots inside one transaction, so LoadState
// sees either the previous pair or the new pair, never a mix.
func (s *SQLite) SaveState(acct ledger.Account, open []ledger.Position) error {
	acctJSON, err := json.Marshal(accountRow{
		ID:       acct.ID,
		Currency: acct.Currency,
		Balance:  acct.Balance,
	})
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	rows := make([]positionRow, 0, len(open))
	for _, p := range open {
		rows = append(rows, positionRow{
			ID:           p.ID,
			Symbol:       p.Symbol,
			Direction:    string(p.Direction),
			EntryPrice:   p.EntryPrice,
			Margin:       p.Margin,
			Leverage:     p.Leverage,
			OpenTime:     p.OpenTime,
			UnrealizedPL: p.UnrealizedPL,
		})
	}
	posJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal positions: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	upsert := `
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := tx.Exec(upsert, keyAccount, string(acctJSON), now); err != nil {
		return fmt.Errorf("save account: %w", err)
	}
	if _, err := tx.Exec(upsert, keyPositions, string(posJSON), now); err != nil {
		return fmt.Errorf("save positions: %w", err)
	}

	return tx.Commit()
}

// LoadState returns the last saved snapshot pair. ok is false on a
// fresh database.
func (s *SQLite) LoadState() (ledger.Account, []ledger.Position, bool, error) {
	acctJSON, ok, err := s.Get(keyAccount)
	if err != nil {
		return ledger.Account{}, nil, false, fmt.Errorf("load account: %w", err)
	}
	if !ok {
		return ledger.Account{}, nil, false, nil
	}

	var ar accountRow
	if err := json.Unmarshal([]byte(acctJSON), &ar); err != nil {
		return ledger.Account{}, nil, false, fmt.Errorf("decode account: %w", err)
	}
	acct := ledger.Account{ID: ar.ID, Currency: ar.Currency, Balance: ar.Balance}

	posJSON, ok, err := s.Get(keyPositions)
	if err != nil {
		return ledger.Account{}, nil, false, fmt.Errorf("load positions: %w", err)
	}

	var open []ledger.Position
	if ok {
		var rows []positionRow
		if err := json.Unmarshal([]byte(posJSON), &rows); err != nil {
			return ledger.Account{}, nil, false, fmt.Errorf("decode positions: %w", err)
		}
		for _, r := range rows {
			open = append(open, ledger.Position{
				ID:           r.ID,
				Symbol:       r.Symbol,
				Direction:    ledger.Direction(r.Direction),
				EntryPrice:   r.EntryPrice,
				Margin:       r.Margin,
				Leverage:     r.Leverage,
				OpenTime:     r.OpenTime,
				UnrealizedPL: r.UnrealizedPL,
			})
		}
	}

	return acct, open, true, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
