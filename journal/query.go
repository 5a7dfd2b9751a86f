package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetSettlement returns a single settlement row by position ID.
func (j *SQLite) GetSettlement(positionID string) (SettlementRecord, error) {
	var rec SettlementRecord

	row := j.db.QueryRow(`
		SELECT position_id, symbol, direction, margin, leverage, entry_price, exit_price, open_time, close_time, realized_pl, reason
		FROM settlements
		WHERE position_id = ?`, positionID)

	err := row.Scan(
		&rec.PositionID,
		&rec.Symbol,
		&rec.Direction,
		&rec.Margin,
		&rec.Leverage,
		&rec.EntryPrice,
		&rec.ExitPrice,
		&rec.OpenTime,
		&rec.CloseTime,
		&rec.RealizedPL,
		&rec.Reason,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return SettlementRecord{}, fmt.Errorf("settlement %q not found", positionID)
		}
		return SettlementRecord{}, err
	}
	return rec, nil
}

// ListSettlementsBetween returns settlements whose close_time is within [start, end).
func (j *SQLite) ListSettlementsBetween(start, end time.Time) ([]SettlementRecord, error) {
	rows, err := j.db.Query(`
		SELECT position_id, symbol, direction, margin, leverage, entry_price, exit_price, open_time, close_time, realized_pl, reason
		FROM settlements
		WHERE close_time >= ? AND close_time < ?
		ORDER BY close_time ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SettlementRecord
	for rows.Next() {
		var rec SettlementRecord
		if err := rows.Scan(
			&rec.PositionID,
			&rec.Symbol,
			&rec.Direction,
			&rec.Margin,
			&rec.Leverage,
			&rec.EntryPrice,
			&rec.ExitPrice,
			&rec.OpenTime,
			&rec.CloseTime,
			&rec.RealizedPL,
			&rec.Reason,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
