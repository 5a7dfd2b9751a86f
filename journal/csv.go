// journal/csv.go
package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSV struct {
	settlements *csv.Writer
	equity      *csv.Writer
	sf, ef      *os.File
}

func NewCSV(settlementsPath, equityPath string) (*CSV, error) {
	sf, err := os.Create(settlementsPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		return nil, err
	}

	sw := csv.NewWriter(sf)
	ew := csv.NewWriter(ef)

	if err := sw.Write([]string{"position_id", "symbol", "direction", "margin", "leverage", "entry_price", "exit_price", "open_time", "close_time", "realized_pl", "reason"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"time", "balance", "equity", "margin_used", "open_positions"}); err != nil {
		return nil, err
	}

	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSV{sw, ew, sf, ef}, nil
}

func (j *CSV) RecordSettlement(s SettlementRecord) error {
	err := j.settlements.Write([]string{
		s.PositionID,
		s.Symbol,
		s.Direction,
		f(s.Margin),
		strconv.Itoa(s.Leverage),
		f(s.EntryPrice),
		f(s.ExitPrice),
		s.OpenTime.Format(time.RFC3339),
		s.CloseTime.Format(time.RFC3339),
		f(s.RealizedPL),
		s.Reason,
	})
	if err != nil {
		return err
	}

	j.settlements.Flush()
	return j.settlements.Error()
}

func (j *CSV) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.Time.Format(time.RFC3339),
		f(e.Balance),
		f(e.Equity),
		f(e.MarginUsed),
		strconv.Itoa(e.OpenPositions),
	})
	if err != nil {
		return err
	}

	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSV) Close() error {
	j.settlements.Flush()
	if err := j.settlements.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}

	if err := j.sf.Close(); err != nil {
		return err
	}
	if err := j.ef.Close(); err != nil {
		return err
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
