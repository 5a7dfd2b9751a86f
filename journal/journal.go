// journal/journal.go
package journal

import "time"

// SettlementRecord is written once per closed position.
type SettlementRecord struct {
	PositionID string
	Symbol     string
	Direction  string
	Margin     float64
	Leverage   int
	EntryPrice float64
	ExitPrice  float64
	OpenTime   time.Time
	CloseTime  time.Time
	RealizedPL float64
	Reason     string
}

// EquitySnapshot captures the account after each open or close.
type EquitySnapshot struct {
	Time          time.Time
	Balance       float64
	Equity        float64
	MarginUsed    float64
	OpenPositions int
}

type Journal interface {
	RecordSettlement(SettlementRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}
