package ledger

import "time"

type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Position is an open leveraged position. Every field except
// UnrealizedPL is fixed at open time.
type Position struct {
	ID         string
	Symbol     string
	Direction  Direction
	EntryPrice float64
	Margin     float64
	Leverage   int
	OpenTime   time.Time

	// Paper profit at the latest mark. Becomes realized on close.
	UnrealizedPL float64
}

// Notional is the leveraged exposure. Derived, never stored.
func (p Position) Notional() float64 {
	return p.Margin * float64(p.Leverage)
}
