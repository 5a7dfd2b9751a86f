package ledger

// UnrealizedPL values a position at the given mark price.
//
// Long:  (mark - entry) / entry * margin * leverage
// Short: (entry - mark) / entry * margin * leverage
func UnrealizedPL(p Position, mark float64) float64 {
	move := (mark - p.EntryPrice) / p.EntryPrice
	if p.Direction == Short {
		move = -move
	}
	return move * p.Margin * float64(p.Leverage)
}
