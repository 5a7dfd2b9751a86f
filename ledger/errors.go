package ledger

import "errors"

// Validation failures returned by Open and Close. All are local and
// recoverable; a rejected request leaves ledger state untouched.
var (
	ErrInvalidAmount       = errors.New("margin amount must be a positive finite number")
	ErrInvalidDirection    = errors.New("direction must be LONG or SHORT")
	ErrInvalidPrice        = errors.New("mark price must be a positive finite number")
	ErrInsufficientBalance = errors.New("margin amount exceeds account balance")
	ErrLeverageExceeded    = errors.New("leverage exceeds instrument ceiling")
	ErrUnknownSymbol       = errors.New("unknown instrument symbol")
	ErrPositionNotFound    = errors.New("position not found")
)
