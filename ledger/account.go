package ledger

// Account holds the balance margin is debited from at open and settled
// back into at close. Balance only changes through Open and Close.
type Account struct {
	ID       string
	Currency string
	Balance  float64
}
