package ledger

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/papertrade/ledger/journal"
	"github.com/papertrade/ledger/market"
	"github.com/papertrade/ledger/pkg/id"
)

// Store persists ledger snapshots between runs. Implemented by
// store.SQLite; tests use an in-memory double.
type Store interface {
	// SaveState writes both snapshots so that a subsequent LoadState
	// sees either the old pair or the new pair, never a mix.
	SaveState(acct Account, open []Position) error
	// LoadState returns the last saved pair. ok is false when nothing
	// has been saved yet.
	LoadState() (acct Account, open []Position, ok bool, err error)
}

// Ledger owns the account and the open-position set. All access goes
// through its methods; the mutex serializes user calls against the
// tick-driven recompute.
type Ledger struct {
	mu        sync.Mutex
	acct      Account
	positions map[string]*Position
	store     Store
	journal   journal.Journal
}

// New builds a ledger from a fresh account. No state is loaded.
func New(acct Account, st Store, j journal.Journal) *Ledger {
	return &Ledger{
		acct:      acct,
		positions: make(map[string]*Position),
		store:     st,
		journal:   j,
	}
}

// Restore builds a ledger from the store's last snapshot, falling back
// to defaults when nothing has been persisted yet.
func Restore(defaults Account, st Store, j journal.Journal) (*Ledger, error) {
	acct, open, ok, err := st.LoadState()
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	if !ok {
		acct = defaults
		open = nil
	}

	l := New(acct, st, j)
	for i := range open {
		p := open[i]
		l.positions[p.ID] = &p
	}
	return l, nil
}

// OpenRequest describes a position to open. MarkPrice is the feed's
// latest mark for the symbol at call time and becomes the entry price.
type OpenRequest struct {
	Symbol    string
	Direction Direction
	Margin    float64
	Leverage  int
	MarkPrice float64
}

// Open validates the request, debits margin and adds the position to
// the open set. State is persisted before a success is returned; a
// rejection leaves everything untouched.
func (l *Ledger) Open(ctx context.Context, req OpenRequest) (Position, error) {
	_ = ctx // reserved for future cancellation checks

	l.mu.Lock()
	defer l.mu.Unlock()

	meta, ok := market.Lookup(req.Symbol)
	if !ok {
		return Position{}, fmt.Errorf("open %q: %w", req.Symbol, ErrUnknownSymbol)
	}
	if req.Direction != Long && req.Direction != Short {
		return Position{}, fmt.Errorf("open %q: direction %q: %w", req.Symbol, req.Direction, ErrInvalidDirection)
	}
	if req.Margin <= 0 || math.IsNaN(req.Margin) || math.IsInf(req.Margin, 0) {
		return Position{}, fmt.Errorf("open %q: margin %v: %w", req.Symbol, req.Margin, ErrInvalidAmount)
	}
	if req.MarkPrice <= 0 || math.IsNaN(req.MarkPrice) || math.IsInf(req.MarkPrice, 0) {
		return Position{}, fmt.Errorf("open %q: mark %v: %w", req.Symbol, req.MarkPrice, ErrInvalidPrice)
	}
	if req.Leverage < 1 || req.Leverage > meta.MaxLeverage {
		return Position{}, fmt.Errorf("open %q: leverage %dx (ceiling %dx): %w",
			req.Symbol, req.Leverage, meta.MaxLeverage, ErrLeverageExceeded)
	}
	if req.Margin > l.acct.Balance {
		return Position{}, fmt.Errorf("open %q: margin %.2f > balance %.2f: %w",
			req.Symbol, req.Margin, l.acct.Balance, ErrInsufficientBalance)
	}

	p := &Position{
		ID:         id.New(),
		Symbol:     req.Symbol,
		Direction:  req.Direction,
		EntryPrice: req.MarkPrice,
		Margin:     req.Margin,
		Leverage:   req.Leverage,
		OpenTime:   time.Now().UTC(),
	}

	l.positions[p.ID] = p
	l.acct.Balance -= req.Margin

	if err := l.saveLocked(); err != nil {
		// Undo so a failed persist never leaves phantom state.
		delete(l.positions, p.ID)
		l.acct.Balance += req.Margin
		return Position{}, fmt.Errorf("open %q: persist: %w", req.Symbol, err)
	}

	l.recordEquityLocked(p.OpenTime)

	return *p, nil
}

// MarkPrice revalues every open position in the symbol at the new mark.
// It never persists and never mutates anything except UnrealizedPL.
func (l *Ledger) MarkPrice(symbol string, mark float64) {
	if mark <= 0 || math.IsNaN(mark) || math.IsInf(mark, 0) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.positions {
		if p.Symbol != symbol {
			continue
		}
		p.UnrealizedPL = UnrealizedPL(*p, mark)
	}
}

// MarkAll applies one mark to every open position regardless of symbol.
// This mirrors the single global feed of the system the ledger was
// extracted from; prefer MarkPrice with a per-symbol feed.
func (l *Ledger) MarkAll(mark float64) {
	if mark <= 0 || math.IsNaN(mark) || math.IsInf(mark, 0) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.positions {
		p.UnrealizedPL = UnrealizedPL(*p, mark)
	}
}

// Settlement is the result of a successful close.
type Settlement struct {
	PositionID string
	Symbol     string
	RealizedPL float64
	Margin     float64
	Balance    float64
	CloseTime  time.Time
}

// Close removes the position from the open set and settles margin plus
// the P&L from the most recent mark back into the balance. Losses are
// capped at the committed margin. A second close of the same ID
// returns ErrPositionNotFound.
func (l *Ledger) Close(ctx context.Context, positionID string) (Settlement, error) {
	_ = ctx // reserved for future cancellation checks

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.positions[positionID]
	if !ok {
		return Settlement{}, fmt.Errorf("close %q: %w", positionID, ErrPositionNotFound)
	}

	// Isolated margin: a position can never lose more than its
	// committed margin, so the settlement credit floors at zero and
	// the balance stays non-negative.
	realized := p.UnrealizedPL
	if realized < -p.Margin {
		realized = -p.Margin
	}
	closeTime := time.Now().UTC()

	delete(l.positions, positionID)
	l.acct.Balance += p.Margin + realized

	if err := l.saveLocked(); err != nil {
		l.positions[positionID] = p
		l.acct.Balance -= p.Margin + realized
		return Settlement{}, fmt.Errorf("close %q: persist: %w", positionID, err)
	}

	exit := exitPrice(*p, realized)
	l.journal.RecordSettlement(journal.SettlementRecord{
		PositionID: p.ID,
		Symbol:     p.Symbol,
		Direction:  string(p.Direction),
		Margin:     p.Margin,
		Leverage:   p.Leverage,
		EntryPrice: p.EntryPrice,
		ExitPrice:  exit,
		OpenTime:   p.OpenTime,
		CloseTime:  closeTime,
		RealizedPL: realized,
		Reason:     "ManualClose",
	})
	l.recordEquityLocked(closeTime)

	return Settlement{
		PositionID: p.ID,
		Symbol:     p.Symbol,
		RealizedPL: realized,
		Margin:     p.Margin,
		Balance:    l.acct.Balance,
		CloseTime:  closeTime,
	}, nil
}

// Account returns a copy of the account.
func (l *Ledger) Account() Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acct
}

// Positions returns copies of the open positions, oldest first.
func (l *Ledger) Positions() []Position {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		out = append(out, *p)
	}
	// ULIDs sort by creation time.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Equity is balance plus the sum of unrealized P&L.
func (l *Ledger) Equity() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.equityLocked()
}

func (l *Ledger) equityLocked() float64 {
	equity := l.acct.Balance
	for _, p := range l.positions {
		equity += p.UnrealizedPL
	}
	return equity
}

func (l *Ledger) marginUsedLocked() float64 {
	var used float64
	for _, p := range l.positions {
		used += p.Margin
	}
	return used
}

func (l *Ledger) saveLocked() error {
	open := make([]Position, 0, len(l.positions))
	for _, p := range l.positions {
		open = append(open, *p)
	}
	sort.Slice(open, func(i, j int) bool { return open[i].ID < open[j].ID })
	return l.store.SaveState(l.acct, open)
}

func (l *Ledger) recordEquityLocked(now time.Time) {
	l.journal.RecordEquity(journal.EquitySnapshot{
		Time:          now,
		Balance:       l.acct.Balance,
		Equity:        l.equityLocked(),
		MarginUsed:    l.marginUsedLocked(),
		OpenPositions: len(l.positions),
	})
}

// exitPrice recovers the mark the final P&L was computed at, so the
// journal row carries an exit price even though the ledger itself only
// tracks P&L.
func exitPrice(p Position, realized float64) float64 {
	move := realized / (p.Margin * float64(p.Leverage))
	if p.Direction == Short {
		move = -move
	}
	return p.EntryPrice * (1 + move)
}
