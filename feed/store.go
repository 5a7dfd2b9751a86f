package feed

import (
	"errors"
	"sync"
	"time"
)

// Tick is one mark-price update for a symbol.
type Tick struct {
	Symbol string
	Price  float64
	Time   time.Time
}

// Store holds the latest mark per symbol.
type Store struct {
	mu    sync.RWMutex
	marks map[string]Tick
}

func NewStore() *Store {
	return &Store{marks: make(map[string]Tick)}
}

func (s *Store) Set(t Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marks[t.Symbol] = t
}

func (s *Store) Get(symbol string) (Tick, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.marks[symbol]
	if !ok {
		return Tick{}, errors.New("no mark for symbol")
	}
	return t, nil
}
