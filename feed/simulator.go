// Package feed produces simulated mark prices. The simulator is a
// random walk per symbol driven by an explicit cancellable ticker, so
// tests can call Step directly instead of waiting on wall-clock time.
package feed

import (
	"math/rand"
	"sort"
	"sync"
	"time"
)

type Config struct {
	// Interval between ticks.
	Interval time.Duration
	// Volatility bounds each tick's relative move, e.g. 0.004 keeps a
	// single tick within ±0.4% of the previous mark.
	Volatility float64
	// Seed makes the walk reproducible. Zero seeds from the clock.
	Seed int64
	// Initial marks, one entry per simulated symbol.
	Initial map[string]float64
}

// Simulator drives a Store and a subscriber callback with new marks at
// a fixed cadence. Start launches the loop; Stop cancels it and waits,
// so no tick is delivered after Stop returns.
type Simulator struct {
	cfg    Config
	rng    *rand.Rand
	store  *Store
	onTick func(Tick)

	mu      sync.Mutex
	current map[string]float64
	stop    chan struct{}
	done    chan struct{}
}

func NewSimulator(cfg Config, store *Store, onTick func(Tick)) *Simulator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	current := make(map[string]float64, len(cfg.Initial))
	now := time.Now().UTC()
	for symbol, price := range cfg.Initial {
		current[symbol] = price
		store.Set(Tick{Symbol: symbol, Price: price, Time: now})
	}

	return &Simulator{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(seed)),
		store:   store,
		onTick:  onTick,
		current: current,
	}
}

func (s *Simulator) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.loop(s.stop, s.done)
}

func (s *Simulator) Stop() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (s *Simulator) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			s.Step(now.UTC())
		}
	}
}

// Step advances every symbol's walk by one tick and publishes the new
// marks. Exposed so tests and replays can drive the feed directly.
func (s *Simulator) Step(now time.Time) {
	s.mu.Lock()
	// Walk symbols in a fixed order so a seeded run is reproducible.
	symbols := make([]string, 0, len(s.current))
	for symbol := range s.current {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	ticks := make([]Tick, 0, len(symbols))
	for _, symbol := range symbols {
		move := (s.rng.Float64()*2 - 1) * s.cfg.Volatility
		next := s.current[symbol] * (1 + move)
		s.current[symbol] = next
		ticks = append(ticks, Tick{Symbol: symbol, Price: next, Time: now})
	}
	s.mu.Unlock()

	for _, t := range ticks {
		s.store.Set(t)
		if s.onTick != nil {
			s.onTick(t)
		}
	}
}
