package feed

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSetGet(t *testing.T) {
	t.Parallel()

	s := NewStore()
	tick := Tick{Symbol: "BTC/USDT", Price: 67245.50, Time: time.Now()}

	s.Set(tick)

	got, err := s.Get("BTC/USDT")
	assert.NoError(t, err)
	assert.Equal(t, tick, got)
}

func TestStoreGetMissing(t *testing.T) {
	t.Parallel()

	s := NewStore()

	got, err := s.Get("NO/SUCH")
	assert.Error(t, err)
	assert.Equal(t, Tick{}, got)
}

func TestSimulatorPublishesInitialMarks(t *testing.T) {
	t.Parallel()

	s := NewStore()
	NewSimulator(Config{
		Interval:   time.Second,
		Volatility: 0.004,
		Seed:       1,
		Initial:    map[string]float64{"BTC/USDT": 67245.50},
	}, s, nil)

	got, err := s.Get("BTC/USDT")
	require.NoError(t, err)
	assert.InDelta(t, 67245.50, got.Price, 1e-9)
}

func TestStepBoundsEachMove(t *testing.T) {
	t.Parallel()

	s := NewStore()
	var ticks []Tick
	sim := NewSimulator(Config{
		Interval:   time.Second,
		Volatility: 0.004,
		Seed:       42,
		Initial:    map[string]float64{"BTC/USDT": 67245.50, "ETH/USDT": 3421.80},
	}, s, func(t Tick) { ticks = append(ticks, t) })

	prev := map[string]float64{"BTC/USDT": 67245.50, "ETH/USDT": 3421.80}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		sim.Step(now.Add(time.Duration(i) * time.Second))
	}

	require.Len(t, ticks, 400)
	for _, tick := range ticks {
		assert.Greater(t, tick.Price, 0.0)
		move := math.Abs(tick.Price-prev[tick.Symbol]) / prev[tick.Symbol]
		assert.LessOrEqual(t, move, 0.004+1e-12, "tick for %s moved %.6f", tick.Symbol, move)
		prev[tick.Symbol] = tick.Price
	}
}

func TestSeededWalkIsReproducible(t *testing.T) {
	t.Parallel()

	walk := func() []float64 {
		s := NewStore()
		var prices []float64
		sim := NewSimulator(Config{
			Interval:   time.Second,
			Volatility: 0.01,
			Seed:       7,
			Initial:    map[string]float64{"BTC/USDT": 50000, "SOL/USDT": 150},
		}, s, func(t Tick) { prices = append(prices, t.Price) })

		now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 50; i++ {
			sim.Step(now.Add(time.Duration(i) * time.Second))
		}
		return prices
	}

	assert.Equal(t, walk(), walk())
}

func TestStartStopDeliversNoTickAfterStop(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	count := 0

	s := NewStore()
	sim := NewSimulator(Config{
		Interval:   5 * time.Millisecond,
		Volatility: 0.004,
		Seed:       1,
		Initial:    map[string]float64{"BTC/USDT": 67245.50},
	}, s, func(Tick) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	sim.Start()
	time.Sleep(30 * time.Millisecond)
	sim.Stop()

	mu.Lock()
	after := count
	mu.Unlock()

	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	final := count
	mu.Unlock()

	assert.Equal(t, after, final)

	// Stopping twice is a no-op.
	sim.Stop()
}
