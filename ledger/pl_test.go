package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnrealizedPL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		position Position
		mark     float64
		expected float64
	}{
		{
			name: "long_profit",
			position: Position{
				Direction:  Long,
				EntryPrice: 67245.50,
				Margin:     100,
				Leverage:   100,
			},
			mark:     67245.50 * 1.01,
			expected: 1000.0,
		},
		{
			name: "long_loss",
			position: Position{
				Direction:  Long,
				EntryPrice: 67245.50,
				Margin:     100,
				Leverage:   100,
			},
			mark:     67245.50 * 0.99,
			expected: -1000.0,
		},
		{
			name: "short_profit",
			position: Position{
				Direction:  Short,
				EntryPrice: 3400.00,
				Margin:     250,
				Leverage:   20,
			},
			mark:     3366.00,
			expected: 50.0,
		},
		{
			name: "short_loss",
			position: Position{
				Direction:  Short,
				EntryPrice: 3400.00,
				Margin:     250,
				Leverage:   20,
			},
			mark:     3434.00,
			expected: -50.0,
		},
		{
			name: "unchanged_mark",
			position: Position{
				Direction:  Long,
				EntryPrice: 0.1543,
				Margin:     75,
				Leverage:   10,
			},
			mark:     0.1543,
			expected: 0.0,
		},
		{
			name: "leverage_one",
			position: Position{
				Direction:  Long,
				EntryPrice: 100.0,
				Margin:     500,
				Leverage:   1,
			},
			mark:     110.0,
			expected: 50.0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := UnrealizedPL(tt.position, tt.mark)
			assert.InDelta(t, tt.expected, got, 1e-6)
		})
	}
}

func TestNotional(t *testing.T) {
	t.Parallel()

	p := Position{Margin: 100, Leverage: 100}
	assert.InDelta(t, 10000.0, p.Notional(), 1e-9)
}

// The short formula must be the sign-flipped mirror of the long one at
// any mark.
func TestShortMirrorsLong(t *testing.T) {
	t.Parallel()

	long := Position{Direction: Long, EntryPrice: 250.0, Margin: 40, Leverage: 50}
	short := long
	short.Direction = Short

	for _, mark := range []float64{200, 249.99, 250, 250.01, 300} {
		assert.InDelta(t, UnrealizedPL(long, mark), -UnrealizedPL(short, mark), 1e-9)
	}
}
