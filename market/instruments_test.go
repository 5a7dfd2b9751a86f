package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	meta, ok := Lookup("BTC/USDT")
	assert.True(t, ok)
	assert.Equal(t, CategoryMajor, meta.Category)
	assert.Equal(t, 100, meta.MaxLeverage)

	_, ok = Lookup("NO/SUCH")
	assert.False(t, ok)
}

func TestLeverageCeilingsNarrowByCategory(t *testing.T) {
	t.Parallel()

	ceilings := map[Category]int{}
	for _, meta := range Instruments {
		if cur, ok := ceilings[meta.Category]; ok {
			assert.Equal(t, cur, meta.MaxLeverage, "ceiling inconsistent within %s", meta.Category)
			continue
		}
		ceilings[meta.Category] = meta.MaxLeverage
	}

	assert.Greater(t, ceilings[CategoryMajor], ceilings[CategoryAlt])
	assert.Greater(t, ceilings[CategoryAlt], ceilings[CategoryMeme])
}
