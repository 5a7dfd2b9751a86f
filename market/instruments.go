// market/instruments.go
package market

// Category groups instruments by volatility class. Volatile classes get a
// narrower leverage ceiling.
type Category string

const (
	CategoryMajor Category = "major"
	CategoryAlt   Category = "alt"
	CategoryMeme  Category = "meme"
)

type InstrumentMeta struct {
	Name           string
	BaseCurrency   string
	QuoteCurrency  string
	Category       Category
	MaxLeverage    int
	PricePrecision int
	MinimumMargin  float64
}

var Instruments = map[string]InstrumentMeta{
	"BTC/USDT": {
		Name:           "BTC/USDT",
		BaseCurrency:   "BTC",
		QuoteCurrency:  "USDT",
		Category:       CategoryMajor,
		MaxLeverage:    100,
		PricePrecision: 2,
		MinimumMargin:  1,
	},
	"ETH/USDT": {
		Name:           "ETH/USDT",
		BaseCurrency:   "ETH",
		QuoteCurrency:  "USDT",
		Category:       CategoryMajor,
		MaxLeverage:    100,
		PricePrecision: 2,
		MinimumMargin:  1,
	},
	"SOL/USDT": {
		Name:           "SOL/USDT",
		BaseCurrency:   "SOL",
		QuoteCurrency:  "USDT",
		Category:       CategoryAlt,
		MaxLeverage:    50,
		PricePrecision: 3,
		MinimumMargin:  1,
	},
	"XRP/USDT": {
		Name:           "XRP/USDT",
		BaseCurrency:   "XRP",
		QuoteCurrency:  "USDT",
		Category:       CategoryAlt,
		MaxLeverage:    50,
		PricePrecision: 4,
		MinimumMargin:  1,
	},
	"DOGE/USDT": {
		Name:           "DOGE/USDT",
		BaseCurrency:   "DOGE",
		QuoteCurrency:  "USDT",
		Category:       CategoryMeme,
		MaxLeverage:    20,
		PricePrecision: 5,
		MinimumMargin:  1,
	},
	"PEPE/USDT": {
		Name:           "PEPE/USDT",
		BaseCurrency:   "PEPE",
		QuoteCurrency:  "USDT",
		Category:       CategoryMeme,
		MaxLeverage:    20,
		PricePrecision: 8,
		MinimumMargin:  1,
	},
}

// Lookup returns instrument metadata for a symbol.
func Lookup(symbol string) (InstrumentMeta, bool) {
	meta, ok := Instruments[symbol]
	return meta, ok
}
