// =============================================================================
// Adaos Calculator - Price Resolution
// =============================================================================
//
// This module selects the single "base price" of a product group out of its
// distinct observed prices, either through the configured strategy or through
// a manual per-product override.
//
// Price equality throughout resolution is two-decimal equality: values that
// differ only beyond the second decimal are the same price. The same rounding
// keys the display buckets, so a manual override selected from a bucket is
// guaranteed to match.
//
// =============================================================================

package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/adaos-tools/adaoscalc/internal/types"
)

// Strategy selects the base price when a product has several observed prices
// and no valid manual override.
type Strategy string

const (
	// StrategyMin picks the smallest distinct price.
	StrategyMin Strategy = "min"
	// StrategyMax picks the largest distinct price.
	StrategyMax Strategy = "max"
	// StrategyAvg picks the arithmetic mean of the distinct prices. The mean
	// is not quantity-weighted; it is a "typical price", not a cost figure.
	StrategyAvg Strategy = "avg"
	// StrategyLast picks the unit price of the most recent entry.
	StrategyLast Strategy = "last"
)

// ParseStrategy validates a strategy name from configuration or flags.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyMin, StrategyMax, StrategyAvg, StrategyLast:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown price strategy %q (want min, max, avg or last)", s)
}

// PriceKey formats a price with two decimals, the bucketing and equality key
// used across resolution, display and export.
func PriceKey(price float64) string {
	return decimal.NewFromFloat(price).Round(2).StringFixed(2)
}

// samePrice reports two-decimal equality.
func samePrice(a, b float64) bool {
	return decimal.NewFromFloat(a).Round(2).Equal(decimal.NewFromFloat(b).Round(2))
}

// ResolveBasePrice resolves a group's base price. A manual override wins
// unconditionally while it still matches one of the group's distinct prices;
// a stale override (price no longer observed) is silently ignored and the
// strategy applies instead. With no observed prices the base price is 0.
//
// The second return value reports whether the manual override was applied.
func ResolveBasePrice(g types.ProductGroup, strategy Strategy, manual *float64) (float64, bool) {
	if len(g.DistinctPrices) == 0 {
		return 0, false
	}

	if manual != nil {
		for _, p := range g.DistinctPrices {
			if samePrice(p, *manual) {
				return p, true
			}
		}
	}

	switch strategy {
	case StrategyMax:
		return g.DistinctPrices[len(g.DistinctPrices)-1], false
	case StrategyAvg:
		sum := decimal.Zero
		for _, p := range g.DistinctPrices {
			sum = sum.Add(decimal.NewFromFloat(p))
		}
		avg, _ := sum.Div(decimal.NewFromInt(int64(len(g.DistinctPrices)))).Float64()
		return avg, false
	case StrategyLast:
		return g.MostRecent.UnitPrice, false
	default:
		// min doubles as the fallback for an unset strategy.
		return g.DistinctPrices[0], false
	}
}
