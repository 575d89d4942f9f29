// =============================================================================
// Adaos Calculator - Markup / Derivation Engine
// =============================================================================

package pricing

// TaxRate is the VAT rate applied to the sale price. It is a configuration
// constant of the target market, not a per-product input.
const TaxRate = 0.21

// EffectiveMarkup returns the markup percent to apply to a product: the
// per-product override when one is present, the global markup otherwise.
// Override presence, not value, is the switch — removing the entry reverts
// the product to the global markup, including after later global changes.
func EffectiveMarkup(id string, global float64, overrides map[string]float64) (float64, bool) {
	if pct, ok := overrides[id]; ok {
		return pct, true
	}
	return global, false
}

// Derive computes the sale price and tax-inclusive sale price from a base
// price and a markup percent. No rounding is applied here: rounding to two
// decimals happens once, at display/export time, so repeated recomputation
// never compounds rounding error.
func Derive(basePrice, markupPercent float64) (salePrice, salePriceWithTax float64) {
	salePrice = basePrice * (1 + markupPercent/100)
	salePriceWithTax = salePrice * (1 + TaxRate)
	return salePrice, salePriceWithTax
}
