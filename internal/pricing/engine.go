// =============================================================================
// Adaos Calculator - Resolution Engine
// =============================================================================
//
// This module ties the pipeline stages together: grouping, search filtering,
// base-price resolution and markup derivation. The engine holds no state of
// its own — Resolve is a pure function of the row set and the settings, and
// is recomputed in full whenever either changes. Identical inputs always
// yield identical output, independent of prior computation history.
//
// =============================================================================

package pricing

import (
	"strings"

	"github.com/adaos-tools/adaoscalc/internal/types"
)

// Settings is the caller-adjustable surface of the engine.
type Settings struct {
	// ActiveSuppliers restricts grouping to these suppliers. Rows from other
	// suppliers contribute to nothing downstream.
	ActiveSuppliers map[string]struct{}

	// Strategy picks the base price for multi-price products.
	Strategy Strategy

	// GlobalMarkup is the default markup percent.
	GlobalMarkup float64

	// ItemMarkups overrides the global markup per product id.
	ItemMarkups map[string]float64

	// ManualPrices pins a product's base price while the value still matches
	// one of its observed prices.
	ManualPrices map[string]float64

	// Search is a case-insensitive substring filter over name and code.
	// Empty means no filtering.
	Search string
}

// Resolve runs the full derivation for the given rows and settings and
// returns the resolved products, sorted by id.
func Resolve(rows []types.PurchaseRow, s Settings) []types.ResolvedProduct {
	groups := Group(rows, s.ActiveSuppliers)

	products := make([]types.ResolvedProduct, 0, len(groups))
	for _, g := range groups {
		if !matchesSearch(g, s.Search) {
			continue
		}

		var manual *float64
		if v, ok := s.ManualPrices[g.ID]; ok {
			manual = &v
		}
		base, hasManual := ResolveBasePrice(g, s.Strategy, manual)
		markup, hasCustom := EffectiveMarkup(g.ID, s.GlobalMarkup, s.ItemMarkups)
		sale, saleTax := Derive(base, markup)

		products = append(products, types.ResolvedProduct{
			ProductGroup:     g,
			BasePrice:        base,
			EffectiveMarkup:  markup,
			SalePrice:        sale,
			SalePriceWithTax: saleTax,
			HasManualPrice:   hasManual,
			HasCustomMarkup:  hasCustom,
		})
	}
	return products
}

// matchesSearch applies the free-text filter over name and external code.
func matchesSearch(g types.ProductGroup, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(g.Name), term) ||
		strings.Contains(strings.ToLower(g.ExternalCode), term)
}

// Stats summarizes a resolved product set for the inspect output.
type Stats struct {
	Total        int
	MultiPrice   int
	CustomMarkup int
	ManualPrices int
	WithDates    int
}

// ComputeStats counts the figures shown in the review summary.
func ComputeStats(products []types.ResolvedProduct) Stats {
	st := Stats{Total: len(products)}
	for _, p := range products {
		if len(p.DistinctPrices) > 1 {
			st.MultiPrice++
		}
		if p.HasCustomMarkup {
			st.CustomMarkup++
		}
		if p.HasManualPrice {
			st.ManualPrices++
		}
		if p.MostRecent.ReceiptDate != nil {
			st.WithDates++
		}
	}
	return st
}
