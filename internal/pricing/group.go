// =============================================================================
// Adaos Calculator - Grouping Engine
// =============================================================================
//
// This module partitions the flat purchase-row set into per-product groups.
// Grouping is keyed by external code, falling back to the product name for
// code-less rows. Rows from suppliers outside the active set are excluded
// entirely: they contribute to no aggregate, not merely hidden.
//
// All aggregates are computed in one pass and are independent of input row
// order, except for the RowID tie-break on the most-recent entry.
//
// =============================================================================

package pricing

import (
	"sort"

	"github.com/adaos-tools/adaoscalc/internal/types"
)

// Group partitions rows into per-product groups restricted to the active
// supplier set. The result is sorted by group ID so that identical inputs
// always produce identical output, independent of row order.
func Group(rows []types.PurchaseRow, activeSuppliers map[string]struct{}) []types.ProductGroup {
	byKey := make(map[string][]types.PurchaseRow)
	for _, row := range rows {
		if _, ok := activeSuppliers[row.Supplier]; !ok {
			continue
		}
		key := row.Key()
		byKey[key] = append(byKey[key], row)
	}

	groups := make([]types.ProductGroup, 0, len(byKey))
	for key, entries := range byKey {
		groups = append(groups, buildGroup(key, entries))
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })
	return groups
}

// buildGroup computes every aggregate of one product group in a single pass
// over its entries.
func buildGroup(key string, entries []types.PurchaseRow) types.ProductGroup {
	g := types.ProductGroup{
		ID:           key,
		ExternalCode: entries[0].ExternalCode,
		Name:         entries[0].Name,
		Entries:      entries,
	}

	distinct := make(map[float64]struct{})
	supplierSet := make(map[string]struct{})
	bucketByKey := make(map[string]int)

	for _, e := range entries {
		g.TotalQuantity += e.Quantity
		g.TotalValue += e.TotalValue
		supplierSet[e.Supplier] = struct{}{}

		if e.UnitPrice > 0 {
			distinct[e.UnitPrice] = struct{}{}
		}

		bk := PriceKey(e.UnitPrice)
		idx, ok := bucketByKey[bk]
		if !ok {
			idx = len(g.Buckets)
			bucketByKey[bk] = idx
			g.Buckets = append(g.Buckets, types.PriceBucket{Key: bk, Price: e.UnitPrice})
		}
		b := &g.Buckets[idx]
		b.Entries = append(b.Entries, e)
		if e.ReceiptDate != nil && (b.MostRecent == nil || e.ReceiptDate.After(*b.MostRecent)) {
			b.MostRecent = e.ReceiptDate
		}
	}

	for p := range distinct {
		g.DistinctPrices = append(g.DistinctPrices, p)
	}
	sort.Float64s(g.DistinctPrices)

	for s := range supplierSet {
		g.Suppliers = append(g.Suppliers, s)
	}
	sort.Strings(g.Suppliers)

	sort.Slice(g.Buckets, func(i, j int) bool { return g.Buckets[i].Price < g.Buckets[j].Price })

	g.MostRecent = mostRecentEntry(entries)
	return g
}

// mostRecentEntry picks the representative "last" entry of a group:
//  1. entries with a receipt date beat undated ones,
//  2. among dated entries the latest date wins,
//  3. with no dated entries the highest RowID wins (arrival order).
func mostRecentEntry(entries []types.PurchaseRow) types.PurchaseRow {
	var dated *types.PurchaseRow
	for i := range entries {
		e := &entries[i]
		if e.ReceiptDate == nil {
			continue
		}
		if dated == nil || e.ReceiptDate.After(*dated.ReceiptDate) {
			dated = e
		}
	}
	if dated != nil {
		return *dated
	}

	last := entries[0]
	for _, e := range entries[1:] {
		if e.RowID > last.RowID {
			last = e
		}
	}
	return last
}
