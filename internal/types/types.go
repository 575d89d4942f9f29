// =============================================================================
// Adaos Calculator - Shared Types
// =============================================================================
//
// This package contains the domain types shared across the pipeline to avoid
// import cycles. Types defined here are used by:
//   - xlsxparser / csvparser (producing PurchaseRow)
//   - pricing (ProductGroup, ResolvedProduct)
//   - export (ExportRecord)
//
// =============================================================================

package types

import "time"

// PurchaseRow is one goods-receipt line, normalized from a decoded report row.
// Rows are immutable once created; the whole set is replaced on re-ingestion.
type PurchaseRow struct {
	// RowID is the source row index, used only as a last-resort tie-break
	// when no row of a product carries a receipt date.
	RowID int

	// ExternalCode is the product code from the source system. May be empty.
	ExternalCode string

	// Name is the product name. Rows without a name are dropped upstream.
	Name string

	// Quantity and UnitPrice default to 0 when the cell is unparsable.
	Quantity  float64
	UnitPrice float64

	// TotalValue is the receipt line value, 0 when unparsable.
	TotalValue float64

	// Supplier is the supplier name, or the "Necunoscut" sentinel when absent.
	Supplier string

	// ReceiptDate is nil when the source cell was empty or unparsable.
	ReceiptDate *time.Time
}

// Key returns the grouping key for the row: the external code when present,
// the name otherwise. Two code-less products sharing a name intentionally
// collapse into one group.
func (r PurchaseRow) Key() string {
	if r.ExternalCode != "" {
		return r.ExternalCode
	}
	return r.Name
}

// PriceBucket groups a product's entries by unit price rounded to two
// decimals. Each bucket remembers the most recent receipt date it has seen.
type PriceBucket struct {
	// Key is the bucket's price formatted with two decimals, e.g. "12.50".
	Key string

	// Price is the representative (first observed) unit price of the bucket.
	Price float64

	// Entries are the contributing rows, in arrival order.
	Entries []PurchaseRow

	// MostRecent is the latest receipt date among the bucket's entries,
	// nil when none of them carries a date.
	MostRecent *time.Time
}

// ProductGroup is the per-product aggregate over all contributing rows for a
// given active-supplier set. Groups are pure projections: they are recomputed
// from scratch on every input change and never mutated in place.
type ProductGroup struct {
	// ID mirrors the grouping key (external code or name fallback) so that
	// export selection stays consistent with grouping.
	ID string

	ExternalCode string
	Name         string

	// Entries are the contributing rows, restricted to active suppliers.
	Entries []PurchaseRow

	// DistinctPrices holds the unique positive unit prices, ascending.
	DistinctPrices []float64

	TotalQuantity float64
	TotalValue    float64

	// Suppliers are the distinct supplier names represented, sorted.
	Suppliers []string

	// MostRecent is the entry with the latest receipt date; when no entry has
	// a date it is the entry with the highest RowID.
	MostRecent PurchaseRow

	// Buckets are the per-price groupings, ascending by price.
	Buckets []PriceBucket
}

// ResolvedProduct is a ProductGroup with the pricing settings applied.
type ResolvedProduct struct {
	ProductGroup

	// BasePrice is the resolved purchase price: a member of DistinctPrices
	// when that set is non-empty, 0 otherwise.
	BasePrice float64

	// EffectiveMarkup is the per-product override when present, the global
	// markup otherwise, in percent.
	EffectiveMarkup float64

	// SalePrice and SalePriceWithTax are unrounded; rounding happens only at
	// display/export time.
	SalePrice        float64
	SalePriceWithTax float64

	HasManualPrice  bool
	HasCustomMarkup bool
}

// ExportRecord is the Nexus bulk-upload row shape. Prices are rounded to two
// decimals at projection time.
type ExportRecord struct {
	Puv         float64 // sale price
	PuvTva      float64 // sale price with tax
	Denpr       string  // product name
	Um          string  // unit of measure, not tracked, always empty
	CodExt      string  // external code
	NumeClasa   string  // always empty
	CodSelectie string  // always empty
	PuFurn      float64 // base/purchase price
}

// IngestStats describes one decoded report.
type IngestStats struct {
	// Entries is the number of rows kept (rows with a product name).
	Entries int

	// WithDates is how many kept rows carry a usable receipt date.
	WithDates int

	// Suppliers is the sorted distinct supplier universe of the file.
	Suppliers []string
}
