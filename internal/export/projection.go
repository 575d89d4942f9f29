// =============================================================================
// Adaos Calculator - Export Projection
// =============================================================================
//
// This module projects resolved products into the Nexus bulk-upload record
// shape. An empty explicit selection means "export everything visible", not
// "export nothing"; a non-empty selection exports exactly those ids,
// independent of display order.
//
// Prices are rounded to two decimals here, with the same rounding used for
// on-screen formatting, so exported figures never diverge from what was
// reviewed.
//
// =============================================================================

package export

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/adaos-tools/adaoscalc/internal/types"
)

// ErrNothingToExport is returned when no product is eligible for export.
// This is the one ingestion/export condition surfaced to the user: a silent
// empty export would be mistaken for success.
var ErrNothingToExport = errors.New("no products selected for export")

// Project filters products by the explicit selection and converts them to
// export records.
func Project(products []types.ResolvedProduct, selection map[string]struct{}) ([]types.ExportRecord, error) {
	records := make([]types.ExportRecord, 0, len(products))
	for _, p := range products {
		if len(selection) > 0 {
			if _, ok := selection[p.ID]; !ok {
				continue
			}
		}
		records = append(records, types.ExportRecord{
			Puv:    Round2(p.SalePrice),
			PuvTva: Round2(p.SalePriceWithTax),
			Denpr:  p.Name,
			CodExt: p.ExternalCode,
			PuFurn: Round2(p.BasePrice),
		})
	}

	if len(records) == 0 {
		return nil, ErrNothingToExport
	}
	return records, nil
}

// Round2 rounds half-up to two decimals, matching display formatting.
func Round2(v float64) float64 {
	r, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return r
}
