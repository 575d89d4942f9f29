// =============================================================================
// Adaos Calculator - XLSX Report Parser
// =============================================================================
//
// This module decodes the goods-receipt report workbook exported by the
// source stock system. Only the first sheet is read; header detection and
// row normalization are delegated to the rowmodel package so the CSV parser
// shares the exact same rules.
//
// A decode failure (unreadable or corrupt workbook) is surfaced to the caller
// with the underlying cause; the current row set is never partially replaced.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/adaos-tools/adaoscalc/internal/rowmodel"
	"github.com/adaos-tools/adaoscalc/internal/types"
)

// Parse reads the purchase report at path and returns the normalized rows
// plus ingestion stats.
func Parse(path string) ([]types.PurchaseRow, types.IngestStats, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, types.IngestStats{}, fmt.Errorf("failed to open report file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, types.IngestStats{}, fmt.Errorf("report %s has no sheets", path)
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, types.IngestStats{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	rows, stats := rowmodel.FromRows(raw)
	return rows, stats, nil
}
