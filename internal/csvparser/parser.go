// =============================================================================
// Adaos Calculator - CSV Report Parser
// =============================================================================
//
// Some installations of the source stock system export the goods-receipt
// report as CSV instead of XLSX. The column layout and header labels are the
// same, so decoding is a thin front over the shared rowmodel rules.
//
// =============================================================================

package csvparser

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/adaos-tools/adaoscalc/internal/rowmodel"
	"github.com/adaos-tools/adaoscalc/internal/types"
)

// Parse reads the purchase report at path using the given field delimiter
// (',' when zero) and returns the normalized rows plus ingestion stats.
func Parse(path string, delimiter rune) ([]types.PurchaseRow, types.IngestStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.IngestStats{}, fmt.Errorf("failed to open report file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if delimiter != 0 {
		reader.Comma = delimiter
	}
	// Report rows are ragged: trailing empty columns are often trimmed.
	reader.FieldsPerRecord = -1

	raw, err := reader.ReadAll()
	if err != nil {
		return nil, types.IngestStats{}, fmt.Errorf("failed to read CSV report: %w", err)
	}

	rows, stats := rowmodel.FromRows(raw)
	return rows, stats, nil
}
