// =============================================================================
// Adaos Calculator - Row Model
// =============================================================================
//
// This module turns raw decoded report rows (slices of cell strings) into
// normalized PurchaseRow values. It owns header-row detection, column
// identification and the silent-degradation parsing rules:
//
//   - a row without a product name is skipped, never an error;
//   - unparsable numeric cells become 0;
//   - unparsable date cells become "no date".
//
// These defaults are a deliberate policy: real goods-receipt exports carry
// sparse and dirty cells, and upgrading them to errors would break ingestion.
//
// Header labels are matched by substring in the source-report language. A
// changed export convention degrades to "column absent" (index -1), it does
// not fail; the engine tolerates any subset of columns being missing.
//
// =============================================================================

package rowmodel

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/adaos-tools/adaoscalc/internal/types"
)

// UnknownSupplier is the sentinel for rows without a supplier cell.
const UnknownSupplier = "Necunoscut"

// headerScanDepth is how many leading rows are searched for the header row.
const headerScanDepth = 20

// serialEpoch is day 0 of the spreadsheet serial-date convention.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are the free-text date shapes seen in the source reports and in
// excelize's formatted output.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"01-02-06",
	"01-02-06 15:04",
}

// Columns holds the resolved index of each named report column.
// An index of -1 means the column is absent and the field stays empty.
type Columns struct {
	ExternalCode int
	Name         int
	Quantity     int
	UnitPrice    int
	TotalValue   int
	Management   int
	Supplier     int
	ReceiptDate  int
}

// DetectHeader locates the header row within the first rows of the report by
// searching for the external-code label. When no row matches, row 0 is
// assumed and column detection degrades to "absent".
func DetectHeader(rows [][]string) int {
	limit := len(rows)
	if limit > headerScanDepth {
		limit = headerScanDepth
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if strings.Contains(cell, "Cod extern") {
				return i
			}
		}
	}
	return 0
}

// FindColumns maps the header row to column indexes by substring match.
//
// The receipt-date column is matched case-insensitively against two known
// labels; when neither matches and the external-code column sits at index 0
// on a wide enough sheet, column 18 is used. That fixed fallback mirrors the
// layout of the source system's stock report.
func FindColumns(header []string) Columns {
	cols := Columns{
		ExternalCode: findByLabel(header, "Cod extern"),
		Name:         findByLabel(header, "Denumire"),
		Quantity:     findByLabel(header, "Cantitate"),
		UnitPrice:    findByLabel(header, "Pret unitar"),
		TotalValue:   findByLabel(header, "Valoare"),
		Management:   findByLabel(header, "Gestiune"),
		Supplier:     findByLabel(header, "Furnizor"),
		ReceiptDate:  -1,
	}

	for i, h := range header {
		l := strings.ToLower(h)
		if strings.Contains(l, "ultima data") || strings.Contains(l, "data intrare") {
			cols.ReceiptDate = i
			break
		}
	}
	if cols.ReceiptDate == -1 && cols.ExternalCode == 0 && len(header) > 18 {
		cols.ReceiptDate = 18
	}

	return cols
}

func findByLabel(header []string, label string) int {
	for i, h := range header {
		if strings.Contains(h, label) {
			return i
		}
	}
	return -1
}

// FromRows converts a fully decoded report into purchase rows plus ingestion
// stats. The raw matrix includes the header region; data starts on the row
// after the detected header.
func FromRows(raw [][]string) ([]types.PurchaseRow, types.IngestStats) {
	headerRow := DetectHeader(raw)
	var cols Columns
	if headerRow < len(raw) {
		cols = FindColumns(raw[headerRow])
	}

	var parsed []types.PurchaseRow
	supplierSet := make(map[string]struct{})
	withDates := 0

	for i := headerRow + 1; i < len(raw); i++ {
		row, ok := MapRow(raw[i], cols, i)
		if !ok {
			continue
		}
		supplierSet[row.Supplier] = struct{}{}
		if row.ReceiptDate != nil {
			withDates++
		}
		parsed = append(parsed, row)
	}

	stats := types.IngestStats{
		Entries:   len(parsed),
		WithDates: withDates,
		Suppliers: sortedKeys(supplierSet),
	}
	return parsed, stats
}

// MapRow normalizes one data row. The boolean is false when the row carries
// no product name and must be skipped.
func MapRow(cells []string, cols Columns, rowID int) (types.PurchaseRow, bool) {
	name := strings.TrimSpace(cellAt(cells, cols.Name))
	if name == "" {
		return types.PurchaseRow{}, false
	}

	supplier := strings.TrimSpace(cellAt(cells, cols.Supplier))
	if supplier == "" {
		supplier = UnknownSupplier
	}

	return types.PurchaseRow{
		RowID:        rowID,
		ExternalCode: strings.TrimSpace(cellAt(cells, cols.ExternalCode)),
		Name:         name,
		Quantity:     parseNumber(cellAt(cells, cols.Quantity)),
		UnitPrice:    parseNumber(cellAt(cells, cols.UnitPrice)),
		TotalValue:   parseNumber(cellAt(cells, cols.TotalValue)),
		Supplier:     supplier,
		ReceiptDate:  ParseDate(cellAt(cells, cols.ReceiptDate)),
	}, true
}

// cellAt returns the cell at idx, or "" when the column is absent or the row
// is shorter than the header.
func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// parseNumber coerces a cell to a number, 0 when unparsable. A comma decimal
// separator is tolerated since some exports are locale-formatted.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64); err == nil {
		return v
	}
	return 0
}

// ParseDate accepts the three date shapes the reports contain: a positive
// spreadsheet serial number (days since the 1899-12-30 epoch), a formatted
// date string, or nothing. Anything unparsable yields nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 {
			return nil
		}
		t := serialEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
		return &t
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
