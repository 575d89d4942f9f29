// =============================================================================
// Adaos Calculator - Export Workbook Writer
// =============================================================================
//
// This module writes the projected records into the Nexus import workbook:
// a single sheet whose first row carries the import field names, one record
// per following row. The output filename embeds the export date.
//
// =============================================================================

package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/adaos-tools/adaoscalc/internal/types"
)

// sheetName is the sheet the Nexus importer reads.
const sheetName = "Sheet1"

// header lists the import field names in the order the importer expects.
var header = []interface{}{
	"puv", "puv_tva", "denpr", "um", "cod_ext", "nume_clasa", "cod_selectie", "pu_furn",
}

// Filename builds the dated export file name, e.g. "definit_text_05.03.2026.xlsx".
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("02.01.2006"))
}

// Generate builds the export workbook in memory.
func Generate(records []types.ExportRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, r := range records {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{r.Puv, r.PuvTva, r.Denpr, r.Um, r.CodExt, r.NumeClasa, r.CodSelectie, r.PuFurn}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}

	return f, nil
}

// Write generates the workbook and saves it at path.
func Write(records []types.ExportRecord, path string) error {
	f, err := Generate(records)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save export file: %w", err)
	}
	return nil
}
