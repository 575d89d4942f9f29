package xlsxparser

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeReport builds a minimal goods-receipt workbook on disk.
func writeReport(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParse(t *testing.T) {
	path := writeReport(t, [][]interface{}{
		{"Raport intrari"},
		{"Cod extern", "Denumire", "Cantitate", "Pret unitar", "Valoare", "Gestiune", "Furnizor", "Data intrare"},
		{"100", "Apa plata", 5, 10, 50, "Depozit", "Aquila", "2024-01-01"},
		{"100", "Apa plata", 3, 12, 36, "Depozit", "Bergenbier", "2024-02-01"},
		{"", "", "", ""},
		{"200", "Bere", 2, 6, 12, "Depozit", "Bergenbier"},
	})

	rows, stats, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 2, stats.WithDates)
	assert.Equal(t, []string{"Aquila", "Bergenbier"}, stats.Suppliers)

	require.Len(t, rows, 3)
	assert.Equal(t, "100", rows[0].ExternalCode)
	assert.Equal(t, 5.0, rows[0].Quantity)
	assert.Equal(t, 10.0, rows[0].UnitPrice)
	require.NotNil(t, rows[0].ReceiptDate)
	assert.Nil(t, rows[2].ReceiptDate)
}

func TestParse_MissingFile(t *testing.T) {
	_, _, err := Parse(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}
