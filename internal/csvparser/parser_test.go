package csvparser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParse(t *testing.T) {
	path := writeReport(t, `Raport intrari
Cod extern,Denumire,Cantitate,Pret unitar,Valoare,Gestiune,Furnizor,Data intrare
100,Apa plata,5,10,50,Depozit,Aquila,2024-01-01
200,Bere,2,6,12,Depozit,Bergenbier
`)

	rows, stats, err := Parse(path, ',')
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 1, stats.WithDates)
	assert.Equal(t, []string{"Aquila", "Bergenbier"}, stats.Suppliers)

	require.Len(t, rows, 2)
	assert.Equal(t, "Apa plata", rows[0].Name)
	assert.Equal(t, 10.0, rows[0].UnitPrice)
}

func TestParse_SemicolonDelimiter(t *testing.T) {
	path := writeReport(t, `Cod extern;Denumire;Cantitate;Pret unitar;Valoare;Gestiune;Furnizor
100;Apa;1;2,5;2,5;Depozit;Aquila
`)

	rows, _, err := Parse(path, ';')
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// Locale comma decimals are tolerated.
	assert.Equal(t, 2.5, rows[0].UnitPrice)
}

func TestParse_MissingFile(t *testing.T) {
	_, _, err := Parse(filepath.Join(t.TempDir(), "absent.csv"), ',')
	assert.Error(t, err)
}
