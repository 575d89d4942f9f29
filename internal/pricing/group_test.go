package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaos-tools/adaoscalc/internal/types"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func activeSet(suppliers ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(suppliers))
	for _, s := range suppliers {
		set[s] = struct{}{}
	}
	return set
}

func TestGroup_AggregatesSingleProduct(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 1, ExternalCode: "A", Name: "Apa plata", Quantity: 5, UnitPrice: 10, TotalValue: 50, Supplier: "X", ReceiptDate: date(2024, 1, 1)},
		{RowID: 2, ExternalCode: "A", Name: "Apa plata", Quantity: 3, UnitPrice: 12, TotalValue: 36, Supplier: "Y", ReceiptDate: date(2024, 2, 1)},
	}

	groups := Group(rows, activeSet("X", "Y"))
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "A", g.ID)
	assert.Equal(t, []float64{10, 12}, g.DistinctPrices)
	assert.Equal(t, 8.0, g.TotalQuantity)
	assert.Equal(t, 86.0, g.TotalValue)
	assert.Equal(t, []string{"X", "Y"}, g.Suppliers)
	assert.Equal(t, 2, g.MostRecent.RowID)
}

func TestGroup_OrderIndependent(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 1, ExternalCode: "A", Name: "Apa", Quantity: 5, UnitPrice: 10, TotalValue: 50, Supplier: "X", ReceiptDate: date(2024, 1, 1)},
		{RowID: 2, ExternalCode: "B", Name: "Bere", Quantity: 1, UnitPrice: 7, TotalValue: 7, Supplier: "X"},
		{RowID: 3, ExternalCode: "A", Name: "Apa", Quantity: 3, UnitPrice: 12, TotalValue: 36, Supplier: "Y", ReceiptDate: date(2024, 2, 1)},
	}
	reversed := []types.PurchaseRow{rows[2], rows[1], rows[0]}

	a := Group(rows, activeSet("X", "Y"))
	b := Group(reversed, activeSet("X", "Y"))
	require.Len(t, a, 2)
	require.Len(t, b, 2)

	for i := range a {
		assert.Equal(t, a[i].ID, b[i].ID)
		assert.Equal(t, a[i].DistinctPrices, b[i].DistinctPrices)
		assert.Equal(t, a[i].TotalQuantity, b[i].TotalQuantity)
		assert.Equal(t, a[i].TotalValue, b[i].TotalValue)
		assert.Equal(t, a[i].Suppliers, b[i].Suppliers)
		assert.Equal(t, a[i].MostRecent.RowID, b[i].MostRecent.RowID)
	}
}

func TestGroup_ExcludesInactiveSuppliers(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 1, ExternalCode: "A", Name: "Apa", Quantity: 5, UnitPrice: 10, TotalValue: 50, Supplier: "X"},
		{RowID: 2, ExternalCode: "A", Name: "Apa", Quantity: 3, UnitPrice: 12, TotalValue: 36, Supplier: "Y"},
	}

	groups := Group(rows, activeSet("X"))
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, []float64{10}, g.DistinctPrices)
	assert.Equal(t, 5.0, g.TotalQuantity)
	assert.Equal(t, 50.0, g.TotalValue)
	assert.Equal(t, []string{"X"}, g.Suppliers)
}

func TestGroup_EmptyActiveSetYieldsNoGroups(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 1, ExternalCode: "A", Name: "Apa", UnitPrice: 10, Supplier: "X"},
	}
	assert.Empty(t, Group(rows, nil))
}

func TestGroup_NameFallbackMergesCodelessRows(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 1, Name: "Widget", Quantity: 1, UnitPrice: 4, Supplier: "X"},
		{RowID: 2, Name: "Widget", Quantity: 2, UnitPrice: 5, Supplier: "Y"},
	}

	groups := Group(rows, activeSet("X", "Y"))
	require.Len(t, groups, 1)
	assert.Equal(t, "Widget", groups[0].ID)
	assert.Equal(t, 3.0, groups[0].TotalQuantity)
}

func TestGroup_MostRecentPrefersDatedEntries(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 9, ExternalCode: "A", Name: "Apa", UnitPrice: 10, Supplier: "X"},
		{RowID: 1, ExternalCode: "A", Name: "Apa", UnitPrice: 12, Supplier: "X", ReceiptDate: date(2023, 6, 1)},
	}

	groups := Group(rows, activeSet("X"))
	require.Len(t, groups, 1)
	// The dated entry wins even though the undated one arrived later.
	assert.Equal(t, 1, groups[0].MostRecent.RowID)
}

func TestGroup_MostRecentFallsBackToRowID(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 4, ExternalCode: "A", Name: "Apa", UnitPrice: 10, Supplier: "X"},
		{RowID: 7, ExternalCode: "A", Name: "Apa", UnitPrice: 12, Supplier: "X"},
		{RowID: 2, ExternalCode: "A", Name: "Apa", UnitPrice: 11, Supplier: "X"},
	}

	groups := Group(rows, activeSet("X"))
	require.Len(t, groups, 1)
	assert.Equal(t, 7, groups[0].MostRecent.RowID)
}

func TestGroup_BucketsByRoundedPrice(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 1, ExternalCode: "A", Name: "Apa", UnitPrice: 10.001, Supplier: "X", ReceiptDate: date(2024, 1, 10)},
		{RowID: 2, ExternalCode: "A", Name: "Apa", UnitPrice: 10.004, Supplier: "Y", ReceiptDate: date(2024, 3, 1)},
		{RowID: 3, ExternalCode: "A", Name: "Apa", UnitPrice: 12.5, Supplier: "X"},
	}

	groups := Group(rows, activeSet("X", "Y"))
	require.Len(t, groups, 1)

	g := groups[0]
	require.Len(t, g.Buckets, 2)
	assert.Equal(t, "10.00", g.Buckets[0].Key)
	assert.Len(t, g.Buckets[0].Entries, 2)
	require.NotNil(t, g.Buckets[0].MostRecent)
	assert.Equal(t, *date(2024, 3, 1), *g.Buckets[0].MostRecent)
	assert.Equal(t, "12.50", g.Buckets[1].Key)
	assert.Nil(t, g.Buckets[1].MostRecent)
}

func TestGroup_DistinctPricesExcludeNonPositive(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 1, ExternalCode: "A", Name: "Apa", UnitPrice: 0, Supplier: "X"},
		{RowID: 2, ExternalCode: "A", Name: "Apa", UnitPrice: 10, Supplier: "X"},
	}

	groups := Group(rows, activeSet("X"))
	require.Len(t, groups, 1)
	assert.Equal(t, []float64{10}, groups[0].DistinctPrices)
}
