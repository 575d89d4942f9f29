package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adaos-tools/adaoscalc/internal/types"
)

func TestEffectiveMarkup_OverridePresenceIsTheSwitch(t *testing.T) {
	overrides := map[string]float64{"A": 35}

	pct, custom := EffectiveMarkup("A", 20, overrides)
	assert.True(t, custom)
	assert.Equal(t, 35.0, pct)

	// Clearing the override reverts to global, including after the global
	// markup subsequently changes.
	delete(overrides, "A")
	pct, custom = EffectiveMarkup("A", 25, overrides)
	assert.False(t, custom)
	assert.Equal(t, 25.0, pct)

	// A zero-valued override is still an override.
	overrides["A"] = 0
	pct, custom = EffectiveMarkup("A", 25, overrides)
	assert.True(t, custom)
	assert.Equal(t, 0.0, pct)
}

func TestDerive(t *testing.T) {
	sale, saleTax := Derive(12, 20)
	assert.InDelta(t, 14.4, sale, 1e-9)
	assert.InDelta(t, 17.424, saleTax, 1e-9)

	sale, saleTax = Derive(0, 20)
	assert.Equal(t, 0.0, sale)
	assert.Equal(t, 0.0, saleTax)
}

func TestResolve_ScenarioLastStrategy(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 1, ExternalCode: "A", Name: "Apa", Quantity: 5, UnitPrice: 10, TotalValue: 50, Supplier: "X", ReceiptDate: date(2024, 1, 1)},
		{RowID: 2, ExternalCode: "A", Name: "Apa", Quantity: 3, UnitPrice: 12, TotalValue: 36, Supplier: "Y", ReceiptDate: date(2024, 2, 1)},
	}

	products := Resolve(rows, Settings{
		ActiveSuppliers: activeSet("X", "Y"),
		Strategy:        StrategyLast,
		GlobalMarkup:    20,
	})
	require.Len(t, products, 1)

	p := products[0]
	assert.Equal(t, 12.0, p.BasePrice)
	assert.InDelta(t, 14.4, p.SalePrice, 1e-9)
	assert.InDelta(t, 17.424, p.SalePriceWithTax, 1e-9)
	assert.False(t, p.HasManualPrice)
	assert.False(t, p.HasCustomMarkup)
}

func TestResolve_SearchFiltersByNameAndCode(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 1, ExternalCode: "100", Name: "Apa plata", UnitPrice: 5, Supplier: "X"},
		{RowID: 2, ExternalCode: "200", Name: "Bere blonda", UnitPrice: 6, Supplier: "X"},
	}
	settings := Settings{ActiveSuppliers: activeSet("X"), Strategy: StrategyMin, GlobalMarkup: 20}

	settings.Search = "PLATA"
	products := Resolve(rows, settings)
	require.Len(t, products, 1)
	assert.Equal(t, "100", products[0].ID)

	settings.Search = "20"
	products = Resolve(rows, settings)
	require.Len(t, products, 1)
	assert.Equal(t, "200", products[0].ID)

	settings.Search = ""
	assert.Len(t, Resolve(rows, settings), 2)
}

func TestResolve_Deterministic(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 1, ExternalCode: "B", Name: "Bere", UnitPrice: 6, Supplier: "X"},
		{RowID: 2, ExternalCode: "A", Name: "Apa", UnitPrice: 5, Supplier: "X"},
	}
	settings := Settings{
		ActiveSuppliers: activeSet("X"),
		Strategy:        StrategyMin,
		GlobalMarkup:    20,
		ManualPrices:    map[string]float64{"A": 5},
	}

	first := Resolve(rows, settings)
	second := Resolve(rows, settings)
	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, "A", first[0].ID)
	assert.True(t, first[0].HasManualPrice)
}

func TestComputeStats(t *testing.T) {
	rows := []types.PurchaseRow{
		{RowID: 1, ExternalCode: "A", Name: "Apa", UnitPrice: 10, Supplier: "X", ReceiptDate: date(2024, 1, 1)},
		{RowID: 2, ExternalCode: "A", Name: "Apa", UnitPrice: 12, Supplier: "X", ReceiptDate: date(2024, 2, 1)},
		{RowID: 3, ExternalCode: "B", Name: "Bere", UnitPrice: 6, Supplier: "X"},
	}
	products := Resolve(rows, Settings{
		ActiveSuppliers: activeSet("X"),
		Strategy:        StrategyMin,
		GlobalMarkup:    20,
		ItemMarkups:     map[string]float64{"B": 50},
		ManualPrices:    map[string]float64{"A": 12},
	})

	st := ComputeStats(products)
	assert.Equal(t, Stats{
		Total:        2,
		MultiPrice:   1,
		CustomMarkup: 1,
		ManualPrices: 1,
		WithDates:    1,
	}, st)
}
