package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/materials-api/internal/domain/entity"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// La regla de derivación: out-of-stock ≤ 0 < low-stock ≤ mínimo < in-stock.
func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		name     string
		current  string
		minimum  string
		expected entity.Status
	}{
		{"stock por encima del mínimo", "20", "10", entity.StatusInStock},
		{"frontera: stock igual al mínimo es low-stock", "10", "10", entity.StatusLowStock},
		{"stock por debajo del mínimo", "5", "10", entity.StatusLowStock},
		{"stock cero", "0", "10", entity.StatusOutOfStock},
		{"stock negativo", "-1", "10", entity.StatusOutOfStock},
		{"mínimo cero y stock positivo", "1", "0", entity.StatusInStock},
		{"mínimo cero y stock cero", "0", "0", entity.StatusOutOfStock},
		{"cantidades fraccionarias", "0.5", "0.5", entity.StatusLowStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, entity.DeriveStatus(d(tc.current), d(tc.minimum)))
		})
	}
}

// Discontinued es un override manual: gana sobre cualquier nivel de stock.
func TestMaterialStatus_DescontinuadoGanaSiempre(t *testing.T) {
	m := &entity.Material{
		CurrentStock: d("100"),
		MinimumStock: d("10"),
		Discontinued: true,
	}
	assert.Equal(t, entity.StatusDiscontinued, m.Status())

	m.CurrentStock = d("0")
	assert.Equal(t, entity.StatusDiscontinued, m.Status())
}

func TestMaterialStatus_SinOverrideDeriva(t *testing.T) {
	m := &entity.Material{
		CurrentStock: d("3"),
		MinimumStock: d("10"),
	}
	assert.Equal(t, entity.StatusLowStock, m.Status())
}

func TestValidCategory(t *testing.T) {
	assert.True(t, entity.ValidCategory(entity.CategoryFabric))
	assert.True(t, entity.ValidCategory(entity.CategoryOther))
	assert.False(t, entity.ValidCategory(entity.Category("wood")))
	assert.False(t, entity.ValidCategory(entity.Category("")))
}

func TestValidUnit(t *testing.T) {
	assert.True(t, entity.ValidUnit(entity.UnitMeter))
	assert.True(t, entity.ValidUnit(entity.UnitBox))
	assert.False(t, entity.ValidUnit(entity.Unit("gal")))
	assert.False(t, entity.ValidUnit(entity.Unit("")))
}
