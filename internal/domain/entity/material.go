package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status estado derivado de un material según su stock y umbrales.
type Status string

const (
	StatusInStock      Status = "in-stock"
	StatusLowStock     Status = "low-stock"
	StatusOutOfStock   Status = "out-of-stock"
	StatusDiscontinued Status = "discontinued"
)

// Category categoría de material.
type Category string

const (
	CategoryRawMaterial Category = "raw-material"
	CategoryFabric      Category = "fabric"
	CategoryHardware    Category = "hardware"
	CategoryTool        Category = "tool"
	CategoryPackaging   Category = "packaging"
	CategoryConsumable  Category = "consumable"
	CategoryOther       Category = "other"
)

// Categories lista de categorías válidas.
var Categories = []Category{
	CategoryRawMaterial, CategoryFabric, CategoryHardware,
	CategoryTool, CategoryPackaging, CategoryConsumable, CategoryOther,
}

// ValidCategory verifica que la categoría esté en el catálogo.
func ValidCategory(c Category) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Unit unidad de medida del material.
type Unit string

const (
	UnitPiece Unit = "pcs"
	UnitMeter Unit = "m"
	UnitCm    Unit = "cm"
	UnitKg    Unit = "kg"
	UnitGram  Unit = "g"
	UnitLiter Unit = "l"
	UnitMl    Unit = "ml"
	UnitRoll  Unit = "roll"
	UnitBox   Unit = "box"
	UnitSet   Unit = "set"
)

// Units lista de unidades válidas.
var Units = []Unit{
	UnitPiece, UnitMeter, UnitCm, UnitKg, UnitGram,
	UnitLiter, UnitMl, UnitRoll, UnitBox, UnitSet,
}

// ValidUnit verifica que la unidad esté en el catálogo.
func ValidUnit(u Unit) bool {
	for _, v := range Units {
		if v == u {
			return true
		}
	}
	return false
}

// Material representa un SKU del inventario de materiales de una empresa.
// CurrentStock solo cambia vía operaciones de uso/reabastecimiento (nunca edición directa);
// los totales acumulados sirven para analítica y no son autoritativos sobre CurrentStock.
type Material struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa, máx. 50 caracteres
	Name         string
	Description  string
	Category     Category
	Unit         Unit
	CurrentStock decimal.Decimal
	MinimumStock decimal.Decimal
	MaximumStock *decimal.Decimal // opcional; si existe, debe superar MinimumStock
	UnitCost     decimal.Decimal  // costo de referencia: el del último reabastecimiento
	Supplier     string
	Location     string
	Discontinued bool // override manual de una sola vía, nunca derivado del stock

	TotalQuantityAdded decimal.Decimal
	TotalQuantityUsed  decimal.Decimal
	LastRestocked      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status deriva el estado del material. Discontinued es un override explícito;
// el resto es función pura de CurrentStock frente a 0 y MinimumStock
// (frontera: CurrentStock == MinimumStock → low-stock).
func (m *Material) Status() Status {
	if m.Discontinued {
		return StatusDiscontinued
	}
	return DeriveStatus(m.CurrentStock, m.MinimumStock)
}

// DeriveStatus regla de derivación pura para stock y umbral mínimo.
func DeriveStatus(current, minimum decimal.Decimal) Status {
	switch {
	case current.IsZero() || current.IsNegative():
		return StatusOutOfStock
	case current.LessThanOrEqual(minimum):
		return StatusLowStock
	default:
		return StatusInStock
	}
}
