package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsResponse vista agregada del inventario de materiales.
// Proyección bajo demanda: se calcula en cada petición desde los datos persistidos.
type StatsResponse struct {
	TotalMaterials int                        `json:"total_materials"`
	ByStatus       StatusBreakdown            `json:"by_status"`
	ByCategory     []CategoryBreakdown        `json:"by_category"`
	TotalValuation decimal.Decimal            `json:"total_valuation"`
	MostUsed       []MostUsedMaterialDTO      `json:"most_used"`
	RecentActivity []ActivityEntryDTO         `json:"recent_activity"`
	WindowDays     int                        `json:"window_days"`
}

// StatusBreakdown conteos por estado derivado.
type StatusBreakdown struct {
	InStock      int `json:"in_stock"`
	LowStock     int `json:"low_stock"`
	OutOfStock   int `json:"out_of_stock"`
	Discontinued int `json:"discontinued"`
}

// CategoryBreakdown conteo por categoría.
type CategoryBreakdown struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// MostUsedMaterialDTO material con mayor consumo en la ventana.
type MostUsedMaterialDTO struct {
	MaterialID   string          `json:"material_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	QuantityUsed decimal.Decimal `json:"quantity_used"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}

// ActivityEntryDTO movimiento reciente (uso o reabastecimiento).
type ActivityEntryDTO struct {
	Type         string          `json:"type"` // use | restock
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	SKU          string          `json:"sku"`
	Quantity     decimal.Decimal `json:"quantity"`
	Cost         decimal.Decimal `json:"cost"`
	OccurredAt   time.Time       `json:"occurred_at"`
}
