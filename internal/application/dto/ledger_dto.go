package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UseMaterialRequest body para POST /api/materials/use.
type UseMaterialRequest struct {
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Project    string          `json:"project,omitempty"`
	Note       string          `json:"note,omitempty"`
}

// RestockMaterialRequest body para POST /api/materials/restock.
// UnitCost nulo conserva el costo de referencia actual del material.
type RestockMaterialRequest struct {
	MaterialID    string           `json:"material_id"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost,omitempty"`
	Supplier      string           `json:"supplier,omitempty"`
	PurchaseOrder string           `json:"purchase_order,omitempty"`
	Note          string           `json:"note,omitempty"`
}

// LedgerOperationResponse material actualizado tras use/restock.
// Warning es una señal de negocio no bloqueante (ej. stock por encima del máximo).
type LedgerOperationResponse struct {
	Material MaterialResponse `json:"material"`
	Warning  string           `json:"warning,omitempty"`
}

// UsageEntryResponse entrada del historial de consumo.
type UsageEntryResponse struct {
	ID        string          `json:"id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UsedBy    string          `json:"used_by"`
	Project   string          `json:"project,omitempty"`
	Note      string          `json:"note,omitempty"`
	Cost      decimal.Decimal `json:"cost"`
	CreatedAt time.Time       `json:"created_at"`
}

// RestockEntryResponse entrada del historial de reabastecimiento.
type RestockEntryResponse struct {
	ID            string          `json:"id"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Supplier      string          `json:"supplier,omitempty"`
	PurchaseOrder string          `json:"purchase_order,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// HistoryPage página solicitada sobre cada historial. Los historiales no exponen
// conteos totales: se recorren hacia atrás hasta que una página llega incompleta.
type HistoryPage struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// MaterialHistoryResponse ambos historiales de un material, del más reciente al más antiguo.
type MaterialHistoryResponse struct {
	MaterialID string                 `json:"material_id"`
	Usage      []UsageEntryResponse   `json:"usage"`
	Restocks   []RestockEntryResponse `json:"restocks"`
	Page       HistoryPage            `json:"page"`
}
