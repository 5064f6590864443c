package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/materials-api/internal/domain/entity"
)

// CreateMaterialRequest entrada para crear un material.
// InitialStock no genera entrada de historial: el stock inicial no es un reabastecimiento.
type CreateMaterialRequest struct {
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Category     entity.Category  `json:"category"`
	Unit         entity.Unit      `json:"unit"`
	InitialStock decimal.Decimal  `json:"initial_stock"`
	MinimumStock decimal.Decimal  `json:"minimum_stock"`
	MaximumStock *decimal.Decimal `json:"maximum_stock,omitempty"`
	UnitCost     decimal.Decimal  `json:"unit_cost"`
	Supplier     string           `json:"supplier"`
	Location     string           `json:"location"`
}

// UpdateMaterialRequest entrada para actualizar metadatos (sin stock ni historiales).
type UpdateMaterialRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	Category     *entity.Category `json:"category"`
	Unit         *entity.Unit     `json:"unit"`
	MinimumStock *decimal.Decimal `json:"minimum_stock"`
	MaximumStock *decimal.Decimal `json:"maximum_stock"`
	Supplier     *string          `json:"supplier"`
	Location     *string          `json:"location"`
	Discontinued *bool            `json:"discontinued"`
}

// ListMaterialsRequest filtros del listado.
type ListMaterialsRequest struct {
	PageRequest
	Search         string `query:"search"`
	Category       string `query:"category"`
	Status         string `query:"status"`
	SortBy         string `query:"sort_by"`
	SortOrder      string `query:"sort_order"`
	LowStockOnly   bool   `query:"low_stock_only"`
	OutOfStockOnly bool   `query:"out_of_stock_only"`
}

// MaterialResponse salida de un material con su estado derivado.
type MaterialResponse struct {
	ID                 string           `json:"id"`
	CompanyID          string           `json:"company_id"`
	SKU                string           `json:"sku"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Category           entity.Category  `json:"category"`
	Unit               entity.Unit      `json:"unit"`
	CurrentStock       decimal.Decimal  `json:"current_stock"`
	MinimumStock       decimal.Decimal  `json:"minimum_stock"`
	MaximumStock       *decimal.Decimal `json:"maximum_stock,omitempty"`
	UnitCost           decimal.Decimal  `json:"unit_cost"`
	Supplier           string           `json:"supplier"`
	Location           string           `json:"location"`
	Status             entity.Status    `json:"status"`
	TotalQuantityAdded decimal.Decimal  `json:"total_quantity_added"`
	TotalQuantityUsed  decimal.Decimal  `json:"total_quantity_used"`
	LastRestocked      *time.Time       `json:"last_restocked,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// MaterialListResponse lista paginada de materiales.
type MaterialListResponse struct {
	Materials  []MaterialResponse `json:"materials"`
	Pagination Pagination         `json:"pagination"`
}

// BulkActionRequest body para POST /api/materials/bulk.
type BulkActionRequest struct {
	MaterialIDs []string `json:"material_ids"`
	Action      string   `json:"action"` // delete | discontinue
}

// BulkFailure fallo individual dentro de una acción masiva.
type BulkFailure struct {
	MaterialID string `json:"material_id"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

// BulkActionResponse resultado best-effort por id: los fallos no abortan el lote.
type BulkActionResponse struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}
