package repository

import (
	"github.com/tu-usuario/materials-api/internal/domain/entity"
)

// ListFilter filtros y orden para el listado de materiales.
// Status filtra por estado derivado (se evalúa en SQL con la misma regla que entity.DeriveStatus).
type ListFilter struct {
	Search         string // ILIKE sobre name y sku
	Category       entity.Category
	Status         entity.Status
	LowStockOnly   bool
	OutOfStockOnly bool
	SortBy         string // name | sku | current_stock | unit_cost | created_at | updated_at
	SortOrder      string // asc | desc
	Limit          int
	Offset         int
}

// MaterialRepository define el puerto de persistencia para Material (DIP).
// Todas las lecturas están scoped por companyID: un id de otra empresa se comporta
// como inexistente (nil, nil), nunca como prohibido.
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(companyID, id string) (*entity.Material, error)
	GetBySKU(companyID, sku string) (*entity.Material, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); solo tiene sentido dentro de una tx.
	GetForUpdate(companyID, id string) (*entity.Material, error)
	// Update persiste metadatos (nombre, umbrales, proveedor...). Nunca toca stock ni totales.
	Update(material *entity.Material) error
	// UpdateStock persiste stock, costo de referencia, totales y last_restocked (vía uso/reabastecimiento).
	UpdateStock(material *entity.Material) error
	List(companyID string, filter ListFilter) ([]*entity.Material, int, error)
	ListAll(companyID string) ([]*entity.Material, error)
	Delete(companyID, id string) (bool, error)
}
