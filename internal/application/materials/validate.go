package materials

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/materials-api/internal/application/dto"
	"github.com/tu-usuario/materials-api/internal/domain"
	"github.com/tu-usuario/materials-api/internal/domain/entity"
)

const maxSKULength = 50

// validateCreate acumula TODAS las violaciones del create y las retorna juntas,
// no solo la primera (ej. nombre vacío Y costo negativo se reportan a la vez).
func validateCreate(in dto.CreateMaterialRequest) *domain.ValidationError {
	verr := &domain.ValidationError{}

	if in.Name == "" {
		verr.Add("name", "el nombre es requerido")
	}
	if in.SKU == "" {
		verr.Add("sku", "el SKU es requerido")
	} else if len(in.SKU) > maxSKULength {
		verr.Add("sku", "el SKU no puede superar 50 caracteres")
	}
	if !entity.ValidCategory(in.Category) {
		verr.Add("category", "categoría inválida")
	}
	if !entity.ValidUnit(in.Unit) {
		verr.Add("unit", "unidad de medida inválida")
	}
	if in.InitialStock.IsNegative() {
		verr.Add("initial_stock", "el stock inicial no puede ser negativo")
	}
	if in.MinimumStock.IsNegative() {
		verr.Add("minimum_stock", "el stock mínimo no puede ser negativo")
	}
	if in.MaximumStock != nil && !in.MaximumStock.GreaterThan(in.MinimumStock) {
		verr.Add("maximum_stock", "el stock máximo debe ser mayor al stock mínimo")
	}
	if in.UnitCost.IsNegative() {
		verr.Add("unit_cost", "el costo unitario no puede ser negativo")
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

// validateThresholds revalida la relación min/max sobre el material ya fusionado con el update.
func validateThresholds(minimum decimal.Decimal, maximum *decimal.Decimal) *domain.ValidationError {
	verr := &domain.ValidationError{}
	if minimum.IsNegative() {
		verr.Add("minimum_stock", "el stock mínimo no puede ser negativo")
	}
	if maximum != nil && !maximum.GreaterThan(minimum) {
		verr.Add("maximum_stock", "el stock máximo debe ser mayor al stock mínimo")
	}
	if verr.HasViolations() {
		return verr
	}
	return nil
}
