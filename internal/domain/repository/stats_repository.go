package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/materials-api/internal/domain/entity"
)

// StatusCounts conteo de materiales por estado derivado.
type StatusCounts struct {
	InStock      int
	LowStock     int
	OutOfStock   int
	Discontinued int
}

// CategoryCount conteo de materiales por categoría.
type CategoryCount struct {
	Category entity.Category
	Count    int
}

// MostUsedResult material con mayor consumo en la ventana consultada.
type MostUsedResult struct {
	MaterialID   string
	SKU          string
	Name         string
	QuantityUsed decimal.Decimal
	TotalCost    decimal.Decimal
}

// ActivityResult entrada reciente de cualquiera de los dos historiales.
type ActivityResult struct {
	Type         string // "use" | "restock"
	MaterialID   string
	MaterialName string
	SKU          string
	Quantity     decimal.Decimal
	Cost         decimal.Decimal
	OccurredAt   time.Time
}

// StatsRepository consultas de solo lectura para el panel de materiales.
// Todo es una proyección bajo demanda de los datos persistidos, nunca un agregado cacheado.
type StatsRepository interface {
	CountByStatus(ctx context.Context, companyID string) (StatusCounts, error)
	CountByCategory(ctx context.Context, companyID string) ([]CategoryCount, error)
	TotalValuation(ctx context.Context, companyID string) (decimal.Decimal, error)
	MostUsed(ctx context.Context, companyID string, since time.Time, limit int) ([]MostUsedResult, error)
	RecentActivity(ctx context.Context, companyID string, since time.Time, limit int) ([]ActivityResult, error)
}
