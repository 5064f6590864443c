package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/materials-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para el panel de materiales.
// Siempre proyecta desde las tablas: no mantiene agregados propios.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// CountByStatus cuenta materiales por estado derivado (misma regla que entity.DeriveStatus).
func (r *StatsRepo) CountByStatus(ctx context.Context, companyID string) (repository.StatusCounts, error) {
	const query = `
	SELECT
		COUNT(*) FILTER (WHERE NOT discontinued AND current_stock > minimum_stock)                          AS in_stock,
		COUNT(*) FILTER (WHERE NOT discontinued AND current_stock > 0 AND current_stock <= minimum_stock)   AS low_stock,
		COUNT(*) FILTER (WHERE NOT discontinued AND current_stock <= 0)                                     AS out_of_stock,
		COUNT(*) FILTER (WHERE discontinued)                                                                AS discontinued
	FROM materials
	WHERE company_id = $1`

	var c repository.StatusCounts
	err := r.pool.QueryRow(ctx, query, companyID).Scan(&c.InStock, &c.LowStock, &c.OutOfStock, &c.Discontinued)
	if err != nil {
		return repository.StatusCounts{}, fmt.Errorf("stats.CountByStatus: %w", err)
	}
	return c, nil
}

// CountByCategory cuenta materiales por categoría.
func (r *StatsRepo) CountByCategory(ctx context.Context, companyID string) ([]repository.CategoryCount, error) {
	const query = `
	SELECT category, COUNT(*)
	FROM materials
	WHERE company_id = $1
	GROUP BY category
	ORDER BY COUNT(*) DESC, category ASC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("stats.CountByCategory: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryCount
	for rows.Next() {
		var row repository.CategoryCount
		if err := rows.Scan(&row.Category, &row.Count); err != nil {
			return nil, fmt.Errorf("stats.CountByCategory scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TotalValuation suma current_stock × unit_cost de todos los materiales de la empresa.
// COALESCE devuelve cero si la empresa no tiene materiales.
func (r *StatsRepo) TotalValuation(ctx context.Context, companyID string) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(current_stock * unit_cost), 0)
	FROM materials
	WHERE company_id = $1`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, companyID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("stats.TotalValuation: %w", err)
	}
	return total, nil
}

// MostUsed devuelve los materiales con mayor consumo desde `since`.
// El costo agregado suma los snapshots por entrada, no el costo de referencia actual.
func (r *StatsRepo) MostUsed(ctx context.Context, companyID string, since time.Time, limit int) ([]repository.MostUsedResult, error) {
	const query = `
	SELECT
		m.id            AS material_id,
		m.sku,
		m.name,
		SUM(u.quantity) AS quantity_used,
		SUM(u.cost)     AS total_cost
	FROM material_usages u
	JOIN materials m ON m.id = u.material_id
	WHERE m.company_id = $1
	  AND u.created_at >= $2
	GROUP BY m.id, m.sku, m.name
	ORDER BY quantity_used DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, companyID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("stats.MostUsed: %w", err)
	}
	defer rows.Close()

	var results []repository.MostUsedResult
	for rows.Next() {
		var row repository.MostUsedResult
		if err := rows.Scan(&row.MaterialID, &row.SKU, &row.Name, &row.QuantityUsed, &row.TotalCost); err != nil {
			return nil, fmt.Errorf("stats.MostUsed scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// RecentActivity une ambos historiales y devuelve los movimientos más recientes.
func (r *StatsRepo) RecentActivity(ctx context.Context, companyID string, since time.Time, limit int) ([]repository.ActivityResult, error) {
	const query = `
	SELECT activity_type, material_id, material_name, sku, quantity, cost, occurred_at
	FROM (
		SELECT
			'use'        AS activity_type,
			m.id         AS material_id,
			m.name       AS material_name,
			m.sku,
			u.quantity,
			u.cost,
			u.created_at AS occurred_at
		FROM material_usages u
		JOIN materials m ON m.id = u.material_id
		WHERE m.company_id = $1 AND u.created_at >= $2
		UNION ALL
		SELECT
			'restock'    AS activity_type,
			m.id         AS material_id,
			m.name       AS material_name,
			m.sku,
			s.quantity,
			s.total_cost AS cost,
			s.created_at AS occurred_at
		FROM material_restocks s
		JOIN materials m ON m.id = s.material_id
		WHERE m.company_id = $1 AND s.created_at >= $2
	) activity
	ORDER BY occurred_at DESC
	LIMIT $3`

	rows, err := r.pool.Query(ctx, query, companyID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("stats.RecentActivity: %w", err)
	}
	defer rows.Close()

	var results []repository.ActivityResult
	for rows.Next() {
		var row repository.ActivityResult
		if err := rows.Scan(&row.Type, &row.MaterialID, &row.MaterialName, &row.SKU,
			&row.Quantity, &row.Cost, &row.OccurredAt); err != nil {
			return nil, fmt.Errorf("stats.RecentActivity scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
