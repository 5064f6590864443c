package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tu-usuario/materials-api/internal/domain/entity"
	"github.com/tu-usuario/materials-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo persistencia de los historiales append-only (usable con pool o tx).
// Solo hay INSERT y SELECT: las entradas nunca se editan ni se reordenan.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// AppendUsage persiste una entrada de consumo.
func (r *LedgerRepo) AppendUsage(e *entity.UsageEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO material_usages (id, material_id, quantity, used_by, project, note, cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.MaterialID, e.Quantity, e.UsedBy, e.Project, e.Note, e.Cost, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append usage: %w", err)
	}
	return nil
}

// AppendRestock persiste una entrada de reabastecimiento.
func (r *LedgerRepo) AppendRestock(e *entity.RestockEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO material_restocks (id, material_id, quantity, unit_cost, total_cost, supplier, purchase_order, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.MaterialID, e.Quantity, e.UnitCost, e.TotalCost,
		e.Supplier, e.PurchaseOrder, e.Note, e.CreatedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append restock: %w", err)
	}
	return nil
}

// ListUsage lista el historial de consumo del material, del más reciente al más antiguo.
func (r *LedgerRepo) ListUsage(materialID string, limit, offset int) ([]*entity.UsageEntry, error) {
	query := `
		SELECT id, material_id, quantity, used_by, project, note, cost, created_at
		FROM material_usages WHERE material_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, materialID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list usage: %w", err)
	}
	defer rows.Close()

	var list []*entity.UsageEntry
	for rows.Next() {
		var e entity.UsageEntry
		if err := rows.Scan(&e.ID, &e.MaterialID, &e.Quantity, &e.UsedBy,
			&e.Project, &e.Note, &e.Cost, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListRestocks lista el historial de reabastecimiento del material, del más reciente al más antiguo.
func (r *LedgerRepo) ListRestocks(materialID string, limit, offset int) ([]*entity.RestockEntry, error) {
	query := `
		SELECT id, material_id, quantity, unit_cost, total_cost, supplier, purchase_order, note, created_by, created_at
		FROM material_restocks WHERE material_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, materialID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list restocks: %w", err)
	}
	defer rows.Close()

	var list []*entity.RestockEntry
	for rows.Next() {
		var e entity.RestockEntry
		if err := rows.Scan(&e.ID, &e.MaterialID, &e.Quantity, &e.UnitCost, &e.TotalCost,
			&e.Supplier, &e.PurchaseOrder, &e.Note, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan restock: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
