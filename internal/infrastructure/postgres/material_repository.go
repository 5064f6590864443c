package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/materials-api/internal/domain"
	"github.com/tu-usuario/materials-api/internal/domain/entity"
	"github.com/tu-usuario/materials-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// Columnas de materials en el orden de scanMaterial.
const materialColumns = `
	id, company_id, sku, name, description, category, unit,
	current_stock, minimum_stock, maximum_stock, unit_cost,
	supplier, location, discontinued,
	total_quantity_added, total_quantity_used, last_restocked,
	created_at, updated_at`

// Expresión SQL del estado derivado: misma regla que entity.DeriveStatus,
// con discontinued como override.
const statusExpr = `
	CASE
		WHEN discontinued THEN 'discontinued'
		WHEN current_stock <= 0 THEN 'out-of-stock'
		WHEN current_stock <= minimum_stock THEN 'low-stock'
		ELSE 'in-stock'
	END`

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material nuevo. La unicidad de SKU por empresa la garantiza
// el constraint (company_id, sku); 23505 se mapea a ErrDuplicate.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (
			id, company_id, sku, name, description, category, unit,
			current_stock, minimum_stock, maximum_stock, unit_cost,
			supplier, location, discontinued,
			total_quantity_added, total_quantity_used, last_restocked,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CompanyID, m.SKU, m.Name, m.Description, m.Category, m.Unit,
		m.CurrentStock, m.MinimumStock, m.MaximumStock, m.UnitCost,
		m.Supplier, m.Location, m.Discontinued,
		m.TotalQuantityAdded, m.TotalQuantityUsed, m.LastRestocked,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por id, scoped a la empresa. Un id de otra empresa
// no resuelve (nil, nil): el scoping nunca distingue "ajeno" de "inexistente".
func (r *MaterialRepo) GetByID(companyID, id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE company_id = $1 AND id = $2`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// GetBySKU obtiene un material por SKU dentro de la empresa.
func (r *MaterialRepo) GetBySKU(companyID, sku string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE company_id = $1 AND sku = $2`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, companyID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material by sku: %w", err)
	}
	return m, nil
}

// GetForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE).
// Serializa use/restock concurrentes sobre el mismo material.
func (r *MaterialRepo) GetForUpdate(companyID, id string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE company_id = $1 AND id = $2 FOR UPDATE`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material for update: %w", err)
	}
	return m, nil
}

// Update persiste metadatos. No toca current_stock, totales ni last_restocked:
// esos solo cambian vía UpdateStock dentro de una operación de ledger.
func (r *MaterialRepo) Update(m *entity.Material) error {
	query := `
		UPDATE materials SET
			name = $3, description = $4, category = $5, unit = $6,
			minimum_stock = $7, maximum_stock = $8,
			supplier = $9, location = $10, discontinued = $11, updated_at = $12
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		m.CompanyID, m.ID, m.Name, m.Description, m.Category, m.Unit,
		m.MinimumStock, m.MaximumStock,
		m.Supplier, m.Location, m.Discontinued, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpdateStock persiste los campos que solo mueven las operaciones de ledger.
func (r *MaterialRepo) UpdateStock(m *entity.Material) error {
	query := `
		UPDATE materials SET
			current_stock = $3, unit_cost = $4,
			total_quantity_added = $5, total_quantity_used = $6,
			last_restocked = $7, updated_at = $8
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		m.CompanyID, m.ID, m.CurrentStock, m.UnitCost,
		m.TotalQuantityAdded, m.TotalQuantityUsed,
		m.LastRestocked, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material stock: %w", err)
	}
	return nil
}

// sortColumns whitelist de columnas ordenables (el resto cae en created_at).
var sortColumns = map[string]string{
	"name":          "name",
	"sku":           "sku",
	"current_stock": "current_stock",
	"unit_cost":     "unit_cost",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}

// List lista materiales con filtros, orden y paginación; retorna también el total sin paginar.
func (r *MaterialRepo) List(companyID string, f repository.ListFilter) ([]*entity.Material, int, error) {
	where := ` WHERE company_id = $1`
	args := []any{companyID}
	pos := 2

	if f.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", pos, pos)
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	if f.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", pos)
		args = append(args, f.Category)
		pos++
	}
	if f.Status != "" {
		where += fmt.Sprintf(" AND (%s) = $%d", statusExpr, pos)
		args = append(args, f.Status)
		pos++
	}
	if f.LowStockOnly {
		where += " AND NOT discontinued AND current_stock > 0 AND current_stock <= minimum_stock"
	}
	if f.OutOfStockOnly {
		where += " AND NOT discontinued AND current_stock <= 0"
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM materials` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count materials: %w", err)
	}

	orderCol, ok := sortColumns[f.SortBy]
	if !ok {
		orderCol = "created_at"
	}
	direction := "DESC"
	if f.SortOrder == "asc" {
		direction = "ASC"
	}

	query := `SELECT ` + materialColumns + ` FROM materials` + where +
		fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", orderCol, direction, pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, total, rows.Err()
}

// ListAll lista todos los materiales de la empresa (export / reportes).
func (r *MaterialRepo) ListAll(companyID string) ([]*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE company_id = $1 ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list all materials: %w", err)
	}
	defer rows.Close()

	var list []*entity.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Delete elimina el material; los historiales caen por cascada (FK ON DELETE CASCADE).
// Retorna false si el id no existe en la empresa.
func (r *MaterialRepo) Delete(companyID, id string) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM materials WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return false, fmt.Errorf("delete material: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// rowScanner lo cumplen pgx.Row y pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMaterial(row rowScanner) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.SKU, &m.Name, &m.Description, &m.Category, &m.Unit,
		&m.CurrentStock, &m.MinimumStock, &m.MaximumStock, &m.UnitCost,
		&m.Supplier, &m.Location, &m.Discontinued,
		&m.TotalQuantityAdded, &m.TotalQuantityUsed, &m.LastRestocked,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
