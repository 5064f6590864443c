package materials

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/materials-api/internal/application/dto"
	"github.com/tu-usuario/materials-api/internal/domain"
	"github.com/tu-usuario/materials-api/internal/domain/entity"
	"github.com/tu-usuario/materials-api/internal/domain/repository"
)

// UseCase casos de uso CRUD para materiales. El stock y los historiales solo
// cambian vía LedgerUseCase (use/restock), nunca por este camino.
type UseCase struct {
	repo       repository.MaterialRepository
	ledgerRepo repository.LedgerRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.MaterialRepository, ledgerRepo repository.LedgerRepository) *UseCase {
	return &UseCase{repo: repo, ledgerRepo: ledgerRepo}
}

// Create crea un material con stock inicial. El stock inicial no genera entrada
// de historial: los historiales solo registran usos y reabastecimientos.
func (uc *UseCase) Create(companyID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if verr := validateCreate(in); verr != nil {
		return nil, verr
	}
	existing, err := uc.repo.GetBySKU(companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	material := &entity.Material{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Unit:         in.Unit,
		CurrentStock: in.InitialStock,
		MinimumStock: in.MinimumStock,
		MaximumStock: in.MaximumStock,
		UnitCost:     in.UnitCost,
		Supplier:     in.Supplier,
		Location:     in.Location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material de la empresa. Retorna (nil, nil) si no existe
// (incluye ids de otras empresas: se comportan como inexistentes).
func (uc *UseCase) GetByID(companyID, id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	return toMaterialResponse(material), nil
}

// List lista materiales con búsqueda, filtros, orden y paginación.
func (uc *UseCase) List(companyID string, in dto.ListMaterialsRequest) (*dto.MaterialListResponse, error) {
	in.DefaultPage()
	filter := repository.ListFilter{
		Search:         in.Search,
		Category:       entity.Category(in.Category),
		Status:         entity.Status(in.Status),
		LowStockOnly:   in.LowStockOnly,
		OutOfStockOnly: in.OutOfStockOnly,
		SortBy:         in.SortBy,
		SortOrder:      in.SortOrder,
		Limit:          in.Limit,
		Offset:         in.Offset(),
	}
	list, total, err := uc.repo.List(companyID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Materials: items,
		Pagination: dto.Pagination{
			Page:       in.Page,
			Limit:      in.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(in.Limit))),
		},
	}, nil
}

// Update actualiza metadatos. No permite modificar CurrentStock ni los historiales:
// esos solo cambian vía use/restock.
func (uc *UseCase) Update(companyID, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}

	// Igual que en el create: se acumulan TODAS las violaciones de los campos
	// provistos y se retornan juntas; nada se persiste si hay al menos una.
	verr := &domain.ValidationError{}

	if in.Name != nil {
		if *in.Name == "" {
			verr.Add("name", "el nombre es requerido")
		} else {
			material.Name = *in.Name
		}
	}
	if in.Description != nil {
		material.Description = *in.Description
	}
	if in.Category != nil {
		if !entity.ValidCategory(*in.Category) {
			verr.Add("category", "categoría inválida")
		} else {
			material.Category = *in.Category
		}
	}
	if in.Unit != nil {
		if !entity.ValidUnit(*in.Unit) {
			verr.Add("unit", "unidad de medida inválida")
		} else {
			material.Unit = *in.Unit
		}
	}
	if in.MinimumStock != nil {
		material.MinimumStock = *in.MinimumStock
	}
	if in.MaximumStock != nil {
		material.MaximumStock = in.MaximumStock
	}
	if in.Supplier != nil {
		material.Supplier = *in.Supplier
	}
	if in.Location != nil {
		material.Location = *in.Location
	}
	if in.Discontinued != nil {
		// Override de una sola vía: descontinuar no se revierte por este camino.
		if !*in.Discontinued && material.Discontinued {
			verr.Add("discontinued", "la descontinuación no se puede revertir")
		} else {
			material.Discontinued = *in.Discontinued
		}
	}

	// La relación min/max se revalida sobre el resultado fusionado y se suma
	// a la misma lista de violaciones.
	if terr := validateThresholds(material.MinimumStock, material.MaximumStock); terr != nil {
		verr.Violations = append(verr.Violations, terr.Violations...)
	}
	if verr.HasViolations() {
		return nil, verr
	}

	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// Delete elimina el material y sus historiales (cascada en DB). Terminal, sin undo.
func (uc *UseCase) Delete(companyID, id string) error {
	deleted, err := uc.repo.Delete(companyID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// BulkAction aplica una acción uniforme a varios ids, best-effort: cada fallo se
// colecciona y el lote continúa; un id malo no aborta el resto.
func (uc *UseCase) BulkAction(companyID string, in dto.BulkActionRequest) (*dto.BulkActionResponse, error) {
	if len(in.MaterialIDs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Action != "delete" && in.Action != "discontinue" {
		return nil, domain.ErrInvalidInput
	}

	out := &dto.BulkActionResponse{Succeeded: []string{}, Failed: []dto.BulkFailure{}}
	for _, id := range in.MaterialIDs {
		var err error
		switch in.Action {
		case "delete":
			err = uc.Delete(companyID, id)
		case "discontinue":
			err = uc.discontinue(companyID, id)
		}
		if err != nil {
			out.Failed = append(out.Failed, dto.BulkFailure{
				MaterialID: id,
				Code:       bulkErrorCode(err),
				Message:    err.Error(),
			})
			continue
		}
		out.Succeeded = append(out.Succeeded, id)
	}
	return out, nil
}

// discontinue marca el override manual de estado (una sola vía).
func (uc *UseCase) discontinue(companyID, id string) error {
	material, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if material == nil {
		return domain.ErrNotFound
	}
	if material.Discontinued {
		return nil // ya descontinuado: idempotente
	}
	material.Discontinued = true
	material.UpdatedAt = time.Now()
	return uc.repo.Update(material)
}

// History devuelve ambos historiales del material, paginados, del más reciente al más antiguo.
func (uc *UseCase) History(companyID, id string, page dto.PageRequest) (*dto.MaterialHistoryResponse, error) {
	material, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, nil
	}
	page.DefaultPage()

	usage, err := uc.ledgerRepo.ListUsage(material.ID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	restocks, err := uc.ledgerRepo.ListRestocks(material.ID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}

	out := &dto.MaterialHistoryResponse{
		MaterialID: material.ID,
		Usage:      make([]dto.UsageEntryResponse, 0, len(usage)),
		Restocks:   make([]dto.RestockEntryResponse, 0, len(restocks)),
		Page:       dto.HistoryPage{Page: page.Page, Limit: page.Limit},
	}
	for _, e := range usage {
		out.Usage = append(out.Usage, dto.UsageEntryResponse{
			ID: e.ID, Quantity: e.Quantity, UsedBy: e.UsedBy,
			Project: e.Project, Note: e.Note, Cost: e.Cost, CreatedAt: e.CreatedAt,
		})
	}
	for _, e := range restocks {
		out.Restocks = append(out.Restocks, dto.RestockEntryResponse{
			ID: e.ID, Quantity: e.Quantity, UnitCost: e.UnitCost, TotalCost: e.TotalCost,
			Supplier: e.Supplier, PurchaseOrder: e.PurchaseOrder, Note: e.Note,
			CreatedBy: e.CreatedBy, CreatedAt: e.CreatedAt,
		})
	}
	return out, nil
}

func bulkErrorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return "VALIDATION"
	default:
		return "INTERNAL"
	}
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:                 m.ID,
		CompanyID:          m.CompanyID,
		SKU:                m.SKU,
		Name:               m.Name,
		Description:        m.Description,
		Category:           m.Category,
		Unit:               m.Unit,
		CurrentStock:       m.CurrentStock,
		MinimumStock:       m.MinimumStock,
		MaximumStock:       m.MaximumStock,
		UnitCost:           m.UnitCost,
		Supplier:           m.Supplier,
		Location:           m.Location,
		Status:             m.Status(),
		TotalQuantityAdded: m.TotalQuantityAdded,
		TotalQuantityUsed:  m.TotalQuantityUsed,
		LastRestocked:      m.LastRestocked,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
