package materials_test

import (
	"context"
	"sort"
	"strings"

	"github.com/tu-usuario/materials-api/internal/application/materials"
	"github.com/tu-usuario/materials-api/internal/domain/entity"
	"github.com/tu-usuario/materials-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: mismo contrato que los adaptadores de postgres, sin DB.
// ──────────────────────────────────────────────────────────────────────────────

// memStore estado compartido entre los repos fake y el tx runner fake.
type memStore struct {
	materials map[string]*entity.Material // key: id
	usages    []*entity.UsageEntry
	restocks  []*entity.RestockEntry
}

func newMemStore() *memStore {
	return &memStore{materials: map[string]*entity.Material{}}
}

type fakeMaterialRepo struct {
	store *memStore
}

var _ repository.MaterialRepository = (*fakeMaterialRepo)(nil)

func copyMaterial(m *entity.Material) *entity.Material {
	c := *m
	return &c
}

func (r *fakeMaterialRepo) Create(m *entity.Material) error {
	r.store.materials[m.ID] = copyMaterial(m)
	return nil
}

func (r *fakeMaterialRepo) GetByID(companyID, id string) (*entity.Material, error) {
	m, ok := r.store.materials[id]
	if !ok || m.CompanyID != companyID {
		return nil, nil
	}
	return copyMaterial(m), nil
}

func (r *fakeMaterialRepo) GetBySKU(companyID, sku string) (*entity.Material, error) {
	for _, m := range r.store.materials {
		if m.CompanyID == companyID && m.SKU == sku {
			return copyMaterial(m), nil
		}
	}
	return nil, nil
}

func (r *fakeMaterialRepo) GetForUpdate(companyID, id string) (*entity.Material, error) {
	return r.GetByID(companyID, id)
}

func (r *fakeMaterialRepo) Update(m *entity.Material) error {
	stored, ok := r.store.materials[m.ID]
	if !ok {
		return nil
	}
	// Solo metadatos, como el adaptador real.
	stored.Name = m.Name
	stored.Description = m.Description
	stored.Category = m.Category
	stored.Unit = m.Unit
	stored.MinimumStock = m.MinimumStock
	stored.MaximumStock = m.MaximumStock
	stored.Supplier = m.Supplier
	stored.Location = m.Location
	stored.Discontinued = m.Discontinued
	stored.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *fakeMaterialRepo) UpdateStock(m *entity.Material) error {
	stored, ok := r.store.materials[m.ID]
	if !ok {
		return nil
	}
	stored.CurrentStock = m.CurrentStock
	stored.UnitCost = m.UnitCost
	stored.TotalQuantityAdded = m.TotalQuantityAdded
	stored.TotalQuantityUsed = m.TotalQuantityUsed
	stored.LastRestocked = m.LastRestocked
	stored.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *fakeMaterialRepo) List(companyID string, f repository.ListFilter) ([]*entity.Material, int, error) {
	var all []*entity.Material
	for _, m := range r.store.materials {
		if m.CompanyID != companyID {
			continue
		}
		if f.Search != "" &&
			!strings.Contains(strings.ToLower(m.Name), strings.ToLower(f.Search)) &&
			!strings.Contains(strings.ToLower(m.SKU), strings.ToLower(f.Search)) {
			continue
		}
		if f.Category != "" && m.Category != f.Category {
			continue
		}
		if f.Status != "" && m.Status() != f.Status {
			continue
		}
		all = append(all, copyMaterial(m))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })

	total := len(all)
	if f.Offset >= len(all) {
		return nil, total, nil
	}
	all = all[f.Offset:]
	if f.Limit > 0 && f.Limit < len(all) {
		all = all[:f.Limit]
	}
	return all, total, nil
}

func (r *fakeMaterialRepo) ListAll(companyID string) ([]*entity.Material, error) {
	list, _, err := r.List(companyID, repository.ListFilter{Limit: len(r.store.materials)})
	return list, err
}

func (r *fakeMaterialRepo) Delete(companyID, id string) (bool, error) {
	m, ok := r.store.materials[id]
	if !ok || m.CompanyID != companyID {
		return false, nil
	}
	delete(r.store.materials, id)
	return true, nil
}

type fakeLedgerRepo struct {
	store *memStore
}

var _ repository.LedgerRepository = (*fakeLedgerRepo)(nil)

func (r *fakeLedgerRepo) AppendUsage(e *entity.UsageEntry) error {
	c := *e
	r.store.usages = append(r.store.usages, &c)
	return nil
}

func (r *fakeLedgerRepo) AppendRestock(e *entity.RestockEntry) error {
	c := *e
	r.store.restocks = append(r.store.restocks, &c)
	return nil
}

func (r *fakeLedgerRepo) ListUsage(materialID string, limit, offset int) ([]*entity.UsageEntry, error) {
	var out []*entity.UsageEntry
	for i := len(r.store.usages) - 1; i >= 0; i-- {
		if r.store.usages[i].MaterialID == materialID {
			out = append(out, r.store.usages[i])
		}
	}
	return paginate(out, limit, offset), nil
}

func (r *fakeLedgerRepo) ListRestocks(materialID string, limit, offset int) ([]*entity.RestockEntry, error) {
	var out []*entity.RestockEntry
	for i := len(r.store.restocks) - 1; i >= 0; i-- {
		if r.store.restocks[i].MaterialID == materialID {
			out = append(out, r.store.restocks[i])
		}
	}
	return paginate(out, limit, offset), nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// fakeTxRunner ejecuta el callback directamente sobre el store compartido.
// No simula rollback: los casos de error retornan antes de mutar.
type fakeTxRunner struct {
	store *memStore
}

var _ materials.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	materialRepo repository.MaterialRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	return fn(&fakeMaterialRepo{store: r.store}, &fakeLedgerRepo{store: r.store})
}
