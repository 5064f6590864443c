package http_test

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/materials-api/internal/application/materials"
	"github.com/tu-usuario/materials-api/internal/domain/entity"
	"github.com/tu-usuario/materials-api/internal/domain/repository"
	apphttp "github.com/tu-usuario/materials-api/internal/interfaces/http"
)

// Repos en memoria para probar los handlers sin DB. Cubren solo lo que las
// rutas ejercitan; List devuelve todo sin filtrar.

type memRepos struct {
	materials map[string]*entity.Material
	usages    []*entity.UsageEntry
	restocks  []*entity.RestockEntry
}

func newMemRepos() *memRepos {
	return &memRepos{materials: map[string]*entity.Material{}}
}

var _ repository.MaterialRepository = (*memRepos)(nil)
var _ repository.LedgerRepository = (*memRepos)(nil)
var _ materials.TxRunner = (*memRepos)(nil)

func (s *memRepos) Create(m *entity.Material) error {
	c := *m
	s.materials[m.ID] = &c
	return nil
}

func (s *memRepos) GetByID(companyID, id string) (*entity.Material, error) {
	m, ok := s.materials[id]
	if !ok || m.CompanyID != companyID {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (s *memRepos) GetBySKU(companyID, sku string) (*entity.Material, error) {
	for _, m := range s.materials {
		if m.CompanyID == companyID && m.SKU == sku {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (s *memRepos) GetForUpdate(companyID, id string) (*entity.Material, error) {
	return s.GetByID(companyID, id)
}

func (s *memRepos) Update(m *entity.Material) error {
	c := *m
	s.materials[m.ID] = &c
	return nil
}

func (s *memRepos) UpdateStock(m *entity.Material) error {
	return s.Update(m)
}

func (s *memRepos) List(companyID string, f repository.ListFilter) ([]*entity.Material, int, error) {
	var out []*entity.Material
	for _, m := range s.materials {
		if m.CompanyID == companyID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, len(out), nil
}

func (s *memRepos) ListAll(companyID string) ([]*entity.Material, error) {
	out, _, err := s.List(companyID, repository.ListFilter{})
	return out, err
}

func (s *memRepos) Delete(companyID, id string) (bool, error) {
	m, ok := s.materials[id]
	if !ok || m.CompanyID != companyID {
		return false, nil
	}
	delete(s.materials, id)
	return true, nil
}

func (s *memRepos) AppendUsage(e *entity.UsageEntry) error {
	c := *e
	s.usages = append(s.usages, &c)
	return nil
}

func (s *memRepos) AppendRestock(e *entity.RestockEntry) error {
	c := *e
	s.restocks = append(s.restocks, &c)
	return nil
}

func (s *memRepos) ListUsage(materialID string, limit, offset int) ([]*entity.UsageEntry, error) {
	var out []*entity.UsageEntry
	for i := len(s.usages) - 1; i >= 0; i-- {
		if s.usages[i].MaterialID == materialID {
			out = append(out, s.usages[i])
		}
	}
	return out, nil
}

func (s *memRepos) ListRestocks(materialID string, limit, offset int) ([]*entity.RestockEntry, error) {
	var out []*entity.RestockEntry
	for i := len(s.restocks) - 1; i >= 0; i-- {
		if s.restocks[i].MaterialID == materialID {
			out = append(out, s.restocks[i])
		}
	}
	return out, nil
}

func (s *memRepos) Run(_ context.Context, fn func(
	materialRepo repository.MaterialRepository,
	ledgerRepo repository.LedgerRepository,
) error) error {
	return fn(s, s)
}

// buildAPIApp arma la app con las rutas de materiales sobre los repos en memoria.
func buildAPIApp(store *memRepos) *fiber.App {
	app := fiber.New()

	materialUC := materials.NewUseCase(store, store)
	ledgerUC := materials.NewLedgerUseCase(store)

	mats := app.Group("/api/materials", apphttp.AuthMiddleware(testJWTSecret))
	materialHandler := apphttp.NewMaterialHandler(materialUC)
	ledgerHandler := apphttp.NewLedgerHandler(ledgerUC)

	mats.Post("/", materialHandler.Create)
	mats.Get("/", materialHandler.List)
	mats.Post("/use", ledgerHandler.Use)
	mats.Post("/restock", ledgerHandler.Restock)
	mats.Post("/bulk", materialHandler.BulkAction)
	mats.Get("/:id", materialHandler.GetByID)
	mats.Get("/:id/history", materialHandler.History)
	mats.Put("/:id", materialHandler.Update)
	mats.Delete("/:id", materialHandler.Delete)

	return app
}
