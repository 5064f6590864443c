package materials_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/materials-api/internal/application/materials"
	"github.com/tu-usuario/materials-api/internal/domain/entity"
	"github.com/tu-usuario/materials-api/internal/domain/repository"
)

// fakeStatsRepo devuelve datos fijos y registra la ventana consultada.
type fakeStatsRepo struct {
	lastSince time.Time
}

var _ repository.StatsRepository = (*fakeStatsRepo)(nil)

func (r *fakeStatsRepo) CountByStatus(_ context.Context, _ string) (repository.StatusCounts, error) {
	return repository.StatusCounts{InStock: 5, LowStock: 2, OutOfStock: 1, Discontinued: 1}, nil
}

func (r *fakeStatsRepo) CountByCategory(_ context.Context, _ string) ([]repository.CategoryCount, error) {
	return []repository.CategoryCount{
		{Category: entity.CategoryFabric, Count: 4},
		{Category: entity.CategoryHardware, Count: 5},
	}, nil
}

func (r *fakeStatsRepo) TotalValuation(_ context.Context, _ string) (decimal.Decimal, error) {
	return d("1250.75"), nil
}

func (r *fakeStatsRepo) MostUsed(_ context.Context, _ string, since time.Time, _ int) ([]repository.MostUsedResult, error) {
	r.lastSince = since
	return []repository.MostUsedResult{
		{MaterialID: "m1", SKU: "TELA-001", Name: "Tela", QuantityUsed: d("30"), TotalCost: d("75")},
	}, nil
}

func (r *fakeStatsRepo) RecentActivity(_ context.Context, _ string, since time.Time, _ int) ([]repository.ActivityResult, error) {
	return []repository.ActivityResult{
		{Type: "use", MaterialID: "m1", SKU: "TELA-001", Quantity: d("30"), Cost: d("75"), OccurredAt: time.Now()},
		{Type: "restock", MaterialID: "m1", SKU: "TELA-001", Quantity: d("15"), Cost: d("37.50"), OccurredAt: time.Now()},
	}, nil
}

func TestStatsOverview_ProyectaAgregados(t *testing.T) {
	repo := &fakeStatsRepo{}
	uc := materials.NewStatsUseCase(repo)

	out, err := uc.Overview(context.Background(), testCompanyID, 0)
	require.NoError(t, err)

	assert.Equal(t, 9, out.TotalMaterials, "total = suma de los conteos por estado")
	assert.Equal(t, 5, out.ByStatus.InStock)
	assert.Equal(t, 1, out.ByStatus.Discontinued)
	require.Len(t, out.ByCategory, 2)
	assert.True(t, d("1250.75").Equal(out.TotalValuation))
	require.Len(t, out.MostUsed, 1)
	assert.Equal(t, "TELA-001", out.MostUsed[0].SKU)
	require.Len(t, out.RecentActivity, 2)
	assert.Equal(t, 30, out.WindowDays, "sin days explícito aplica la ventana default")
}

func TestStatsOverview_VentanaAcotada(t *testing.T) {
	repo := &fakeStatsRepo{}
	uc := materials.NewStatsUseCase(repo)

	out, err := uc.Overview(context.Background(), testCompanyID, 1000)
	require.NoError(t, err)
	assert.Equal(t, 365, out.WindowDays, "la ventana se acota a 365 días")

	// since debe corresponder a la ventana acotada, no a los 1000 días pedidos.
	expected := time.Now().AddDate(0, 0, -365)
	assert.WithinDuration(t, expected, repo.lastSince, time.Minute)
}
