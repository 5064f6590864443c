package materials

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/materials-api/internal/application/dto"
	"github.com/tu-usuario/materials-api/internal/domain/repository"
)

const (
	defaultStatsDays = 30
	maxStatsDays     = 365
	activityLimit    = 20
	mostUsedLimit    = 10
)

// StatsUseCase arma la vista agregada del inventario. Todo se proyecta bajo demanda
// desde los datos persistidos: no hay totales mutables cacheados que puedan derivar
// respecto a la verdad del ledger.
type StatsUseCase struct {
	statsRepo repository.StatsRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(statsRepo repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{statsRepo: statsRepo}
}

// Overview calcula los agregados para la ventana de `days` días (default 30, tope 365).
func (uc *StatsUseCase) Overview(ctx context.Context, companyID string, days int) (*dto.StatsResponse, error) {
	if days <= 0 {
		days = defaultStatsDays
	}
	if days > maxStatsDays {
		days = maxStatsDays
	}
	since := time.Now().AddDate(0, 0, -days)

	statusCounts, err := uc.statsRepo.CountByStatus(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("stats: conteo por estado: %w", err)
	}
	categoryCounts, err := uc.statsRepo.CountByCategory(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("stats: conteo por categoría: %w", err)
	}
	valuation, err := uc.statsRepo.TotalValuation(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("stats: valoración: %w", err)
	}

	// Las dos consultas de ventana son independientes: se lanzan en paralelo.
	type mostUsedResult struct {
		rows []repository.MostUsedResult
		err  error
	}
	type activityResult struct {
		rows []repository.ActivityResult
		err  error
	}
	muChan := make(chan mostUsedResult, 1)
	actChan := make(chan activityResult, 1)

	go func() {
		rows, err := uc.statsRepo.MostUsed(ctx, companyID, since, mostUsedLimit)
		muChan <- mostUsedResult{rows, err}
	}()
	go func() {
		rows, err := uc.statsRepo.RecentActivity(ctx, companyID, since, activityLimit)
		actChan <- activityResult{rows, err}
	}()

	muRes := <-muChan
	actRes := <-actChan
	if muRes.err != nil {
		return nil, fmt.Errorf("stats: más usados: %w", muRes.err)
	}
	if actRes.err != nil {
		return nil, fmt.Errorf("stats: actividad reciente: %w", actRes.err)
	}

	out := &dto.StatsResponse{
		TotalMaterials: statusCounts.InStock + statusCounts.LowStock +
			statusCounts.OutOfStock + statusCounts.Discontinued,
		ByStatus: dto.StatusBreakdown{
			InStock:      statusCounts.InStock,
			LowStock:     statusCounts.LowStock,
			OutOfStock:   statusCounts.OutOfStock,
			Discontinued: statusCounts.Discontinued,
		},
		ByCategory:     make([]dto.CategoryBreakdown, 0, len(categoryCounts)),
		TotalValuation: valuation,
		MostUsed:       make([]dto.MostUsedMaterialDTO, 0, len(muRes.rows)),
		RecentActivity: make([]dto.ActivityEntryDTO, 0, len(actRes.rows)),
		WindowDays:     days,
	}
	for _, c := range categoryCounts {
		out.ByCategory = append(out.ByCategory, dto.CategoryBreakdown{
			Category: string(c.Category), Count: c.Count,
		})
	}
	for _, r := range muRes.rows {
		out.MostUsed = append(out.MostUsed, dto.MostUsedMaterialDTO{
			MaterialID: r.MaterialID, SKU: r.SKU, Name: r.Name,
			QuantityUsed: r.QuantityUsed, TotalCost: r.TotalCost,
		})
	}
	for _, r := range actRes.rows {
		out.RecentActivity = append(out.RecentActivity, dto.ActivityEntryDTO{
			Type: r.Type, MaterialID: r.MaterialID, MaterialName: r.MaterialName,
			SKU: r.SKU, Quantity: r.Quantity, Cost: r.Cost, OccurredAt: r.OccurredAt,
		})
	}
	return out, nil
}
