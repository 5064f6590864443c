package materials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/materials-api/internal/application/dto"
	"github.com/tu-usuario/materials-api/internal/domain"
	"github.com/tu-usuario/materials-api/internal/domain/entity"
	"github.com/tu-usuario/materials-api/internal/domain/repository"
	"github.com/tu-usuario/materials-api/pkg/metrics"
)

// LedgerUseCase registra usos y reabastecimientos de forma transaccional, con bloqueo
// de fila (SELECT FOR UPDATE) sobre el material. Invariante tras cada operación:
// CurrentStock == stock inicial + Σ reabastecimientos − Σ usos, y nunca negativo.
// El cambio de stock y el append al historial se confirman juntos o no se aplican.
type LedgerUseCase struct {
	txRunner TxRunner
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner}
}

// Use descuenta stock y registra la entrada en el historial de consumo.
// El costo de la entrada es un snapshot: quantity × costo de referencia al momento
// del uso; no se recalcula si el costo cambia después.
func (uc *LedgerUseCase) Use(ctx context.Context, companyID, userID string, in dto.UseMaterialRequest) (*dto.LedgerOperationResponse, error) {
	if in.MaterialID == "" {
		metrics.LedgerOps.WithLabelValues("use", metrics.ResultRejected).Inc()
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		metrics.LedgerOps.WithLabelValues("use", metrics.ResultRejected).Inc()
		return nil, domain.ErrInvalidQuantity
	}

	var out *dto.LedgerOperationResponse
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		// Bloquea la fila del material para serializar use/restock concurrentes
		material, err := materialRepo.GetForUpdate(companyID, in.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		if material.CurrentStock.LessThan(in.Quantity) {
			return &domain.InsufficientStockError{Available: material.CurrentStock}
		}

		now := time.Now()
		entry := &entity.UsageEntry{
			ID:         uuid.New().String(),
			MaterialID: material.ID,
			Quantity:   in.Quantity,
			UsedBy:     userID,
			Project:    in.Project,
			Note:       in.Note,
			Cost:       in.Quantity.Mul(material.UnitCost),
			CreatedAt:  now,
		}
		if err := ledgerRepo.AppendUsage(entry); err != nil {
			return err
		}

		material.CurrentStock = material.CurrentStock.Sub(in.Quantity)
		material.TotalQuantityUsed = material.TotalQuantityUsed.Add(in.Quantity)
		material.UpdatedAt = now
		if err := materialRepo.UpdateStock(material); err != nil {
			return err
		}

		out = &dto.LedgerOperationResponse{Material: *toMaterialResponse(material)}
		return nil
	})
	if err != nil {
		metrics.LedgerOps.WithLabelValues("use", ledgerResult(err)).Inc()
		return nil, err
	}
	metrics.LedgerOps.WithLabelValues("use", metrics.ResultOK).Inc()
	return out, nil
}

// Restock suma stock y registra la entrada en el historial de reabastecimiento.
// Un unit_cost provisto pasa a ser el costo de referencia del material (el costo del
// último reabastecimiento); si no viene, se conserva el actual. Superar el stock
// máximo no bloquea la operación: se devuelve un warning de negocio.
func (uc *LedgerUseCase) Restock(ctx context.Context, companyID, userID string, in dto.RestockMaterialRequest) (*dto.LedgerOperationResponse, error) {
	if in.MaterialID == "" {
		metrics.LedgerOps.WithLabelValues("restock", metrics.ResultRejected).Inc()
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		metrics.LedgerOps.WithLabelValues("restock", metrics.ResultRejected).Inc()
		return nil, domain.ErrInvalidQuantity
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		metrics.LedgerOps.WithLabelValues("restock", metrics.ResultRejected).Inc()
		return nil, domain.ErrInvalidInput
	}

	var out *dto.LedgerOperationResponse
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		ledgerRepo repository.LedgerRepository,
	) error {
		material, err := materialRepo.GetForUpdate(companyID, in.MaterialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}

		unitCost := material.UnitCost
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
		}

		now := time.Now()
		entry := &entity.RestockEntry{
			ID:            uuid.New().String(),
			MaterialID:    material.ID,
			Quantity:      in.Quantity,
			UnitCost:      unitCost,
			TotalCost:     in.Quantity.Mul(unitCost),
			Supplier:      in.Supplier,
			PurchaseOrder: in.PurchaseOrder,
			Note:          in.Note,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
		if err := ledgerRepo.AppendRestock(entry); err != nil {
			return err
		}

		material.CurrentStock = material.CurrentStock.Add(in.Quantity)
		material.TotalQuantityAdded = material.TotalQuantityAdded.Add(in.Quantity)
		material.UnitCost = unitCost
		material.LastRestocked = &now
		material.UpdatedAt = now
		if err := materialRepo.UpdateStock(material); err != nil {
			return err
		}

		out = &dto.LedgerOperationResponse{Material: *toMaterialResponse(material)}
		if material.MaximumStock != nil && material.CurrentStock.GreaterThan(*material.MaximumStock) {
			out.Warning = fmt.Sprintf(
				"el stock resultante (%s) supera el máximo configurado (%s)",
				material.CurrentStock.String(), material.MaximumStock.String(),
			)
			metrics.OverMaxWarnings.Inc()
		}
		return nil
	})
	if err != nil {
		metrics.LedgerOps.WithLabelValues("restock", ledgerResult(err)).Inc()
		return nil, err
	}
	metrics.LedgerOps.WithLabelValues("restock", metrics.ResultOK).Inc()
	return out, nil
}

// ledgerResult clasifica el error para el label result de las métricas.
func ledgerResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}
