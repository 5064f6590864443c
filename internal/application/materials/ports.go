package materials

import (
	"context"
	"time"

	"github.com/tu-usuario/materials-api/internal/domain/entity"
	"github.com/tu-usuario/materials-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de base de datos, con repos atados a la tx.
// Commit si fn retorna nil, Rollback en caso contrario. Es la garantía de que el cambio de
// stock y el append al historial se aplican juntos o no se aplican.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}

// ExcelExporter genera el libro XLSX con el inventario de materiales.
type ExcelExporter interface {
	MaterialsWorkbook(materials []*entity.Material) ([]byte, error)
}

// PDFReportGenerator genera el reporte PDF de bajo stock y valoración.
type PDFReportGenerator interface {
	LowStockReport(companyID string, materials []*entity.Material, generatedAt time.Time) ([]byte, error)
}
