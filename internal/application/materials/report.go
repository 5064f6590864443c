package materials

import (
	"fmt"
	"time"

	"github.com/tu-usuario/materials-api/internal/domain/entity"
	"github.com/tu-usuario/materials-api/internal/domain/repository"
)

// ReportUseCase genera los reportes descargables del inventario:
// export completo a XLSX y reporte PDF de bajo stock / valoración.
type ReportUseCase struct {
	repo     repository.MaterialRepository
	exporter ExcelExporter
	pdf      PDFReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.MaterialRepository, exporter ExcelExporter, pdf PDFReportGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, exporter: exporter, pdf: pdf}
}

// ExportXLSX exporta el inventario completo de la empresa a un libro XLSX.
func (uc *ReportUseCase) ExportXLSX(companyID string) ([]byte, error) {
	list, err := uc.repo.ListAll(companyID)
	if err != nil {
		return nil, fmt.Errorf("export: listar materiales: %w", err)
	}
	return uc.exporter.MaterialsWorkbook(list)
}

// LowStockPDF genera el reporte PDF con los materiales en low-stock y out-of-stock.
// Los descontinuados se excluyen: no son accionables para reposición.
func (uc *ReportUseCase) LowStockPDF(companyID string) ([]byte, error) {
	list, err := uc.repo.ListAll(companyID)
	if err != nil {
		return nil, fmt.Errorf("report: listar materiales: %w", err)
	}
	var flagged []*entity.Material
	for _, m := range list {
		switch m.Status() {
		case entity.StatusLowStock, entity.StatusOutOfStock:
			flagged = append(flagged, m)
		}
	}
	return uc.pdf.LowStockReport(companyID, flagged, time.Now())
}
