// Package report implementa los generadores de archivos descargables:
// el inventario completo en XLSX y el reporte de stock bajo en PDF.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/materials-api/internal/application/materials"
	"github.com/tu-usuario/materials-api/internal/domain/entity"
)

var _ materials.ExcelExporter = (*ExcelExporter)(nil)

// ExcelExporter genera el libro XLSX del inventario con excelize.
type ExcelExporter struct{}

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// MaterialsWorkbook genera un libro con una hoja "Materiales": una fila por
// material, estado derivado incluido, ordenado como llega la lista.
func (e *ExcelExporter) MaterialsWorkbook(list []*entity.Material) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Materiales"
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	header := []interface{}{
		"SKU", "Nombre", "Categoría", "Unidad", "Estado",
		"Stock actual", "Stock mínimo", "Stock máximo",
		"Costo unitario", "Valor total",
		"Proveedor", "Ubicación",
		"Total ingresado", "Total consumido", "Último reabastecimiento",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}

	row := 2
	for _, m := range list {
		maxStock := ""
		if m.MaximumStock != nil {
			maxStock = m.MaximumStock.String()
		}
		lastRestocked := ""
		if m.LastRestocked != nil {
			lastRestocked = m.LastRestocked.Format("2006-01-02 15:04")
		}
		excelRow := []interface{}{
			m.SKU,
			m.Name,
			string(m.Category),
			string(m.Unit),
			string(m.Status()),
			m.CurrentStock.String(),
			m.MinimumStock.String(),
			maxStock,
			m.UnitCost.String(),
			m.CurrentStock.Mul(m.UnitCost).String(),
			m.Supplier,
			m.Location,
			m.TotalQuantityAdded.String(),
			m.TotalQuantityUsed.String(),
			lastRestocked,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", row, err)
		}
		row++
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return buf.Bytes(), nil
}
