package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/materials-api/internal/application/dto"
	"github.com/tu-usuario/materials-api/internal/application/materials"
)

// ReportHandler sirve los archivos descargables del inventario.
type ReportHandler struct {
	uc *materials.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *materials.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// ExportXLSX godoc
// @Summary      Exportar inventario completo a XLSX
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/materials/export [get]
func (h *ReportHandler) ExportXLSX(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	data, err := h.uc.ExportXLSX(companyID)
	if err != nil {
		return writeDomainError(c, err)
	}
	fileName := fmt.Sprintf("materiales_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	return c.Send(data)
}

// LowStockPDF godoc
// @Summary      Reporte PDF de materiales con stock bajo
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/materials/report [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	data, err := h.uc.LowStockPDF(companyID)
	if err != nil {
		return writeDomainError(c, err)
	}
	fileName := fmt.Sprintf("stock_bajo_%s.pdf", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	return c.Send(data)
}
