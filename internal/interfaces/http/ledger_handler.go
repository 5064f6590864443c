package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/materials-api/internal/application/dto"
	"github.com/tu-usuario/materials-api/internal/application/materials"
)

// LedgerHandler maneja las operaciones que mueven stock: uso y reabastecimiento.
type LedgerHandler struct {
	uc *materials.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *materials.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// Use godoc
// @Summary      Registrar consumo de material
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UseMaterialRequest  true  "Material, cantidad y proyecto"
// @Success      200   {object}  dto.LedgerOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/use [post]
func (h *LedgerHandler) Use(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.UseMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Use(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Restock godoc
// @Summary      Registrar reabastecimiento de material
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RestockMaterialRequest  true  "Material, cantidad y costo"
// @Success      200   {object}  dto.LedgerOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/restock [post]
func (h *LedgerHandler) Restock(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.RestockMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Restock(c.UserContext(), companyID, GetUserID(c), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
