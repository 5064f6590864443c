package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/materials-api/internal/application/dto"
	"github.com/tu-usuario/materials-api/internal/application/materials"
)

// StatsHandler expone la vista agregada del inventario.
type StatsHandler struct {
	uc *materials.StatsUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *materials.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Overview godoc
// @Summary      Estadísticas del inventario
// @Tags         stats
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días para consumo y actividad"  default(30)
// @Success      200  {object}  dto.StatsResponse
// @Router       /api/materials/stats [get]
func (h *StatsHandler) Overview(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	days := c.QueryInt("days", 0)
	out, err := h.uc.Overview(c.UserContext(), companyID, days)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
