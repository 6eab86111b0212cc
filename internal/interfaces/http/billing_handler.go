package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/licitapro/licitaciones-api/internal/application/billing"
	"github.com/licitapro/licitaciones-api/internal/application/dto"
)

// BillingHandler expone el resumen de facturación y los overrides de precio.
type BillingHandler struct {
	calc *billing.Calculator
}

// NewBillingHandler construye el handler de facturación.
func NewBillingHandler(calc *billing.Calculator) *BillingHandler {
	return &BillingHandler{calc: calc}
}

// Summary godoc
// @Summary      Resumen de facturación mensual de una empresa
// @Tags         billing
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa"
// @Success      200  {object}  dto.BillingSummaryResponse
// @Router       /api/companies/{id}/billing [get]
func (h *BillingHandler) Summary(c *fiber.Ctx) error {
	companyID := c.Params("id")
	ps, ok := GetPermissionSet(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "permisos no resueltos"})
	}
	if !ps.IsSuperAdmin && ps.CompanyID != companyID {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no puede consultar otra empresa"})
	}
	lines, total, err := h.calc.Summary(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.BillingSummaryResponse{
		CompanyID:    companyID,
		Currency:     h.calc.Currency(),
		MonthlyTotal: total,
		Lines:        make([]dto.BillingLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.BillingLineResponse{
			ModuleName: l.ModuleName,
			Price:      l.Price,
			Overridden: l.Overridden,
		})
	}
	return c.JSON(out)
}

// SetCustomPrice godoc
// @Summary      Fijar precio negociado para (empresa, módulo)
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la empresa"
// @Param        name  path  string                     true  "Slug del módulo"
// @Param        body  body  dto.SetCustomPriceRequest  true  "Precio y vigencia"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse  "VALIDATION si el precio es negativo"
// @Router       /api/companies/{id}/pricing/{name} [put]
func (h *BillingHandler) SetCustomPrice(c *fiber.Ctx) error {
	companyID := c.Params("id")
	moduleName := c.Params("name")
	var in dto.SetCustomPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.calc.SetCustomPrice(c.Context(), companyID, moduleName, in.Price, GetUserID(c), in.Notes, in.EffectiveDate); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveCustomPrice desactiva el override del par; vuelve al precio de catálogo.
func (h *BillingHandler) RemoveCustomPrice(c *fiber.Ctx) error {
	companyID := c.Params("id")
	moduleName := c.Params("name")
	if err := h.calc.RemoveCustomPrice(c.Context(), companyID, moduleName); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
