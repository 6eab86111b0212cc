package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/licitapro/licitaciones-api/internal/application/dto"
	"github.com/licitapro/licitaciones-api/internal/application/entitlement"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
	"github.com/licitapro/licitaciones-api/internal/domain/repository"
)

// ModuleHandler maneja el catálogo de módulos y los toggles por empresa.
type ModuleHandler struct {
	catalog *entitlement.Catalog
	store   *entitlement.Store
	entRepo repository.EntitlementRepository
}

// NewModuleHandler construye el handler del catálogo y entitlements.
func NewModuleHandler(catalog *entitlement.Catalog, store *entitlement.Store, entRepo repository.EntitlementRepository) *ModuleHandler {
	return &ModuleHandler{catalog: catalog, store: store, entRepo: entRepo}
}

// Catalog godoc
// @Summary      Catálogo de módulos activos
// @Tags         modules
// @Produce      json
// @Success      200  {array}  dto.ModuleResponse
// @Router       /api/modules [get]
func (h *ModuleHandler) Catalog(c *fiber.Ctx) error {
	defs, err := h.catalog.ListActive(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ModuleResponse, 0, len(defs))
	for _, d := range defs {
		out = append(out, toModuleResponse(d))
	}
	return c.JSON(out)
}

// CompanyModules devuelve cada módulo del catálogo con su estado actual en la
// empresa: data plana para la UI de toggles.
func (h *ModuleHandler) CompanyModules(c *fiber.Ctx) error {
	companyID := c.Params("id")
	if denied := h.checkCompanyScope(c, companyID); denied != nil {
		return denied
	}
	states, err := h.store.ListWithState(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ModuleStateResponse, 0, len(states))
	for _, s := range states {
		out = append(out, dto.ModuleStateResponse{
			Module:    toModuleResponse(s.Definition),
			IsEnabled: s.IsEnabled,
		})
	}
	return c.JSON(out)
}

// Toggle godoc
// @Summary      Activar/desactivar un módulo para una empresa
// @Tags         modules
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la empresa"
// @Param        name  path  string                   true  "Slug del módulo"
// @Param        body  body  dto.ToggleModuleRequest  true  "Estado deseado"
// @Success      200   {object}  dto.EntitlementResponse
// @Failure      400   {object}  dto.ErrorResponse  "CORE_MODULE si se desactiva un core"
// @Failure      404   {object}  dto.ErrorResponse  "UNKNOWN_MODULE si el slug no existe"
// @Router       /api/companies/{id}/modules/{name} [put]
func (h *ModuleHandler) Toggle(c *fiber.Ctx) error {
	companyID := c.Params("id")
	moduleName := c.Params("name")
	if denied := h.checkCompanyScope(c, companyID); denied != nil {
		return denied
	}
	var in dto.ToggleModuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.store.SetEnabled(c.Context(), companyID, moduleName, in.Enabled, GetUserID(c), in.Notes); err != nil {
		return respondError(c, err)
	}
	row, err := h.entRepo.GetByCompanyAndModule(c.Context(), companyID, moduleName)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toEntitlementResponse(row))
}

// BulkSetup aprovisiona los módulos iniciales de una empresa (core + feature,
// premium opcional). Idempotente; solo plataforma (super admin).
func (h *ModuleHandler) BulkSetup(c *fiber.Ctx) error {
	companyID := c.Params("id")
	var in dto.BulkSetupRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.store.BulkSetup(c.Context(), companyID, in.IncludePremium, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Entitlements devuelve las filas de entitlement de la empresa con su auditoría.
func (h *ModuleHandler) Entitlements(c *fiber.Ctx) error {
	companyID := c.Params("id")
	if denied := h.checkCompanyScope(c, companyID); denied != nil {
		return denied
	}
	rows, err := h.entRepo.ListByCompany(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.EntitlementResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toEntitlementResponse(row))
	}
	return c.JSON(out)
}

// MyPermissions devuelve la vista de permisos efectivos del usuario autenticado.
func (h *ModuleHandler) MyPermissions(c *fiber.Ctx) error {
	ps, ok := GetPermissionSet(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "permisos no resueltos"})
	}
	names := make([]string, 0, len(ps.EnabledModules))
	for n, on := range ps.EnabledModules {
		if on {
			names = append(names, n)
		}
	}
	return c.JSON(dto.PermissionsResponse{
		IsSuperAdmin:   ps.IsSuperAdmin,
		IsCompanyAdmin: ps.IsCompanyAdmin,
		AllModules:     ps.AllModules,
		EnabledModules: names,
		Capabilities:   ps.Capabilities,
	})
}

// checkCompanyScope impide que un admin de empresa toque otra empresa.
// Super admin opera sobre cualquiera.
func (h *ModuleHandler) checkCompanyScope(c *fiber.Ctx, companyID string) error {
	ps, ok := GetPermissionSet(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "permisos no resueltos"})
	}
	if ps.IsSuperAdmin || ps.CompanyID == companyID {
		return nil
	}
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no puede operar sobre otra empresa"})
}

func toModuleResponse(d *entity.ModuleDefinition) dto.ModuleResponse {
	return dto.ModuleResponse{
		Name:         d.Name,
		DisplayName:  d.DisplayName,
		Description:  d.Description,
		Category:     d.Category,
		IsCore:       d.IsCore,
		MonthlyPrice: d.MonthlyPrice,
		SortOrder:    d.SortOrder,
	}
}

func toEntitlementResponse(e *entity.CompanyModuleEntitlement) *dto.EntitlementResponse {
	if e == nil {
		return nil
	}
	return &dto.EntitlementResponse{
		ModuleName:       e.ModuleName,
		IsEnabled:        e.IsEnabled,
		EnabledAt:        e.EnabledAt,
		EnabledBy:        e.EnabledBy,
		DisabledAt:       e.DisabledAt,
		DisabledBy:       e.DisabledBy,
		BillingStartDate: e.BillingStartDate,
		Notes:            e.Notes,
	}
}
