package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/licitapro/licitaciones-api/internal/application/dto"
	"github.com/licitapro/licitaciones-api/internal/application/usecase"
	"github.com/licitapro/licitaciones-api/internal/domain/entity"
)

// TenderHandler maneja las peticiones HTTP para licitaciones y sus notas.
// El gate de módulos (tender_management, notes) se aplica en el router.
type TenderHandler struct {
	uc *usecase.TenderUseCase
}

// NewTenderHandler construye el handler inyectando el caso de uso.
func NewTenderHandler(uc *usecase.TenderUseCase) *TenderHandler {
	return &TenderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear licitación
// @Tags         tenders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTenderRequest  true  "Datos de la licitación"
// @Success      201   {object}  dto.TenderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tenders [post]
func (h *TenderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Reference == "" || in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reference y title son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener licitación por ID
// @Tags         tenders
// @Produce      json
// @Param        id   path  string  true  "ID de la licitación"
// @Success      200  {object}  dto.TenderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tenders/{id} [get]
func (h *TenderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar licitaciones de la empresa
// @Tags         tenders
// @Produce      json
// @Success      200  {object}  dto.TenderListResponse
// @Router       /api/tenders [get]
func (h *TenderHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update modifica una licitación de la empresa.
func (h *TenderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTenderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una licitación de la empresa. Requiere capability can_delete,
// verificada aquí porque depende del set resuelto, no de un módulo fijo.
func (h *TenderHandler) Delete(c *fiber.Ctx) error {
	ps, ok := GetPermissionSet(c)
	if !ok || !ps.Can(entity.CanDelete) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene permiso para eliminar"})
	}
	if err := h.uc.Delete(c.Context(), GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddNote godoc
// @Summary      Agregar nota interna a una licitación
// @Tags         tenders
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la licitación"
// @Param        body  body  dto.CreateNoteRequest  true  "Contenido de la nota"
// @Success      201   {object}  dto.NoteResponse
// @Failure      403   {object}  dto.ErrorResponse  "MODULE_NOT_ENABLED si notes está inactivo"
// @Router       /api/tenders/{id}/notes [post]
func (h *TenderHandler) AddNote(c *fiber.Ctx) error {
	var in dto.CreateNoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body es requerido"})
	}
	out, err := h.uc.AddNote(c.Context(), GetCompanyID(c), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListNotes lista las notas internas de una licitación.
func (h *TenderHandler) ListNotes(c *fiber.Ctx) error {
	out, err := h.uc.ListNotes(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
