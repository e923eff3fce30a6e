package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/editorial-api/internal/application/catalog"
	"github.com/jhoicas/editorial-api/internal/application/dto"
)

// LinkHandler maneja los vínculos material-proveedor (protegido).
type LinkHandler struct {
	uc *catalog.LinkUseCase
}

// NewLinkHandler construye el handler.
func NewLinkHandler(uc *catalog.LinkUseCase) *LinkHandler {
	return &LinkHandler{uc: uc}
}

// Create godoc
// @Summary      Vincular material con proveedor
// @Description  Fija el precio acordado. Un material admite un único vínculo por proveedor.
// @Tags         links
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LinkRequest  true  "material_id, supplier_id, unit_price, preferred"
// @Success      201   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/links [post]
func (h *LinkHandler) Create(c *fiber.Ctx) error {
	var in dto.LinkRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return createdJSON(c, "vínculo creado", out)
}

// Update godoc
// @Summary      Actualizar precio o preferencia de un vínculo
// @Tags         links
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del vínculo"
// @Param        body  body  dto.LinkRequest  true  "unit_price y preferred"
// @Success      200   {object}  dto.Result
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/links/{id} [put]
func (h *LinkHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.LinkRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "vínculo actualizado", out)
}

// Delete godoc
// @Summary      Eliminar un vínculo material-proveedor (solo admin)
// @Description  Rechazado si el vínculo tiene compras asociadas.
// @Tags         links
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del vínculo"
// @Success      200  {object}  dto.Result
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/links/{id} [delete]
func (h *LinkHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "vínculo eliminado", nil)
}

// ListByMaterial godoc
// @Summary      Vínculos de un material con sus proveedores
// @Tags         links
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del material"
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/links [get]
func (h *LinkHandler) ListByMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListByMaterial(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "vínculos", out)
}

// ListAll godoc
// @Summary      Todos los vínculos material-proveedor
// @Tags         links
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Result
// @Router       /api/links [get]
func (h *LinkHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "vínculos", out)
}
