package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/editorial-api/internal/application/catalog"
	"github.com/jhoicas/editorial-api/internal/application/dto"
)

// SupplierHandler maneja las peticiones HTTP para proveedores (protegido).
type SupplierHandler struct {
	uc *catalog.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *catalog.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return createdJSON(c, "proveedor creado", out)
}

// Update godoc
// @Summary      Actualizar datos de contacto de un proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del proveedor"
// @Param        body  body  dto.SupplierRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.Result
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "proveedor actualizado", out)
}

// UpdateStatus godoc
// @Summary      Alternar cooperación con un proveedor
// @Description  terminated lo excluye de nuevas compras; su historial queda intacto.
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del proveedor"
// @Param        body  body  dto.SupplierStatusRequest  true  "active o terminated"
// @Success      200   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id}/status [put]
func (h *SupplierHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SupplierStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "estado actualizado", out)
}

// Get godoc
// @Summary      Detalle de proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del proveedor"
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [get]
func (h *SupplierHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "proveedor", out)
}

// List godoc
// @Summary      Listar proveedores sin paginar (selector)
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        name    query  string  false  "Filtro por nombre"
// @Param        status  query  string  false  "active o terminated"
// @Success      200  {object}  dto.Result
// @Router       /api/suppliers/all [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("name"), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "proveedores", out)
}

// Page godoc
// @Summary      Listar proveedores paginados
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        name       query  string  false  "Filtro por nombre"
// @Param        status     query  string  false  "active o terminated"
// @Param        page       query  int     false  "Página"           default(1)
// @Param        page_size  query  int     false  "Tamaño de página" default(10)
// @Success      200  {object}  dto.Result
// @Router       /api/suppliers [get]
func (h *SupplierHandler) Page(c *fiber.Ctx) error {
	var in dto.SupplierPageRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Page(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "proveedores", out)
}
