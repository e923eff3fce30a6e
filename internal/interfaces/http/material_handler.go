package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/editorial-api/internal/application/catalog"
	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/application/inventory"
)

// MaterialHandler maneja las peticiones HTTP para materiales (protegido).
// Los datos descriptivos van al catálogo; umbral y precio pasan por el motor de stock.
type MaterialHandler struct {
	catalogUC *catalog.MaterialUseCase
	stockUC   *inventory.StockUseCase
	queryUC   *inventory.QueryUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(catalogUC *catalog.MaterialUseCase, stockUC *inventory.StockUseCase, queryUC *inventory.QueryUseCase) *MaterialHandler {
	return &MaterialHandler{catalogUC: catalogUC, stockUC: stockUC, queryUC: queryUC}
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MaterialRequest  true  "Datos del material"
// @Success      201   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.MaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.catalogUC.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return createdJSON(c, "material creado", out)
}

// Update godoc
// @Summary      Actualizar material (sin tocar existencia)
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del material"
// @Param        body  body  dto.MaterialRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.Result
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [put]
func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.MaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.catalogUC.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "material actualizado", out)
}

// Get godoc
// @Summary      Detalle de material con asientos recientes
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del material"
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.queryUC.MaterialDetail(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "material", out)
}

// List godoc
// @Summary      Listar materiales sin paginar (selector)
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        name  query  string  false  "Filtro por nombre"
// @Success      200   {object}  dto.Result
// @Router       /api/materials/all [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	out, err := h.catalogUC.List(c.Context(), c.Query("name"))
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "materiales", out)
}

// Page godoc
// @Summary      Listar materiales paginados
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        name       query  string  false  "Filtro por nombre"
// @Param        page       query  int     false  "Página"           default(1)
// @Param        page_size  query  int     false  "Tamaño de página" default(10)
// @Success      200  {object}  dto.Result
// @Router       /api/materials [get]
func (h *MaterialHandler) Page(c *fiber.Ctx) error {
	var in dto.MaterialPageRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.catalogUC.Page(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "materiales", out)
}

// Logs godoc
// @Summary      Asientos de stock de un material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id     path   int  true   "ID del material"
// @Param        limit  query  int  false  "Máximo de asientos"  default(50)
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/logs [get]
func (h *MaterialHandler) Logs(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.queryUC.MaterialLogs(c.Context(), id, c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "asientos", out)
}

// SetSafetyStock godoc
// @Summary      Fijar umbral de seguridad
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del material"
// @Param        body  body  dto.SetSafetyStockRequest  true  "Nuevo umbral"
// @Success      200   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/safety-stock [put]
func (h *MaterialHandler) SetSafetyStock(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SetSafetyStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	m, err := h.stockUC.SetSafetyStock(c.Context(), id, in.SafetyStock)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "umbral actualizado", inventory.MaterialToDTO(m))
}

// SetUnitPrice godoc
// @Summary      Fijar precio estándar de referencia
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del material"
// @Param        body  body  dto.SetUnitPriceRequest  true  "Nuevo precio"
// @Success      200   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/price [put]
func (h *MaterialHandler) SetUnitPrice(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SetUnitPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	m, err := h.stockUC.SetUnitPrice(c.Context(), id, in.UnitPrice)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "precio actualizado", inventory.MaterialToDTO(m))
}
