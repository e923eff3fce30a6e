package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/editorial-api/internal/application/catalog"
	"github.com/jhoicas/editorial-api/internal/application/dto"
)

// EmployeeHandler maneja la plantilla de empleados (protegido).
type EmployeeHandler struct {
	uc *catalog.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *catalog.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EmployeeRequest  true  "Nombre, puesto y fecha de alta"
// @Success      201   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.EmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return createdJSON(c, "empleado registrado", out)
}

// Update godoc
// @Summary      Actualizar datos de un empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del empleado"
// @Param        body  body  dto.EmployeeRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.Result
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.EmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "empleado actualizado", out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado laboral de un empleado
// @Description  inactive impide asignarle nuevas tareas; las existentes no se tocan.
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del empleado"
// @Param        body  body  dto.EmployeeStatusRequest  true  "active o inactive"
// @Success      200   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/status [put]
func (h *EmployeeHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.EmployeeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "estado actualizado", out)
}

// Delete godoc
// @Summary      Eliminar empleado (solo admin)
// @Description  Rechazado si el empleado tiene tareas asignadas.
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del empleado"
// @Success      200  {object}  dto.Result
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "empleado eliminado", nil)
}

// Get godoc
// @Summary      Detalle de empleado
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del empleado"
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "empleado", out)
}

// Page godoc
// @Summary      Listar empleados paginados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        name       query  string  false  "Filtro por nombre"
// @Param        status     query  string  false  "active o inactive"
// @Param        page       query  int     false  "Página"           default(1)
// @Param        page_size  query  int     false  "Tamaño de página" default(10)
// @Success      200  {object}  dto.Result
// @Router       /api/employees [get]
func (h *EmployeeHandler) Page(c *fiber.Ctx) error {
	var in dto.EmployeePageRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Page(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "empleados", out)
}
