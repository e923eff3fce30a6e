package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/application/printing"
	"github.com/jhoicas/editorial-api/internal/application/procurement"
)

// TaskHandler maneja las tareas de impresión (protegido).
type TaskHandler struct {
	submitUC   *printing.SubmitTaskUseCase
	statusUC   *printing.TaskStatusUseCase
	queryUC    *printing.TaskQueryUseCase
	purchaseUC *procurement.PurchaseQueryUseCase
}

// NewTaskHandler construye el handler.
func NewTaskHandler(submitUC *printing.SubmitTaskUseCase, statusUC *printing.TaskStatusUseCase, queryUC *printing.TaskQueryUseCase, purchaseUC *procurement.PurchaseQueryUseCase) *TaskHandler {
	return &TaskHandler{submitUC: submitUC, statusUC: statusUC, queryUC: queryUC, purchaseUC: purchaseUC}
}

// Submit godoc
// @Summary      Enviar tarea de impresión
// @Description  Calcula los materiales necesarios y genera una orden de compra por material con el proveedor óptimo. Sin proveedor elegible para algún material, nada se registra.
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitTaskRequest  true  "employee_id, book_id, quantity, due_date"
// @Success      201   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitTaskRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.submitUC.SubmitTask(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return createdJSON(c, "tarea enviada", out)
}

// Get godoc
// @Summary      Detalle de tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la tarea"
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.queryUC.Detail(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "tarea", out)
}

// Requirements godoc
// @Summary      Materiales requeridos por una tarea
// @Description  Compara lo requerido contra la existencia actual e indica faltantes.
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la tarea"
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/requirements [get]
func (h *TaskHandler) Requirements(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.queryUC.Requirements(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "requerimientos", out)
}

// Purchases godoc
// @Summary      Compras generadas por una tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la tarea"
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/purchases [get]
func (h *TaskHandler) Purchases(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.purchaseUC.ListByTask(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "compras", out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una tarea
// @Description  pending→in_progress exige stock suficiente y lo descuenta en la misma transacción.
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la tarea"
// @Param        body  body  dto.TaskStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/status [put]
func (h *TaskHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.TaskStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.statusUC.UpdateStatus(c.Context(), id, GetUserID(c), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "estado actualizado", out)
}

// Complete godoc
// @Summary      Marcar tarea como completada
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la tarea"
// @Param        body  body  dto.CompleteTaskRequest  false  "Fecha de término; hoy si falta"
// @Success      200   {object}  dto.Result
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/complete [post]
func (h *TaskHandler) Complete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.CompleteTaskRequest
	// El cuerpo es opcional: sin body, la fecha de término es hoy.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.statusUC.Complete(c.Context(), id, GetUserID(c), in.CompletedDate)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "tarea completada", out)
}

// Page godoc
// @Summary      Listar tareas paginadas
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "pending, in_progress, completed o cancelled"
// @Param        page       query  int     false  "Página"           default(1)
// @Param        page_size  query  int     false  "Tamaño de página" default(10)
// @Success      200  {object}  dto.Result
// @Router       /api/tasks [get]
func (h *TaskHandler) Page(c *fiber.Ctx) error {
	var in dto.TaskPageRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.queryUC.Page(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "tareas", out)
}

// Overdue godoc
// @Summary      Tareas vencidas sin terminar
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Result
// @Router       /api/tasks/overdue [get]
func (h *TaskHandler) Overdue(c *fiber.Ctx) error {
	out, err := h.queryUC.Overdue(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "tareas vencidas", out)
}
