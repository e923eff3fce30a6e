package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/application/procurement"
)

// PurchaseHandler maneja las órdenes de compra (protegido).
type PurchaseHandler struct {
	uc      *procurement.PurchaseUseCase
	queryUC *procurement.PurchaseQueryUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *procurement.PurchaseUseCase, queryUC *procurement.PurchaseQueryUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, queryUC: queryUC}
}

// Create godoc
// @Summary      Crear orden de compra manual
// @Description  El costo total sale del precio del vínculo; la orden nace en to_purchase.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "task_id, link_id, quantity"
// @Success      201   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return createdJSON(c, "compra creada", out)
}

// Get godoc
// @Summary      Detalle de orden de compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.Result
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.queryUC.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "compra", out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una orden de compra
// @Description  received no se acepta por esta vía: usar /receive, que además ingresa el stock.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la orden"
// @Param        body  body  dto.PurchaseStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/status [put]
func (h *PurchaseHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.PurchaseStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.UpdateStatus(c.Context(), id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "estado actualizado", out)
}

// Receive godoc
// @Summary      Recibir una orden de compra
// @Description  Marca la orden como recibida e ingresa la cantidad al stock en la misma transacción.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la orden"
// @Param        body  body  dto.ReceivePurchaseRequest  false  "Fecha de recepción; hoy si falta"
// @Success      200   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.ReceivePurchaseRequest
	// El cuerpo es opcional: sin body, la fecha de recepción es hoy.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	}
	out, err := h.uc.Receive(c.Context(), id, GetUserID(c), in.ReceiptDate)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "compra recibida", out)
}

// Page godoc
// @Summary      Listar órdenes de compra paginadas
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        status     query  string  false  "to_purchase, ordered, received o cancelled"
// @Param        task_id    query  int     false  "Filtrar por tarea"
// @Param        page       query  int     false  "Página"           default(1)
// @Param        page_size  query  int     false  "Tamaño de página" default(10)
// @Success      200  {object}  dto.Result
// @Router       /api/purchases [get]
func (h *PurchaseHandler) Page(c *fiber.Ctx) error {
	var in dto.PurchasePageRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.queryUC.Page(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "compras", out)
}
