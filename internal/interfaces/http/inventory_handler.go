package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de variaciones de stock,
// consultas del libro y alertas (protegido).
type InventoryHandler struct {
	stockUC  *inventory.StockUseCase
	queryUC  *inventory.QueryUseCase
	alertsUC *inventory.AlertsUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stockUC *inventory.StockUseCase, queryUC *inventory.QueryUseCase, alertsUC *inventory.AlertsUseCase) *InventoryHandler {
	return &InventoryHandler{stockUC: stockUC, queryUC: queryUC, alertsUC: alertsUC}
}

func toChangeInputs(changes []dto.StockChangeRequest) []inventory.StockChangeInput {
	out := make([]inventory.StockChangeInput, 0, len(changes))
	for _, ch := range changes {
		out = append(out, inventory.StockChangeInput{
			MaterialID: ch.MaterialID,
			Delta:      ch.Delta,
			Kind:       ch.Kind,
			Reference:  ch.Reference,
			Note:       ch.Note,
		})
	}
	return out
}

func toChangeResults(results []inventory.StockChangeResult) []dto.StockChangeResultDTO {
	out := make([]dto.StockChangeResultDTO, 0, len(results))
	for _, r := range results {
		out = append(out, dto.StockChangeResultDTO{
			MaterialID:  r.MaterialID,
			NewQuantity: r.NewQuantity,
			LogID:       r.LogID,
		})
	}
	return out
}

// ApplyChanges godoc
// @Summary      Aplicar lote de variaciones de stock
// @Description  Todo o nada: si un ítem dejaría existencia negativa, el lote completo se revierte.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BatchStockRequest  true  "Variaciones con delta firmado"
// @Success      200   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/changes [post]
func (h *InventoryHandler) ApplyChanges(c *fiber.Ctx) error {
	var in dto.BatchStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	results, err := h.stockUC.ApplyChanges(c.Context(), GetUserID(c), toChangeInputs(in.Changes))
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "lote aplicado", toChangeResults(results))
}

// UpdateLevel godoc
// @Summary      Aplicar una variación de stock suelta
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockChangeRequest  true  "Variación con delta firmado"
// @Success      200   {object}  dto.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/change [post]
func (h *InventoryHandler) UpdateLevel(c *fiber.Ctx) error {
	var in dto.StockChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	result, err := h.stockUC.UpdateLevel(c.Context(), GetUserID(c), inventory.StockChangeInput{
		MaterialID: in.MaterialID,
		Delta:      in.Delta,
		Kind:       in.Kind,
		Reference:  in.Reference,
		Note:       in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "variación aplicada", dto.StockChangeResultDTO{
		MaterialID:  result.MaterialID,
		NewQuantity: result.NewQuantity,
		LogID:       result.LogID,
	})
}

// SearchLogs godoc
// @Summary      Buscar asientos del libro de variaciones
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        material_id  query  int     false  "Filtrar por material"
// @Param        reference    query  string  false  "Filtrar por referencia (parcial)"
// @Param        days         query  int     false  "Ventana hacia atrás en días"  default(30)
// @Param        limit        query  int     false  "Máximo de asientos"           default(500)
// @Success      200  {object}  dto.Result
// @Router       /api/inventory/logs [get]
func (h *InventoryHandler) SearchLogs(c *fiber.Ctx) error {
	var in dto.LogSearchRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.queryUC.SearchLogs(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "asientos", out)
}

// Alerts godoc
// @Summary      Materiales en o bajo su umbral de seguridad
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Result
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.alertsUC.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "alertas", out)
}

// Report godoc
// @Summary      Reporte de inventario valorizado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Result
// @Router       /api/inventory/report [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	out, err := h.alertsUC.Report(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return okJSON(c, "reporte", out)
}
