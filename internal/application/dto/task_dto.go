package dto

import "github.com/shopspring/decimal"

// SubmitTaskRequest body para POST /api/tasks.
type SubmitTaskRequest struct {
	EmployeeID int64  `json:"employee_id"`
	BookID     int64  `json:"book_id"`
	Quantity   int    `json:"quantity"`
	DueDate    string `json:"due_date"` // YYYY-MM-DD
}

// TaskStatusRequest body para PUT /api/tasks/:id/status.
type TaskStatusRequest struct {
	Status string `json:"status"`
}

// CompleteTaskRequest body para POST /api/tasks/:id/complete.
type CompleteTaskRequest struct {
	CompletedDate string `json:"completed_date,omitempty"` // YYYY-MM-DD; hoy si falta
}

// TaskDTO tarea de impresión en respuestas.
type TaskDTO struct {
	ID           int64  `json:"id"`
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	BookID       int64  `json:"book_id"`
	BookTitle    string `json:"book_title,omitempty"`
	Quantity     int    `json:"quantity"`
	DueDate      string `json:"due_date"`
	Status       string `json:"status"`
	SubmittedAt  string `json:"submitted_at"`
	CompletedAt  string `json:"completed_at,omitempty"`
	Overdue      bool   `json:"overdue"`
}

// SubmitTaskResponse tarea creada junto a las órdenes de compra generadas.
type SubmitTaskResponse struct {
	Task      TaskDTO            `json:"task"`
	Purchases []PurchaseOrderDTO `json:"purchases"`
}

// TaskDetailResponse tarea con sus órdenes de compra asociadas.
type TaskDetailResponse struct {
	Task      TaskDTO            `json:"task"`
	Purchases []PurchaseOrderDTO `json:"purchases"`
}

// RequirementDTO necesidad de material calculada para una tarea, comparada
// contra la existencia actual. Shortfall es cero cuando alcanza.
type RequirementDTO struct {
	MaterialID   int64           `json:"material_id"`
	MaterialName string          `json:"material_name,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

// TaskRequirementsResponse necesidades de una tarea con el total requerido.
type TaskRequirementsResponse struct {
	Task          TaskDTO          `json:"task"`
	Items         []RequirementDTO `json:"items"`
	TotalRequired decimal.Decimal  `json:"total_required"`
}

// ShortageItemDTO faltante detallado al intentar completar una tarea.
type ShortageItemDTO struct {
	MaterialID   int64           `json:"material_id"`
	MaterialName string          `json:"material_name,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

// TaskPageRequest query para GET /api/tasks.
type TaskPageRequest struct {
	PageRequest
	Status string `query:"status"`
}

// TaskPageResponse página de tareas.
type TaskPageResponse struct {
	PageResponse
	Items []TaskDTO `json:"items"`
}
