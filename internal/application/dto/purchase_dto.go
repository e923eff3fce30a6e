package dto

import "github.com/shopspring/decimal"

// CreatePurchaseRequest body para POST /api/purchases (alta manual).
type CreatePurchaseRequest struct {
	TaskID   int64           `json:"task_id"`
	LinkID   int64           `json:"link_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// PurchaseStatusRequest body para PUT /api/purchases/:id/status.
type PurchaseStatusRequest struct {
	Status string `json:"status"`
}

// ReceivePurchaseRequest body para POST /api/purchases/:id/receive.
type ReceivePurchaseRequest struct {
	ReceiptDate string `json:"receipt_date,omitempty"` // YYYY-MM-DD; hoy si falta
}

// PurchaseOrderDTO orden de compra en respuestas.
type PurchaseOrderDTO struct {
	ID            int64           `json:"id"`
	TaskID        int64           `json:"task_id"`
	LinkID        int64           `json:"link_id"`
	MaterialID    int64           `json:"material_id,omitempty"`
	MaterialName  string          `json:"material_name,omitempty"`
	SupplierID    int64           `json:"supplier_id,omitempty"`
	SupplierName  string          `json:"supplier_name,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	LinkUnitPrice decimal.Decimal `json:"link_unit_price,omitempty"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Status        string          `json:"status"`
	ReceiptDate   string          `json:"receipt_date,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

// ReceivePurchaseResponse resultado de recibir una orden: orden final y stock resultante.
type ReceivePurchaseResponse struct {
	Purchase    PurchaseOrderDTO `json:"purchase"`
	NewQuantity decimal.Decimal  `json:"new_quantity"`
	LogID       int64            `json:"log_id"`
}

// PurchasePageRequest query para GET /api/purchases.
type PurchasePageRequest struct {
	PageRequest
	Status string `query:"status"`
	TaskID int64  `query:"task_id"`
}

// PurchasePageResponse página de órdenes de compra.
type PurchasePageResponse struct {
	PageResponse
	Items []PurchaseOrderDTO `json:"items"`
}
