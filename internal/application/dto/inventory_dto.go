package dto

import "github.com/shopspring/decimal"

// StockChangeRequest una variación de stock dentro de un lote (o suelta).
// Kind es opcional: si falta, se deduce del signo del delta.
type StockChangeRequest struct {
	MaterialID int64           `json:"material_id"`
	Delta      decimal.Decimal `json:"delta"`
	Kind       string          `json:"kind,omitempty"` // in | out | adjust
	Reference  string          `json:"reference,omitempty"`
	Note       string          `json:"note,omitempty"`
}

// BatchStockRequest body para POST /api/inventory/changes.
type BatchStockRequest struct {
	Changes []StockChangeRequest `json:"changes"`
}

// StockChangeResultDTO resultado por material de un lote aplicado.
type StockChangeResultDTO struct {
	MaterialID  int64           `json:"material_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	LogID       int64           `json:"log_id"`
}

// SetSafetyStockRequest body para ajustar el umbral de seguridad.
type SetSafetyStockRequest struct {
	SafetyStock decimal.Decimal `json:"safety_stock"`
}

// SetUnitPriceRequest body para ajustar el precio estándar.
type SetUnitPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// StockLogDTO asiento del libro de variaciones en respuestas.
type StockLogDTO struct {
	ID           int64           `json:"id"`
	MaterialID   int64           `json:"material_id"`
	MaterialName string          `json:"material_name,omitempty"`
	Delta        decimal.Decimal `json:"delta"`
	Kind         string          `json:"kind"`
	Reference    string          `json:"reference,omitempty"`
	OperatorID   int64           `json:"operator_id,omitempty"`
	OperatorName string          `json:"operator_name,omitempty"`
	Note         string          `json:"note,omitempty"`
	BatchID      string          `json:"batch_id,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

// LogSearchRequest query para GET /api/inventory/logs.
type LogSearchRequest struct {
	MaterialID  int64  `query:"material_id"`
	ReferenceKw string `query:"reference"`
	Days        int    `query:"days"`  // ventana hacia atrás; 30 por defecto
	Limit       int    `query:"limit"` // tope 1000
}

// MaterialDetailResponse material con sus asientos recientes.
type MaterialDetailResponse struct {
	Material MaterialDTO   `json:"material"`
	Logs     []StockLogDTO `json:"logs"`
}

// LowStockAlertDTO alerta de existencia bajo umbral.
type LowStockAlertDTO struct {
	MaterialID  int64           `json:"material_id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	SafetyStock decimal.Decimal `json:"safety_stock"`
	Severity    string          `json:"severity"` // CRITICAL | WARNING
}

// InventoryReportItemDTO línea por material del reporte de inventario.
type InventoryReportItemDTO struct {
	MaterialID  int64           `json:"material_id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	SafetyStock decimal.Decimal `json:"safety_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	StockValue  decimal.Decimal `json:"stock_value"`
	LowStock    bool            `json:"low_stock"`
}

// InventoryReportDTO datos del reporte de inventario (solo datos, sin formato).
type InventoryReportDTO struct {
	TotalMaterials int                      `json:"total_materials"`
	TotalValue     decimal.Decimal          `json:"total_value"`
	LowStockCount  int                      `json:"low_stock_count"`
	OutOfStock     int                      `json:"out_of_stock_count"`
	Items          []InventoryReportItemDTO `json:"items"`
}
