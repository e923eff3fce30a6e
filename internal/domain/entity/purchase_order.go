package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus estado de una compra de material.
type PurchaseStatus string

// Estados de compra.
const (
	PurchaseStatusToPurchase PurchaseStatus = "to_purchase" // pendiente de gestionar
	PurchaseStatusOrdered    PurchaseStatus = "ordered"     // pedido colocado al proveedor
	PurchaseStatusReceived   PurchaseStatus = "received"    // material recibido e ingresado a stock
	PurchaseStatusCancelled  PurchaseStatus = "cancelled"
)

// IsValid indica si el valor es un estado de compra conocido.
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusToPurchase, PurchaseStatusOrdered, PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func (s PurchaseStatus) IsTerminal() bool {
	return s == PurchaseStatusReceived || s == PurchaseStatusCancelled
}

// CanTransitionTo valida la tabla de transiciones del flujo de compras.
// received no es alcanzable por cambio genérico de estado: solo vía recepción (CanReceive).
func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	if target == PurchaseStatusReceived {
		return false
	}
	switch s {
	case PurchaseStatusToPurchase:
		return target == PurchaseStatusOrdered || target == PurchaseStatusCancelled
	case PurchaseStatusOrdered:
		return target == PurchaseStatusCancelled
	}
	return false
}

// CanReceive indica si la compra puede recibirse (solo desde to_purchase).
func (s PurchaseStatus) CanReceive() bool {
	return s == PurchaseStatusToPurchase
}

// PurchaseOrder compra de material generada por una tarea de impresión.
// TotalCost queda fijado en la creación con el precio del vínculo en ese momento;
// no se recalcula después aunque el vínculo cambie de precio.
type PurchaseOrder struct {
	ID          int64
	TaskID      int64
	LinkID      int64           // vínculo material-proveedor usado
	Quantity    decimal.Decimal
	TotalCost   decimal.Decimal // Quantity por precio del vínculo, redondeado a 2
	Status      PurchaseStatus
	ReceiptDate *time.Time
	CreatedAt   time.Time
}

// PurchaseOrderView compra enriquecida con datos del vínculo para listados.
type PurchaseOrderView struct {
	PurchaseOrder
	MaterialID    int64
	MaterialName  string
	SupplierID    int64
	SupplierName  string
	LinkUnitPrice decimal.Decimal
}
