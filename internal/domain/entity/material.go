package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa un insumo de imprenta (papel, tinta, etc.) controlado por inventario.
// Quantity solo se muta a través del motor de stock (nunca por CRUD directo); SafetyStock y
// UnitPrice tienen setters explícitos. Un material no se elimina en el flujo normal.
type Material struct {
	ID          int64
	Name        string
	Unit        string          // kg, resma, litro...
	Spec        string          // especificación técnica (gramaje, formato)
	Quantity    decimal.Decimal // existencia actual, nunca negativa
	SafetyStock decimal.Decimal
	UnitPrice   decimal.Decimal // precio estándar de referencia, no el de compra
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BelowSafety indica si la existencia está en o por debajo del umbral de seguridad.
func (m *Material) BelowSafety() bool {
	return m.Quantity.LessThanOrEqual(m.SafetyStock)
}

// OutOfStock indica existencia agotada.
func (m *Material) OutOfStock() bool {
	return m.Quantity.LessThanOrEqual(decimal.Zero)
}

// StockValue valor del inventario del material (existencia por precio estándar).
func (m *Material) StockValue() decimal.Decimal {
	return m.Quantity.Mul(m.UnitPrice)
}
