package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/editorial-api/internal/domain/entity"
)

// MaterialRepository define el puerto de persistencia para materiales (DIP).
// La existencia (Quantity) solo se toca vía UpdateQuantity dentro de transacciones
// del motor de stock; no hay Delete porque los materiales no se eliminan.
type MaterialRepository interface {
	GetByID(id int64) (*entity.Material, error)
	// GetForUpdate bloquea la fila del material (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id int64) (*entity.Material, error)
	List(nameKw string) ([]*entity.Material, error)
	Page(nameKw string, limit, offset int) ([]*entity.Material, int, error)
	// ListBelowSafety devuelve los materiales con quantity <= safety_stock.
	ListBelowSafety() ([]*entity.Material, error)
	Create(m *entity.Material) error
	Update(m *entity.Material) error
	UpdateQuantity(id int64, qty decimal.Decimal) error
	SetSafetyStock(id int64, qty decimal.Decimal) error
	SetUnitPrice(id int64, price decimal.Decimal) error
}
