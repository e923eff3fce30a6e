package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialSupplier vincula un material con un proveedor que lo ofrece a un precio dado.
// Un material puede tener varios vínculos; conceptualmente a lo sumo uno marcado Preferred
// (no se fuerza en la base de datos).
type MaterialSupplier struct {
	ID         int64
	MaterialID int64
	SupplierID int64
	UnitPrice  decimal.Decimal // precio ofrecido por el proveedor
	Preferred  bool
	CreatedAt  time.Time
}

// MaterialSupplierView vínculo enriquecido con nombres para listados y selección.
type MaterialSupplierView struct {
	MaterialSupplier
	MaterialName   string
	SupplierName   string
	SupplierStatus string
}
