package repository

import (
	"time"

	"github.com/jhoicas/editorial-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para compras (DIP).
type PurchaseOrderRepository interface {
	GetByID(id int64) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la fila de la compra (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id int64) (*entity.PurchaseOrder, error)
	// GetView devuelve la compra con material, proveedor y precio del vínculo.
	GetView(id int64) (*entity.PurchaseOrderView, error)
	Create(p *entity.PurchaseOrder) error
	UpdateStatus(id int64, status entity.PurchaseStatus, receiptDate *time.Time) error
	ListByTask(taskID int64) ([]*entity.PurchaseOrderView, error)
	Page(status entity.PurchaseStatus, taskID int64, limit, offset int) ([]*entity.PurchaseOrderView, int, error)
}
