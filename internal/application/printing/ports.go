package printing

import (
	"context"
	"time"

	"github.com/jhoicas/editorial-api/internal/application/inventory"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// TaskTxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios del flujo de tareas: tarea, materiales, vínculos, compras y
// libro de variaciones.
type TaskTxRunner interface {
	RunTask(ctx context.Context, fn func(
		taskRepo repository.PrintingTaskRepository,
		materialRepo repository.MaterialRepository,
		linkRepo repository.MaterialSupplierRepository,
		purchaseRepo repository.PurchaseOrderRepository,
		logRepo repository.StockLogRepository,
	) error) error
}

// StockEngine integra el flujo de tareas con el motor de stock.
// ApplyChangesInTx aplica un lote usando los repositorios del caller (misma
// transacción). Si retorna error (ej: stock insuficiente), el caller debe
// hacer rollback.
type StockEngine interface {
	ApplyChangesInTx(
		ctx context.Context,
		materialRepo repository.MaterialRepository,
		logRepo repository.StockLogRepository,
		operatorID int64,
		changes []inventory.StockChangeInput,
		now time.Time,
		batchID string,
	) ([]inventory.StockChangeResult, error)
}

// El motor de stock concreto debe satisfacer el puerto.
var _ StockEngine = (*inventory.StockUseCase)(nil)
