package procurement

import (
	"context"
	"time"

	"github.com/jhoicas/editorial-api/internal/application/inventory"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// PurchaseTxRunner ejecuta una función dentro de una transacción que incluye
// los repositorios del flujo de compras: compra, vínculos, materiales y libro
// de variaciones.
type PurchaseTxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseOrderRepository,
		linkRepo repository.MaterialSupplierRepository,
		materialRepo repository.MaterialRepository,
		logRepo repository.StockLogRepository,
	) error) error
}

// StockEngine integra la recepción de compras con el motor de stock.
// ApplyChangesInTx aplica un lote usando los repositorios del caller (misma
// transacción). Si retorna error, el caller debe hacer rollback.
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
