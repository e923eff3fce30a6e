package inventory

import (
	"context"

	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de stock.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		logRepo repository.StockLogRepository,
	) error) error
}
