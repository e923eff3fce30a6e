package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/editorial-api/internal/application/inventory"
	"github.com/jhoicas/editorial-api/internal/application/printing"
	"github.com/jhoicas/editorial-api/internal/application/procurement"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// Ensure TxRunner implements the per-flow transaction ports.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ printing.TaskTxRunner = (*TxRunner)(nil)
var _ procurement.PurchaseTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materialRepo repository.MaterialRepository,
	logRepo repository.StockLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	materialRepo := NewMaterialRepository(tx)
	logRepo := NewStockLogRepository(tx)

	if err := fn(materialRepo, logRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunTask inicia una transacción con los repos del flujo de tareas de impresión
// (alta de tarea + generación de compras, o finalización con descuento de stock).
func (r *TxRunner) RunTask(ctx context.Context, fn func(
	taskRepo repository.PrintingTaskRepository,
	materialRepo repository.MaterialRepository,
	linkRepo repository.MaterialSupplierRepository,
	purchaseRepo repository.PurchaseOrderRepository,
	logRepo repository.StockLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	taskRepo := NewPrintingTaskRepository(tx)
	materialRepo := NewMaterialRepository(tx)
	linkRepo := NewMaterialSupplierRepository(tx)
	purchaseRepo := NewPurchaseOrderRepository(tx)
	logRepo := NewStockLogRepository(tx)

	if err := fn(taskRepo, materialRepo, linkRepo, purchaseRepo, logRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchase inicia una transacción con los repos del flujo de compras
// (recepción de compra con ingreso de stock).
func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseOrderRepository,
	linkRepo repository.MaterialSupplierRepository,
	materialRepo repository.MaterialRepository,
	logRepo repository.StockLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	purchaseRepo := NewPurchaseOrderRepository(tx)
	linkRepo := NewMaterialSupplierRepository(tx)
	materialRepo := NewMaterialRepository(tx)
	logRepo := NewStockLogRepository(tx)

	if err := fn(purchaseRepo, linkRepo, materialRepo, logRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
