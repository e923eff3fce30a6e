package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador de persistencia para compras. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste una compra y asigna el ID generado. TotalCost ya viene fijado por el usecase.
func (r *PurchaseOrderRepo) Create(p *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (task_id, link_id, quantity, total_cost, status, receipt_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.TaskID, p.LinkID, p.Quantity, p.TotalCost, p.Status, p.ReceiptDate, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID.
func (r *PurchaseOrderRepo) GetByID(id int64) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, task_id, link_id, quantity, total_cost, status, receipt_date, created_at
		FROM purchase_orders WHERE id = $1`
	var p entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.TaskID, &p.LinkID, &p.Quantity, &p.TotalCost, &p.Status, &p.ReceiptDate, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &p, nil
}

// GetForUpdate obtiene la compra y bloquea la fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *PurchaseOrderRepo) GetForUpdate(id int64) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, task_id, link_id, quantity, total_cost, status, receipt_date, created_at
		FROM purchase_orders WHERE id = $1
		FOR UPDATE`
	var p entity.PurchaseOrder
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.TaskID, &p.LinkID, &p.Quantity, &p.TotalCost, &p.Status, &p.ReceiptDate, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order for update: %w", err)
	}
	return &p, nil
}

// GetView obtiene la compra con material, proveedor y precio del vínculo.
func (r *PurchaseOrderRepo) GetView(id int64) (*entity.PurchaseOrderView, error) {
	query := `
		SELECT p.id, p.task_id, p.link_id, p.quantity, p.total_cost, p.status, p.receipt_date, p.created_at,
		       ms.material_id, m.name, ms.supplier_id, s.name, ms.unit_price
		FROM purchase_orders p
		JOIN material_suppliers ms ON ms.id = p.link_id
		JOIN materials m ON m.id = ms.material_id
		JOIN suppliers s ON s.id = ms.supplier_id
		WHERE p.id = $1`
	var v entity.PurchaseOrderView
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.TaskID, &v.LinkID, &v.Quantity, &v.TotalCost, &v.Status, &v.ReceiptDate, &v.CreatedAt,
		&v.MaterialID, &v.MaterialName, &v.SupplierID, &v.SupplierName, &v.LinkUnitPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order view: %w", err)
	}
	return &v, nil
}

// UpdateStatus cambia el estado de la compra y fija la fecha de recepción (nil la deja en NULL).
func (r *PurchaseOrderRepo) UpdateStatus(id int64, status entity.PurchaseStatus, receiptDate *time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE purchase_orders SET status = $2, receipt_date = $3 WHERE id = $1`,
		id, status, receiptDate,
	)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return nil
}

// ListByTask lista las compras generadas por una tarea.
func (r *PurchaseOrderRepo) ListByTask(taskID int64) ([]*entity.PurchaseOrderView, error) {
	query := `
		SELECT p.id, p.task_id, p.link_id, p.quantity, p.total_cost, p.status, p.receipt_date, p.created_at,
		       ms.material_id, m.name, ms.supplier_id, s.name, ms.unit_price
		FROM purchase_orders p
		JOIN material_suppliers ms ON ms.id = p.link_id
		JOIN materials m ON m.id = ms.material_id
		JOIN suppliers s ON s.id = ms.supplier_id
		WHERE p.task_id = $1
		ORDER BY p.id`
	rows, err := r.q.Query(context.Background(), query, taskID)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders by task: %w", err)
	}
	defer rows.Close()
	return scanPurchaseViews(rows)
}

// Page lista compras paginadas, filtrando por estado y/o tarea, con el total de coincidencias.
func (r *PurchaseOrderRepo) Page(status entity.PurchaseStatus, taskID int64, limit, offset int) ([]*entity.PurchaseOrderView, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	if status != "" {
		where += fmt.Sprintf(" AND p.status = $%d", pos)
		args = append(args, status)
		pos++
	}
	if taskID > 0 {
		where += fmt.Sprintf(" AND p.task_id = $%d", pos)
		args = append(args, taskID)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM purchase_orders p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count purchase orders: %w", err)
	}

	query := `
		SELECT p.id, p.task_id, p.link_id, p.quantity, p.total_cost, p.status, p.receipt_date, p.created_at,
		       ms.material_id, m.name, ms.supplier_id, s.name, ms.unit_price
		FROM purchase_orders p
		JOIN material_suppliers ms ON ms.id = p.link_id
		JOIN materials m ON m.id = ms.material_id
		JOIN suppliers s ON s.id = ms.supplier_id` +
		where + fmt.Sprintf(" ORDER BY p.id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("page purchase orders: %w", err)
	}
	defer rows.Close()

	list, err := scanPurchaseViews(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func scanPurchaseViews(rows pgx.Rows) ([]*entity.PurchaseOrderView, error) {
	var list []*entity.PurchaseOrderView
	for rows.Next() {
		var v entity.PurchaseOrderView
		if err := rows.Scan(
			&v.ID, &v.TaskID, &v.LinkID, &v.Quantity, &v.TotalCost, &v.Status, &v.ReceiptDate, &v.CreatedAt,
			&v.MaterialID, &v.MaterialName, &v.SupplierID, &v.SupplierName, &v.LinkUnitPrice,
		); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
