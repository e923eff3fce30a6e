package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

var _ repository.StockLogRepository = (*StockLogRepo)(nil)

// StockLogRepo implementación del puerto StockLogRepository sobre PostgreSQL (usable con pool o tx).
// Los asientos son inmutables: solo INSERT y SELECT.
type StockLogRepo struct {
	q Querier
}

// NewStockLogRepository construye el adaptador del libro de variaciones. Pasar pool o tx (Querier).
func NewStockLogRepository(q Querier) *StockLogRepo {
	return &StockLogRepo{q: q}
}

// Create persiste un asiento del libro de variaciones y asigna el ID generado.
func (r *StockLogRepo) Create(log *entity.StockLog) error {
	query := `
		INSERT INTO stock_logs (material_id, delta, kind, reference, operator_id, note, batch_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		log.MaterialID, log.Delta, log.Kind, log.Reference, log.OperatorID, log.Note, log.BatchID, log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("insert stock log: %w", err)
	}
	return nil
}

// ListByMaterial lista los asientos de un material, del más reciente al más antiguo.
func (r *StockLogRepo) ListByMaterial(materialID int64, limit int) ([]*entity.StockLogView, error) {
	query := `
		SELECT l.id, l.material_id, l.delta, l.kind, l.reference, l.operator_id, l.note, l.batch_id, l.created_at,
		       m.name, COALESCE(u.username, '')
		FROM stock_logs l
		JOIN materials m ON m.id = l.material_id
		LEFT JOIN users u ON u.id = l.operator_id
		WHERE l.material_id = $1
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, materialID, limit)
	if err != nil {
		return nil, fmt.Errorf("list stock logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockLogView
	for rows.Next() {
		var v entity.StockLogView
		if err := rows.Scan(
			&v.ID, &v.MaterialID, &v.Delta, &v.Kind, &v.Reference, &v.OperatorID, &v.Note, &v.BatchID, &v.CreatedAt,
			&v.MaterialName, &v.OperatorName,
		); err != nil {
			return nil, fmt.Errorf("scan stock log: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Search busca asientos según el filtro, del más reciente al más antiguo.
func (r *StockLogRepo) Search(f repository.StockLogFilter) ([]*entity.StockLogView, error) {
	query := `
		SELECT l.id, l.material_id, l.delta, l.kind, l.reference, l.operator_id, l.note, l.batch_id, l.created_at,
		       m.name, COALESCE(u.username, '')
		FROM stock_logs l
		JOIN materials m ON m.id = l.material_id
		LEFT JOIN users u ON u.id = l.operator_id
		WHERE 1=1`
	args := []any{}
	pos := 1
	if f.MaterialID > 0 {
		query += fmt.Sprintf(" AND l.material_id = $%d", pos)
		args = append(args, f.MaterialID)
		pos++
	}
	if f.ReferenceKw != "" {
		query += fmt.Sprintf(" AND l.reference ILIKE $%d", pos)
		args = append(args, "%"+f.ReferenceKw+"%")
		pos++
	}
	if f.Since != nil {
		query += fmt.Sprintf(" AND l.created_at >= $%d", pos)
		args = append(args, *f.Since)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY l.created_at DESC, l.id DESC LIMIT $%d", pos)
	args = append(args, f.Limit)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("search stock logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockLogView
	for rows.Next() {
		var v entity.StockLogView
		if err := rows.Scan(
			&v.ID, &v.MaterialID, &v.Delta, &v.Kind, &v.Reference, &v.OperatorID, &v.Note, &v.BatchID, &v.CreatedAt,
			&v.MaterialName, &v.OperatorName,
		); err != nil {
			return nil, fmt.Errorf("scan stock log: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
