package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un nuevo material y asigna el ID generado.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (name, unit, spec, quantity, safety_stock, unit_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.Name, m.Unit, m.Spec, m.Quantity, m.SafetyStock, m.UnitPrice, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material por ID.
func (r *MaterialRepo) GetByID(id int64) (*entity.Material, error) {
	query := `
		SELECT id, name, unit, spec, quantity, safety_stock, unit_price, created_at, updated_at
		FROM materials WHERE id = $1`
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Unit, &m.Spec, &m.Quantity, &m.SafetyStock, &m.UnitPrice, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// GetForUpdate obtiene el material y bloquea la fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *MaterialRepo) GetForUpdate(id int64) (*entity.Material, error) {
	query := `
		SELECT id, name, unit, spec, quantity, safety_stock, unit_price, created_at, updated_at
		FROM materials WHERE id = $1
		FOR UPDATE`
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Name, &m.Unit, &m.Spec, &m.Quantity, &m.SafetyStock, &m.UnitPrice, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material for update: %w", err)
	}
	return &m, nil
}

// List lista materiales filtrando por nombre (coincidencia parcial, sin distinguir mayúsculas).
func (r *MaterialRepo) List(nameKw string) ([]*entity.Material, error) {
	query := `
		SELECT id, name, unit, spec, quantity, safety_stock, unit_price, created_at, updated_at
		FROM materials`
	args := []any{}
	if nameKw != "" {
		query += ` WHERE name ILIKE $1`
		args = append(args, "%"+nameKw+"%")
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Unit, &m.Spec, &m.Quantity, &m.SafetyStock, &m.UnitPrice, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Page lista materiales paginados con el total de coincidencias.
func (r *MaterialRepo) Page(nameKw string, limit, offset int) ([]*entity.Material, int, error) {
	where := ``
	args := []any{}
	if nameKw != "" {
		where = ` WHERE name ILIKE $1`
		args = append(args, "%"+nameKw+"%")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM materials`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count materials: %w", err)
	}

	query := `
		SELECT id, name, unit, spec, quantity, safety_stock, unit_price, created_at, updated_at
		FROM materials` + where + fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("page materials: %w", err)
	}
	defer rows.Close()

	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Unit, &m.Spec, &m.Quantity, &m.SafetyStock, &m.UnitPrice, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// ListBelowSafety lista los materiales con existencia en o por debajo del umbral de seguridad.
func (r *MaterialRepo) ListBelowSafety() ([]*entity.Material, error) {
	query := `
		SELECT id, name, unit, spec, quantity, safety_stock, unit_price, created_at, updated_at
		FROM materials WHERE quantity <= safety_stock ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list materials below safety: %w", err)
	}
	defer rows.Close()

	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Unit, &m.Spec, &m.Quantity, &m.SafetyStock, &m.UnitPrice, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update actualiza los datos descriptivos del material. No toca quantity (motor de stock).
func (r *MaterialRepo) Update(m *entity.Material) error {
	query := `
		UPDATE materials SET name = $2, unit = $3, spec = $4, safety_stock = $5, unit_price = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Name, m.Unit, m.Spec, m.SafetyStock, m.UnitPrice, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

// UpdateQuantity fija la existencia del material (solo desde el motor de stock, dentro de tx).
func (r *MaterialRepo) UpdateQuantity(id int64, qty decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materials SET quantity = $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("update material quantity: %w", err)
	}
	return nil
}

// SetSafetyStock fija el umbral de seguridad del material.
func (r *MaterialRepo) SetSafetyStock(id int64, qty decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materials SET safety_stock = $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("set material safety stock: %w", err)
	}
	return nil
}

// SetUnitPrice fija el precio estándar de referencia del material.
func (r *MaterialRepo) SetUnitPrice(id int64, price decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE materials SET unit_price = $2, updated_at = now() WHERE id = $1`,
		id, price,
	)
	if err != nil {
		return fmt.Errorf("set material unit price: %w", err)
	}
	return nil
}
