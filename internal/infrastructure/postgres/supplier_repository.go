package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor y asigna el ID generado.
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (name, contact, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		s.Name, s.Contact, s.Phone, s.Status, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	query := `
		SELECT id, name, contact, phone, status, created_at, updated_at
		FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista proveedores filtrando por nombre (parcial) y estado de cooperación.
func (r *SupplierRepo) List(nameKw, status string) ([]*entity.Supplier, error) {
	query := `
		SELECT id, name, contact, phone, status, created_at, updated_at
		FROM suppliers WHERE 1=1`
	args := []any{}
	pos := 1
	if nameKw != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", pos)
		args = append(args, "%"+nameKw+"%")
		pos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += " ORDER BY name"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Page lista proveedores paginados con el total de coincidencias.
func (r *SupplierRepo) Page(nameKw, status string, limit, offset int) ([]*entity.Supplier, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	if nameKw != "" {
		where += fmt.Sprintf(" AND name ILIKE $%d", pos)
		args = append(args, "%"+nameKw+"%")
		pos++
	}
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM suppliers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count suppliers: %w", err)
	}

	query := `
		SELECT id, name, contact, phone, status, created_at, updated_at
		FROM suppliers` + where + fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("page suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Contact, &s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// Update actualiza los datos de contacto del proveedor. El estado se cambia con UpdateStatus.
func (r *SupplierRepo) Update(s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, contact = $3, phone = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Contact, s.Phone, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado de cooperación del proveedor.
func (r *SupplierRepo) UpdateStatus(id int64, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE suppliers SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update supplier status: %w", err)
	}
	return nil
}
