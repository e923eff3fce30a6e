package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un empleado y asigna el ID generado.
func (r *EmployeeRepo) Create(e *entity.Employee) error {
	query := `
		INSERT INTO employees (name, position, status, hired_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query, e.Name, e.Position, e.Status, e.HiredAt).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(id int64) (*entity.Employee, error) {
	query := `
		SELECT id, name, position, status, hired_at
		FROM employees WHERE id = $1`
	var e entity.Employee
	err := r.q.QueryRow(context.Background(), query, id).Scan(&e.ID, &e.Name, &e.Position, &e.Status, &e.HiredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// Page lista empleados paginados (los contratados más recientes primero) con el total de coincidencias.
func (r *EmployeeRepo) Page(nameKw, status string, limit, offset int) ([]*entity.Employee, int, error) {
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
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM employees`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	query := `
		SELECT id, name, position, status, hired_at
		FROM employees` + where + fmt.Sprintf(" ORDER BY hired_at DESC NULLS LAST, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("page employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Position, &e.Status, &e.HiredAt); err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}

// Update actualiza nombre, puesto y fecha de contratación. El estado se cambia con UpdateStatus.
func (r *EmployeeRepo) Update(e *entity.Employee) error {
	query := `
		UPDATE employees SET name = $2, position = $3, hired_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, e.ID, e.Name, e.Position, e.HiredAt)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado laboral del empleado.
func (r *EmployeeRepo) UpdateStatus(id int64, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE employees SET status = $2 WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update employee status: %w", err)
	}
	return nil
}

// Delete elimina un empleado. Si tiene tareas asignadas la base lo rechaza (FK).
func (r *EmployeeRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewValidation("id", "el empleado tiene tareas asignadas y no puede eliminarse")
		}
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}
