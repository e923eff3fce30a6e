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

var _ repository.PrintingTaskRepository = (*PrintingTaskRepo)(nil)

// PrintingTaskRepo implementación del puerto PrintingTaskRepository sobre PostgreSQL (usable con pool o tx).
type PrintingTaskRepo struct {
	q Querier
}

// NewPrintingTaskRepository construye el adaptador de persistencia para tareas. Pasar pool o tx (Querier).
func NewPrintingTaskRepository(q Querier) *PrintingTaskRepo {
	return &PrintingTaskRepo{q: q}
}

// Create persiste una tarea de impresión y asigna el ID generado.
func (r *PrintingTaskRepo) Create(t *entity.PrintingTask) error {
	query := `
		INSERT INTO printing_tasks (employee_id, book_id, quantity, due_date, status, submitted_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		t.EmployeeID, t.BookID, t.Quantity, t.DueDate, t.Status, t.SubmittedAt, t.CompletedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert printing task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *PrintingTaskRepo) GetByID(id int64) (*entity.PrintingTask, error) {
	query := `
		SELECT id, employee_id, book_id, quantity, due_date, status, submitted_at, completed_at
		FROM printing_tasks WHERE id = $1`
	var t entity.PrintingTask
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.EmployeeID, &t.BookID, &t.Quantity, &t.DueDate, &t.Status, &t.SubmittedAt, &t.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get printing task: %w", err)
	}
	return &t, nil
}

// GetForUpdate obtiene la tarea y bloquea la fila (SELECT FOR UPDATE). Usar dentro de una tx.
func (r *PrintingTaskRepo) GetForUpdate(id int64) (*entity.PrintingTask, error) {
	query := `
		SELECT id, employee_id, book_id, quantity, due_date, status, submitted_at, completed_at
		FROM printing_tasks WHERE id = $1
		FOR UPDATE`
	var t entity.PrintingTask
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.EmployeeID, &t.BookID, &t.Quantity, &t.DueDate, &t.Status, &t.SubmittedAt, &t.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get printing task for update: %w", err)
	}
	return &t, nil
}

// GetView obtiene la tarea con nombre de empleado y título del libro.
func (r *PrintingTaskRepo) GetView(id int64) (*entity.PrintingTaskView, error) {
	query := `
		SELECT t.id, t.employee_id, t.book_id, t.quantity, t.due_date, t.status, t.submitted_at, t.completed_at,
		       e.name, b.title
		FROM printing_tasks t
		JOIN employees e ON e.id = t.employee_id
		JOIN books b ON b.id = t.book_id
		WHERE t.id = $1`
	var v entity.PrintingTaskView
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.EmployeeID, &v.BookID, &v.Quantity, &v.DueDate, &v.Status, &v.SubmittedAt, &v.CompletedAt,
		&v.EmployeeName, &v.BookTitle,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get printing task view: %w", err)
	}
	return &v, nil
}

// UpdateStatus cambia el estado de la tarea y fija la fecha real de terminación (nil la deja en NULL).
func (r *PrintingTaskRepo) UpdateStatus(id int64, status entity.TaskStatus, completedAt *time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE printing_tasks SET status = $2, completed_at = $3 WHERE id = $1`,
		id, status, completedAt,
	)
	if err != nil {
		return fmt.Errorf("update printing task status: %w", err)
	}
	return nil
}

// Page lista tareas paginadas, filtrando por estado, con el total de coincidencias.
func (r *PrintingTaskRepo) Page(status entity.TaskStatus, limit, offset int) ([]*entity.PrintingTaskView, int, error) {
	where := ``
	args := []any{}
	if status != "" {
		where = ` WHERE t.status = $1`
		args = append(args, status)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM printing_tasks t`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count printing tasks: %w", err)
	}

	query := `
		SELECT t.id, t.employee_id, t.book_id, t.quantity, t.due_date, t.status, t.submitted_at, t.completed_at,
		       e.name, b.title
		FROM printing_tasks t
		JOIN employees e ON e.id = t.employee_id
		JOIN books b ON b.id = t.book_id` +
		where + fmt.Sprintf(" ORDER BY t.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("page printing tasks: %w", err)
	}
	defer rows.Close()

	list, err := scanTaskViews(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListOverdue lista tareas abiertas con fecha prevista anterior a today, las más atrasadas primero.
func (r *PrintingTaskRepo) ListOverdue(today time.Time) ([]*entity.PrintingTaskView, error) {
	query := `
		SELECT t.id, t.employee_id, t.book_id, t.quantity, t.due_date, t.status, t.submitted_at, t.completed_at,
		       e.name, b.title
		FROM printing_tasks t
		JOIN employees e ON e.id = t.employee_id
		JOIN books b ON b.id = t.book_id
		WHERE t.status IN ('pending', 'in_progress') AND t.due_date < $1
		ORDER BY t.due_date, t.id`
	rows, err := r.q.Query(context.Background(), query, today)
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	defer rows.Close()
	return scanTaskViews(rows)
}

func scanTaskViews(rows pgx.Rows) ([]*entity.PrintingTaskView, error) {
	var list []*entity.PrintingTaskView
	for rows.Next() {
		var v entity.PrintingTaskView
		if err := rows.Scan(
			&v.ID, &v.EmployeeID, &v.BookID, &v.Quantity, &v.DueDate, &v.Status, &v.SubmittedAt, &v.CompletedAt,
			&v.EmployeeName, &v.BookTitle,
		); err != nil {
			return nil, fmt.Errorf("scan printing task: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
