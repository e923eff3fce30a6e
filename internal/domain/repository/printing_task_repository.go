package repository

import (
	"time"

	"github.com/jhoicas/editorial-api/internal/domain/entity"
)

// PrintingTaskRepository define el puerto de persistencia para tareas de impresión (DIP).
// Las tareas no se eliminan: la única mutación posterior a la creación es el estado
// (y la fecha real de terminación).
type PrintingTaskRepository interface {
	GetByID(id int64) (*entity.PrintingTask, error)
	// GetForUpdate bloquea la fila de la tarea (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(id int64) (*entity.PrintingTask, error)
	GetView(id int64) (*entity.PrintingTaskView, error)
	Create(t *entity.PrintingTask) error
	UpdateStatus(id int64, status entity.TaskStatus, completedAt *time.Time) error
	Page(status entity.TaskStatus, limit, offset int) ([]*entity.PrintingTaskView, int, error)
	// ListOverdue lista tareas abiertas con fecha prevista anterior a today.
	ListOverdue(today time.Time) ([]*entity.PrintingTaskView, error)
}
