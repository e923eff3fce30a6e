package entity

import "time"

// TaskStatus estado de una tarea de impresión.
type TaskStatus string

// Estados de tarea.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// IsValid indica si el valor es un estado de tarea conocido.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	}
	return false
}

// IsTerminal indica si el estado no admite más transiciones.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// CanTransitionTo valida las transiciones del flujo de tareas. Llegar a completed
// exige pasar por la completación (descuento de stock); las demás transiciones solo
// están limitadas por la guardia de estado terminal.
func (s TaskStatus) CanTransitionTo(target TaskStatus) bool {
	if s.IsTerminal() || !target.IsValid() {
		return false
	}
	return target != s
}

// PrintingTask tarea de impresión de un libro. Se crea una sola vez; después solo
// cambian el estado y la fecha real de terminación.
type PrintingTask struct {
	ID          int64
	EmployeeID  int64
	BookID      int64
	Quantity    int // ejemplares a imprimir, > 0
	DueDate     time.Time
	Status      TaskStatus
	SubmittedAt time.Time
	CompletedAt *time.Time
}

// Overdue indica si la tarea sigue abierta pasada su fecha prevista.
func (t *PrintingTask) Overdue(today time.Time) bool {
	if t.Status.IsTerminal() {
		return false
	}
	y, m, d := t.DueDate.Date()
	due := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	ty, tm, td := today.Date()
	cur := time.Date(ty, tm, td, 0, 0, 0, 0, today.Location())
	return due.Before(cur)
}

// PrintingTaskView tarea enriquecida con nombres para listados.
type PrintingTaskView struct {
	PrintingTask
	EmployeeName string
	BookTitle    string
}
