package entity

import "time"

// Estados laborales de un empleado.
const (
	EmployeeStatusActive   = "active"   // en plantilla, puede recibir tareas
	EmployeeStatusInactive = "inactive" // baja
)

// Employee empleado de la imprenta. Solo los empleados activos pueden
// recibir tareas de impresión.
type Employee struct {
	ID       int64
	Name     string
	Position string
	Status   string // active | inactive
	HiredAt  *time.Time
}

// IsActive indica si el empleado está en plantilla.
func (e *Employee) IsActive() bool { return e.Status == EmployeeStatusActive }
