package repository

import "github.com/jhoicas/editorial-api/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para empleados (DIP).
type EmployeeRepository interface {
	GetByID(id int64) (*entity.Employee, error)
	Page(nameKw, status string, limit, offset int) ([]*entity.Employee, int, error)
	Create(e *entity.Employee) error
	Update(e *entity.Employee) error
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
}
