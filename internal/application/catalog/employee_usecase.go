package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// EmployeeUseCase CRUD de empleados. El estado laboral controla la asignación
// de tareas: solo un empleado activo puede recibirlas.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create da de alta un empleado activo. Sin fecha de ingreso, queda hoy.
func (uc *EmployeeUseCase) Create(ctx context.Context, in dto.EmployeeRequest) (*dto.EmployeeDTO, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("name", "el nombre del empleado no puede estar vacío")
	}
	hiredAt, err := parseHiredAt(in.HiredAt)
	if err != nil {
		return nil, err
	}
	if hiredAt == nil {
		today := time.Now()
		hiredAt = &today
	}
	employee := &entity.Employee{
		Name:     in.Name,
		Position: in.Position,
		Status:   entity.EmployeeStatusActive,
		HiredAt:  hiredAt,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	return employeeToDTO(employee), nil
}

// Update actualiza nombre, puesto y fecha de ingreso. El estado laboral se
// cambia con UpdateStatus.
func (uc *EmployeeUseCase) Update(ctx context.Context, id int64, in dto.EmployeeRequest) (*dto.EmployeeDTO, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("name", "el nombre del empleado no puede estar vacío")
	}
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("empleado %d: %w", id, domain.ErrNotFound)
	}
	hiredAt, err := parseHiredAt(in.HiredAt)
	if err != nil {
		return nil, err
	}
	employee.Name = in.Name
	employee.Position = in.Position
	if hiredAt != nil {
		employee.HiredAt = hiredAt
	}
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return employeeToDTO(employee), nil
}

// UpdateStatus cambia el estado laboral: active vuelve a habilitar tareas,
// inactive las bloquea.
func (uc *EmployeeUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*dto.EmployeeDTO, error) {
	if status != entity.EmployeeStatusActive && status != entity.EmployeeStatusInactive {
		return nil, domain.NewValidation("status", "el estado debe ser active o inactive")
	}
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("empleado %d: %w", id, domain.ErrNotFound)
	}
	if err := uc.repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	employee.Status = status
	return employeeToDTO(employee), nil
}

// Delete elimina un empleado. Si tiene tareas asignadas, la base rechaza la
// eliminación por integridad referencial.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id int64) error {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if employee == nil {
		return fmt.Errorf("empleado %d: %w", id, domain.ErrNotFound)
	}
	return uc.repo.Delete(id)
}

// Get obtiene un empleado por id.
func (uc *EmployeeUseCase) Get(ctx context.Context, id int64) (*dto.EmployeeDTO, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("empleado %d: %w", id, domain.ErrNotFound)
	}
	return employeeToDTO(employee), nil
}

// Page pagina empleados con filtros por nombre y estado laboral.
func (uc *EmployeeUseCase) Page(ctx context.Context, in dto.EmployeePageRequest) (*dto.EmployeePageResponse, error) {
	if in.Status != "" && in.Status != entity.EmployeeStatusActive && in.Status != entity.EmployeeStatusInactive {
		return nil, domain.NewValidation("status", "el estado debe ser active o inactive")
	}
	in.DefaultPage()
	list, total, err := uc.repo.Page(in.Name, in.Status, in.PageSize, in.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeDTO, 0, len(list))
	for _, e := range list {
		items = append(items, *employeeToDTO(e))
	}
	return &dto.EmployeePageResponse{
		PageResponse: dto.PageResponse{Page: in.Page, PageSize: in.PageSize, Total: total},
		Items:        items,
	}, nil
}

func parseHiredAt(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(dto.DateLayout, s, time.Local)
	if err != nil {
		return nil, domain.NewValidation("hired_at", "la fecha de ingreso debe tener formato YYYY-MM-DD")
	}
	return &parsed, nil
}

func employeeToDTO(e *entity.Employee) *dto.EmployeeDTO {
	out := &dto.EmployeeDTO{
		ID:       e.ID,
		Name:     e.Name,
		Position: e.Position,
		Status:   e.Status,
	}
	if e.HiredAt != nil {
		out.HiredAt = e.HiredAt.Format(dto.DateLayout)
	}
	return out
}
