package printing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/printing"
	"github.com/jhoicas/editorial-api/internal/domain/procurement"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
	"github.com/jhoicas/editorial-api/pkg/logger"
)

// SubmitTaskUseCase registra una tarea de impresión y genera sus órdenes de
// compra en una sola transacción: la tarea, la selección de proveedor por
// material y las órdenes nacen juntas o no nace nada.
type SubmitTaskUseCase struct {
	txRunner     TaskTxRunner
	factorTable  printing.FactorTable
	employeeRepo repository.EmployeeRepository
	bookRepo     repository.BookRepository
	log          *logger.Logger
}

// NewSubmitTaskUseCase construye el caso de uso.
func NewSubmitTaskUseCase(
	txRunner TaskTxRunner,
	factorTable printing.FactorTable,
	employeeRepo repository.EmployeeRepository,
	bookRepo repository.BookRepository,
	log *logger.Logger,
) *SubmitTaskUseCase {
	return &SubmitTaskUseCase{
		txRunner:     txRunner,
		factorTable:  factorTable,
		employeeRepo: employeeRepo,
		bookRepo:     bookRepo,
		log:          log,
	}
}

// SubmitTask valida la solicitud y ejecuta el alta transaccional.
// Si algún material requerido no tiene proveedor activo, la transacción
// completa se revierte y el error enumera TODOS los materiales sin proveedor.
func (uc *SubmitTaskUseCase) SubmitTask(ctx context.Context, in dto.SubmitTaskRequest) (*dto.SubmitTaskResponse, error) {
	// Reglas de negocio (fuera de la tx)
	dueDate, err := uc.validateRequest(in)
	if err != nil {
		return nil, err
	}

	// Datos asociados: empleado en plantilla y libro existente
	employee, err := uc.employeeRepo.GetByID(in.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("empleado %d: %w", in.EmployeeID, domain.ErrNotFound)
	}
	if !employee.IsActive() {
		return nil, domain.NewValidation("employee_id", "el empleado está fuera de plantilla")
	}
	book, err := uc.bookRepo.GetByID(in.BookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, fmt.Errorf("libro %d: %w", in.BookID, domain.ErrNotFound)
	}

	// Necesidades de material según la tabla de factores del libro
	requirements, err := printing.CalculateRequirements(uc.factorTable, in.BookID, in.Quantity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := &entity.PrintingTask{
		EmployeeID:  in.EmployeeID,
		BookID:      in.BookID,
		Quantity:    in.Quantity,
		DueDate:     dueDate,
		Status:      entity.TaskStatusPending,
		SubmittedAt: now,
	}
	var purchaseDTOs []dto.PurchaseOrderDTO

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TaskTxRunner lo hace)
	err = uc.txRunner.RunTask(ctx, func(
		taskRepo repository.PrintingTaskRepository,
		materialRepo repository.MaterialRepository,
		linkRepo repository.MaterialSupplierRepository,
		purchaseRepo repository.PurchaseOrderRepository,
		_ repository.StockLogRepository,
	) error {
		// 1) Crear la tarea (estado inicial: pending)
		if err := taskRepo.Create(task); err != nil {
			return err
		}

		// 2) Por cada material requerido, elegir el proveedor óptimo y crear su orden.
		// Los materiales sin proveedor se acumulan: el reporte final los lista todos.
		var missing []domain.MaterialRef
		for _, req := range requirements {
			candidates, err := linkRepo.EligibleByMaterial(req.MaterialID)
			if err != nil {
				return err
			}
			best := procurement.SelectOptimal(candidates)
			if best == nil {
				missing = append(missing, uc.materialRef(materialRepo, req.MaterialID))
				continue
			}

			po := &entity.PurchaseOrder{
				TaskID:    task.ID,
				LinkID:    best.ID,
				Quantity:  req.Quantity,
				TotalCost: req.Quantity.Mul(best.UnitPrice).Round(2),
				Status:    entity.PurchaseStatusToPurchase,
				CreatedAt: now,
			}
			if err := purchaseRepo.Create(po); err != nil {
				return err
			}
			purchaseDTOs = append(purchaseDTOs, purchaseWithLinkToDTO(po, best))
		}

		// 3) Un solo error con todos los materiales sin proveedor (revierte tarea y órdenes)
		if len(missing) > 0 {
			return &domain.NoSupplierError{Materials: missing}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("task_id", task.ID).
		Int64("book_id", in.BookID).
		Int("quantity", in.Quantity).
		Int("purchases", len(purchaseDTOs)).
		Msg("tarea de impresión registrada")

	taskDTO := taskToDTO(task)
	taskDTO.EmployeeName = employee.Name
	taskDTO.BookTitle = book.Title
	return &dto.SubmitTaskResponse{Task: taskDTO, Purchases: purchaseDTOs}, nil
}

// validateRequest valida los campos y devuelve la fecha prevista normalizada.
func (uc *SubmitTaskUseCase) validateRequest(in dto.SubmitTaskRequest) (time.Time, error) {
	if in.EmployeeID <= 0 {
		return time.Time{}, domain.NewValidation("employee_id", "employee_id es obligatorio")
	}
	if in.BookID <= 0 {
		return time.Time{}, domain.NewValidation("book_id", "book_id es obligatorio")
	}
	if in.Quantity <= 0 {
		return time.Time{}, domain.NewValidation("quantity", "la cantidad a imprimir debe ser mayor que cero")
	}
	if in.DueDate == "" {
		return time.Time{}, domain.NewValidation("due_date", "due_date es obligatorio")
	}
	dueDate, err := time.ParseInLocation(dto.DateLayout, in.DueDate, time.Local)
	if err != nil {
		return time.Time{}, domain.NewValidation("due_date", "el formato debe ser YYYY-MM-DD")
	}
	if dueDate.Before(startOfToday()) {
		return time.Time{}, domain.NewValidation("due_date", "la fecha prevista no puede estar en el pasado")
	}
	return dueDate, nil
}

// materialRef arma la referencia para el mensaje de materiales sin proveedor.
// Si el material ni siquiera existe, va solo con el ID.
func (uc *SubmitTaskUseCase) materialRef(materialRepo repository.MaterialRepository, materialID int64) domain.MaterialRef {
	ref := domain.MaterialRef{ID: materialID}
	if m, err := materialRepo.GetByID(materialID); err == nil && m != nil {
		ref.Name = m.Name
	}
	return ref
}

func startOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
