package printing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/application/inventory"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/printing"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
	"github.com/jhoicas/editorial-api/pkg/logger"
)

// TaskStatusUseCase maneja la máquina de estados de las tareas de impresión.
// Completar es el camino crítico: nunca marca una tarea como completada sin
// haber descontado antes todo su material en la misma transacción.
type TaskStatusUseCase struct {
	txRunner     TaskTxRunner
	stockEngine  StockEngine
	factorTable  printing.FactorTable
	taskRepo     repository.PrintingTaskRepository
	materialRepo repository.MaterialRepository
	log          *logger.Logger
}

// NewTaskStatusUseCase construye el caso de uso.
func NewTaskStatusUseCase(
	txRunner TaskTxRunner,
	stockEngine StockEngine,
	factorTable printing.FactorTable,
	taskRepo repository.PrintingTaskRepository,
	materialRepo repository.MaterialRepository,
	log *logger.Logger,
) *TaskStatusUseCase {
	return &TaskStatusUseCase{
		txRunner:     txRunner,
		stockEngine:  stockEngine,
		factorTable:  factorTable,
		taskRepo:     taskRepo,
		materialRepo: materialRepo,
		log:          log,
	}
}

// UpdateStatus cambia el estado de una tarea validando la máquina de estados.
// Pedir `completed` por aquí enruta al flujo de completar, que es el único
// que descuenta material.
func (uc *TaskStatusUseCase) UpdateStatus(ctx context.Context, taskID, operatorID int64, newStatus string) (*dto.TaskDTO, error) {
	status := entity.TaskStatus(newStatus)
	if !status.IsValid() {
		return nil, domain.NewValidation("status", "estado desconocido: "+newStatus)
	}
	if status == entity.TaskStatusCompleted {
		return uc.Complete(ctx, taskID, operatorID, "")
	}

	task, err := uc.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("tarea %d: %w", taskID, domain.ErrNotFound)
	}
	if !task.Status.CanTransitionTo(status) {
		return nil, &domain.StateTransitionError{
			Entity: "tarea", ID: taskID,
			From: string(task.Status), To: string(status),
		}
	}

	if err := uc.taskRepo.UpdateStatus(taskID, status, nil); err != nil {
		return nil, err
	}
	task.Status = status
	result := taskToDTO(task)
	return &result, nil
}

// Complete completa una tarea: calcula sus necesidades, verifica faltantes y,
// si todo alcanza, descuenta el material (referencia task:{id}, tipo out) y
// marca la tarea como completada en UNA transacción. Ante cualquier faltante
// no se muta nada y el error enumera cada material corto con su requerido,
// disponible y faltante.
func (uc *TaskStatusUseCase) Complete(ctx context.Context, taskID, operatorID int64, completedDate string) (*dto.TaskDTO, error) {
	if operatorID <= 0 {
		return nil, domain.NewValidation("operator_id", "no se puede determinar el operador del descuento")
	}

	task, err := uc.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("tarea %d: %w", taskID, domain.ErrNotFound)
	}
	if err := uc.rejectIfFinished(task); err != nil {
		return nil, err
	}

	completedAt := time.Now()
	if completedDate != "" {
		d, err := time.ParseInLocation(dto.DateLayout, completedDate, time.Local)
		if err != nil {
			return nil, domain.NewValidation("completed_date", "el formato debe ser YYYY-MM-DD")
		}
		completedAt = d
	}

	requirements, err := printing.CalculateRequirements(uc.factorTable, task.BookID, task.Quantity)
	if err != nil {
		return nil, err
	}

	// Verificación de faltantes: si algo no alcanza se reporta todo junto y
	// no se toca ni el stock ni el estado.
	shortage, err := uc.shortageCheck(taskID, requirements)
	if err != nil {
		return nil, err
	}
	if shortage != nil {
		return nil, shortage
	}

	ref := fmt.Sprintf("task:%d", taskID)
	changes := make([]inventory.StockChangeInput, 0, len(requirements))
	for _, req := range requirements {
		if req.Quantity.IsZero() {
			continue
		}
		changes = append(changes, inventory.StockChangeInput{
			MaterialID: req.MaterialID,
			Delta:      req.Quantity.Neg(),
			Kind:       entity.StockKindOut,
			Reference:  ref,
			Note:       "descuento por completar tarea",
		})
	}

	now := time.Now()
	batchID := uuid.New().String()

	// Descuento y cambio de estado en la misma transacción: si el lote falla
	// (carrera con otro descuento), la tarea sigue como estaba.
	err = uc.txRunner.RunTask(ctx, func(
		taskRepo repository.PrintingTaskRepository,
		materialRepo repository.MaterialRepository,
		_ repository.MaterialSupplierRepository,
		_ repository.PurchaseOrderRepository,
		logRepo repository.StockLogRepository,
	) error {
		// 1) Revalidar el estado bajo bloqueo de fila
		locked, err := taskRepo.GetForUpdate(taskID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("tarea %d: %w", taskID, domain.ErrNotFound)
		}
		if err := uc.rejectIfFinished(locked); err != nil {
			return err
		}

		// 2) Descontar el lote completo (bloquea materiales y asienta el libro)
		if len(changes) > 0 {
			if _, err := uc.stockEngine.ApplyChangesInTx(ctx, materialRepo, logRepo, operatorID, changes, now, batchID); err != nil {
				return err
			}
		}

		// 3) Marcar completada con su fecha
		return taskRepo.UpdateStatus(taskID, entity.TaskStatusCompleted, &completedAt)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("task_id", taskID).
		Int64("operator_id", operatorID).
		Int("materials", len(changes)).
		Msg("tarea completada, material descontado")

	task.Status = entity.TaskStatusCompleted
	task.CompletedAt = &completedAt
	result := taskToDTO(task)
	return &result, nil
}

// rejectIfFinished rechaza completar tareas canceladas o ya completadas.
func (uc *TaskStatusUseCase) rejectIfFinished(task *entity.PrintingTask) error {
	switch task.Status {
	case entity.TaskStatusCancelled:
		return &domain.StateTransitionError{
			Entity: "tarea", ID: task.ID,
			From: string(task.Status), To: string(entity.TaskStatusCompleted),
			Reason: "una tarea cancelada no puede completarse",
		}
	case entity.TaskStatusCompleted:
		return &domain.StateTransitionError{
			Entity: "tarea", ID: task.ID,
			From: string(task.Status), To: string(entity.TaskStatusCompleted),
			Reason: "la tarea ya está completada",
		}
	}
	return nil
}

// shortageCheck compara necesidades contra existencia actual.
// Devuelve nil si todo alcanza; si no, el detalle completo de faltantes.
func (uc *TaskStatusUseCase) shortageCheck(taskID int64, requirements []printing.Requirement) (*domain.ShortageError, error) {
	var items []domain.ShortageItem
	for _, req := range requirements {
		m, err := uc.materialRepo.GetByID(req.MaterialID)
		if err != nil {
			return nil, err
		}
		name := fmt.Sprintf("material #%d", req.MaterialID)
		unit := ""
		available := decimal.Zero
		if m != nil {
			name = m.Name
			unit = m.Unit
			available = m.Quantity
		}
		if available.LessThan(req.Quantity) {
			items = append(items, domain.ShortageItem{
				MaterialID:   req.MaterialID,
				MaterialName: name,
				Unit:         unit,
				Required:     req.Quantity,
				Available:    available,
				Shortfall:    req.Quantity.Sub(available),
			})
		}
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &domain.ShortageError{TaskID: taskID, Items: items}, nil
}
