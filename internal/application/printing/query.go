package printing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/printing"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// TaskQueryUseCase consultas de solo lectura del flujo de tareas.
type TaskQueryUseCase struct {
	taskRepo     repository.PrintingTaskRepository
	purchaseRepo repository.PurchaseOrderRepository
	materialRepo repository.MaterialRepository
	factorTable  printing.FactorTable
}

// NewTaskQueryUseCase construye el caso de uso de consulta.
func NewTaskQueryUseCase(
	taskRepo repository.PrintingTaskRepository,
	purchaseRepo repository.PurchaseOrderRepository,
	materialRepo repository.MaterialRepository,
	factorTable printing.FactorTable,
) *TaskQueryUseCase {
	return &TaskQueryUseCase{
		taskRepo:     taskRepo,
		purchaseRepo: purchaseRepo,
		materialRepo: materialRepo,
		factorTable:  factorTable,
	}
}

// Detail devuelve la tarea con empleado, libro y sus órdenes de compra.
func (uc *TaskQueryUseCase) Detail(ctx context.Context, taskID int64) (*dto.TaskDetailResponse, error) {
	view, err := uc.taskRepo.GetView(taskID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, fmt.Errorf("tarea %d: %w", taskID, domain.ErrNotFound)
	}
	purchases, err := uc.purchaseRepo.ListByTask(taskID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PurchaseOrderDTO, 0, len(purchases))
	for _, p := range purchases {
		items = append(items, purchaseViewToDTO(p))
	}
	return &dto.TaskDetailResponse{
		Task:      taskViewToDTO(view),
		Purchases: items,
	}, nil
}

// Requirements calcula las necesidades de material de una tarea y las compara
// contra la existencia actual, sin mutar nada.
func (uc *TaskQueryUseCase) Requirements(ctx context.Context, taskID int64) (*dto.TaskRequirementsResponse, error) {
	view, err := uc.taskRepo.GetView(taskID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, fmt.Errorf("tarea %d: %w", taskID, domain.ErrNotFound)
	}

	requirements, err := printing.CalculateRequirements(uc.factorTable, view.BookID, view.Quantity)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RequirementDTO, 0, len(requirements))
	total := decimal.Zero
	for _, req := range requirements {
		name := fmt.Sprintf("material #%d", req.MaterialID)
		unit := ""
		available := decimal.Zero
		if m, err := uc.materialRepo.GetByID(req.MaterialID); err != nil {
			return nil, err
		} else if m != nil {
			name = m.Name
			unit = m.Unit
			available = m.Quantity
		}
		shortfall := req.Quantity.Sub(available)
		if shortfall.IsNegative() {
			shortfall = decimal.Zero
		}
		items = append(items, dto.RequirementDTO{
			MaterialID:   req.MaterialID,
			MaterialName: name,
			Unit:         unit,
			Required:     req.Quantity,
			Available:    available,
			Shortfall:    shortfall,
		})
		total = total.Add(req.Quantity)
	}

	return &dto.TaskRequirementsResponse{
		Task:          taskViewToDTO(view),
		Items:         items,
		TotalRequired: total,
	}, nil
}

// Page pagina las tareas, opcionalmente filtradas por estado.
func (uc *TaskQueryUseCase) Page(ctx context.Context, in dto.TaskPageRequest) (*dto.TaskPageResponse, error) {
	status := entity.TaskStatus(in.Status)
	if in.Status != "" && !status.IsValid() {
		return nil, domain.NewValidation("status", "estado desconocido: "+in.Status)
	}
	in.DefaultPage()

	views, total, err := uc.taskRepo.Page(status, in.PageSize, in.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]dto.TaskDTO, 0, len(views))
	for _, v := range views {
		items = append(items, taskViewToDTO(v))
	}
	return &dto.TaskPageResponse{
		PageResponse: dto.PageResponse{Page: in.Page, PageSize: in.PageSize, Total: total},
		Items:        items,
	}, nil
}

// Overdue lista las tareas abiertas cuya fecha prevista ya pasó.
func (uc *TaskQueryUseCase) Overdue(ctx context.Context) ([]dto.TaskDTO, error) {
	views, err := uc.taskRepo.ListOverdue(time.Now())
	if err != nil {
		return nil, err
	}
	items := make([]dto.TaskDTO, 0, len(views))
	for _, v := range views {
		items = append(items, taskViewToDTO(v))
	}
	return items, nil
}

// ── mapeo a DTOs ──────────────────────────────────────────────────────────────

func taskToDTO(t *entity.PrintingTask) dto.TaskDTO {
	out := dto.TaskDTO{
		ID:          t.ID,
		EmployeeID:  t.EmployeeID,
		BookID:      t.BookID,
		Quantity:    t.Quantity,
		DueDate:     t.DueDate.Format(dto.DateLayout),
		Status:      string(t.Status),
		SubmittedAt: t.SubmittedAt.Format(dto.DateTimeLayout),
		Overdue:     t.Overdue(time.Now()),
	}
	if t.CompletedAt != nil {
		out.CompletedAt = t.CompletedAt.Format(dto.DateLayout)
	}
	return out
}

func taskViewToDTO(v *entity.PrintingTaskView) dto.TaskDTO {
	out := taskToDTO(&v.PrintingTask)
	out.EmployeeName = v.EmployeeName
	out.BookTitle = v.BookTitle
	return out
}

func purchaseWithLinkToDTO(po *entity.PurchaseOrder, link *entity.MaterialSupplierView) dto.PurchaseOrderDTO {
	out := dto.PurchaseOrderDTO{
		ID:            po.ID,
		TaskID:        po.TaskID,
		LinkID:        po.LinkID,
		MaterialID:    link.MaterialID,
		MaterialName:  link.MaterialName,
		SupplierID:    link.SupplierID,
		SupplierName:  link.SupplierName,
		Quantity:      po.Quantity,
		LinkUnitPrice: link.UnitPrice,
		TotalCost:     po.TotalCost,
		Status:        string(po.Status),
		CreatedAt:     po.CreatedAt.Format(dto.DateTimeLayout),
	}
	if po.ReceiptDate != nil {
		out.ReceiptDate = po.ReceiptDate.Format(dto.DateLayout)
	}
	return out
}

func purchaseViewToDTO(v *entity.PurchaseOrderView) dto.PurchaseOrderDTO {
	out := purchaseWithLinkToDTO(&v.PurchaseOrder, &entity.MaterialSupplierView{
		MaterialSupplier: entity.MaterialSupplier{
			ID:         v.LinkID,
			MaterialID: v.MaterialID,
			SupplierID: v.SupplierID,
			UnitPrice:  v.LinkUnitPrice,
		},
		MaterialName: v.MaterialName,
		SupplierName: v.SupplierName,
	})
	return out
}
