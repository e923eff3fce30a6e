package procurement

import (
	"context"
	"fmt"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// PurchaseQueryUseCase consultas de solo lectura sobre órdenes de compra.
type PurchaseQueryUseCase struct {
	purchaseRepo repository.PurchaseOrderRepository
}

// NewPurchaseQueryUseCase construye el caso de uso de consulta.
func NewPurchaseQueryUseCase(purchaseRepo repository.PurchaseOrderRepository) *PurchaseQueryUseCase {
	return &PurchaseQueryUseCase{purchaseRepo: purchaseRepo}
}

// Get devuelve una compra con material y proveedor resueltos.
func (uc *PurchaseQueryUseCase) Get(ctx context.Context, purchaseID int64) (*dto.PurchaseOrderDTO, error) {
	view, err := uc.purchaseRepo.GetView(purchaseID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, fmt.Errorf("compra %d: %w", purchaseID, domain.ErrNotFound)
	}
	result := PurchaseViewToDTO(view)
	return &result, nil
}

// Page pagina las compras, opcionalmente filtradas por estado y tarea.
func (uc *PurchaseQueryUseCase) Page(ctx context.Context, in dto.PurchasePageRequest) (*dto.PurchasePageResponse, error) {
	status := entity.PurchaseStatus(in.Status)
	if in.Status != "" && !status.IsValid() {
		return nil, domain.NewValidation("status", "estado desconocido: "+in.Status)
	}
	in.DefaultPage()

	views, total, err := uc.purchaseRepo.Page(status, in.TaskID, in.PageSize, in.Offset())
	if err != nil {
		return nil, err
	}

	items := make([]dto.PurchaseOrderDTO, 0, len(views))
	for _, v := range views {
		items = append(items, PurchaseViewToDTO(v))
	}
	return &dto.PurchasePageResponse{
		PageResponse: dto.PageResponse{Page: in.Page, PageSize: in.PageSize, Total: total},
		Items:        items,
	}, nil
}

// ListByTask lista las compras generadas para una tarea.
func (uc *PurchaseQueryUseCase) ListByTask(ctx context.Context, taskID int64) ([]dto.PurchaseOrderDTO, error) {
	views, err := uc.purchaseRepo.ListByTask(taskID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseOrderDTO, 0, len(views))
	for _, v := range views {
		items = append(items, PurchaseViewToDTO(v))
	}
	return items, nil
}
