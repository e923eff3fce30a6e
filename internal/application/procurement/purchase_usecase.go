package procurement

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
	"github.com/jhoicas/editorial-api/internal/domain/repository"
	"github.com/jhoicas/editorial-api/pkg/logger"
)

// PurchaseUseCase maneja las órdenes de compra: alta manual, máquina de
// estados y recepción. La recepción es el único camino hacia `received` y
// es la que ingresa el material al stock.
type PurchaseUseCase struct {
	txRunner     PurchaseTxRunner
	stockEngine  StockEngine
	purchaseRepo repository.PurchaseOrderRepository
	linkRepo     repository.MaterialSupplierRepository
	taskRepo     repository.PrintingTaskRepository
	log          *logger.Logger
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner PurchaseTxRunner,
	stockEngine StockEngine,
	purchaseRepo repository.PurchaseOrderRepository,
	linkRepo repository.MaterialSupplierRepository,
	taskRepo repository.PrintingTaskRepository,
	log *logger.Logger,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		stockEngine:  stockEngine,
		purchaseRepo: purchaseRepo,
		linkRepo:     linkRepo,
		taskRepo:     taskRepo,
		log:          log,
	}
}

// Create da de alta una orden de compra manual para una tarea.
// El costo total queda fijado aquí con el precio del vínculo en este momento;
// cambios de precio posteriores no lo recalculan.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*dto.PurchaseOrderDTO, error) {
	if in.TaskID <= 0 {
		return nil, domain.NewValidation("task_id", "task_id es obligatorio")
	}
	if in.LinkID <= 0 {
		return nil, domain.NewValidation("link_id", "link_id es obligatorio")
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.NewValidation("quantity", "la cantidad debe ser mayor que cero")
	}

	task, err := uc.taskRepo.GetByID(in.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("tarea %d: %w", in.TaskID, domain.ErrNotFound)
	}
	if task.Status == entity.TaskStatusCancelled {
		return nil, domain.NewValidation("task_id", "la tarea está cancelada, no admite compras")
	}

	link, err := uc.linkRepo.GetView(in.LinkID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, fmt.Errorf("vínculo material-proveedor %d: %w", in.LinkID, domain.ErrNotFound)
	}

	po := &entity.PurchaseOrder{
		TaskID:    in.TaskID,
		LinkID:    in.LinkID,
		Quantity:  in.Quantity,
		TotalCost: in.Quantity.Mul(link.UnitPrice).Round(2),
		Status:    entity.PurchaseStatusToPurchase,
		CreatedAt: time.Now(),
	}
	if err := uc.purchaseRepo.Create(po); err != nil {
		return nil, err
	}

	result := PurchaseWithLinkToDTO(po, link)
	return &result, nil
}

// UpdateStatus cambia el estado de una compra validando la máquina de estados.
// `received` se rechaza siempre por aquí: solo la recepción ingresa stock.
func (uc *PurchaseUseCase) UpdateStatus(ctx context.Context, purchaseID int64, newStatus string) (*dto.PurchaseOrderDTO, error) {
	status := entity.PurchaseStatus(newStatus)
	if !status.IsValid() {
		return nil, domain.NewValidation("status", "estado desconocido: "+newStatus)
	}

	po, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("compra %d: %w", purchaseID, domain.ErrNotFound)
	}

	if status == entity.PurchaseStatusReceived {
		return nil, &domain.StateTransitionError{
			Entity: "compra", ID: purchaseID,
			From: string(po.Status), To: string(status),
			Reason: "la recepción pasa por el flujo de recibir, que ingresa el stock",
		}
	}
	if !po.Status.CanTransitionTo(status) {
		return nil, &domain.StateTransitionError{
			Entity: "compra", ID: purchaseID,
			From: string(po.Status), To: string(status),
		}
	}

	if err := uc.purchaseRepo.UpdateStatus(purchaseID, status, nil); err != nil {
		return nil, err
	}
	po.Status = status
	return uc.viewDTO(po)
}

// Receive recibe una compra pendiente: ingresa la cantidad al stock del
// material (referencia purchase:{id}, tipo in) y marca la orden como recibida
// con su fecha, todo en UNA transacción. Si el ingreso falla, la orden queda
// como estaba.
func (uc *PurchaseUseCase) Receive(ctx context.Context, purchaseID, operatorID int64, receiptDate string) (*dto.ReceivePurchaseResponse, error) {
	if operatorID <= 0 {
		return nil, domain.NewValidation("operator_id", "no se puede determinar el operador del ingreso")
	}

	po, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("compra %d: %w", purchaseID, domain.ErrNotFound)
	}
	if !po.Status.CanReceive() {
		return nil, &domain.StateTransitionError{
			Entity: "compra", ID: purchaseID,
			From: string(po.Status), To: string(entity.PurchaseStatusReceived),
			Reason: "solo una compra pendiente (to_purchase) puede recibirse",
		}
	}

	receivedAt := time.Now()
	if receiptDate != "" {
		d, err := time.ParseInLocation(dto.DateLayout, receiptDate, time.Local)
		if err != nil {
			return nil, domain.NewValidation("receipt_date", "el formato debe ser YYYY-MM-DD")
		}
		receivedAt = d
	}

	now := time.Now()
	batchID := uuid.New().String()
	var newQty decimal.Decimal
	var logID int64

	err = uc.txRunner.RunPurchase(ctx, func(
		purchaseRepo repository.PurchaseOrderRepository,
		linkRepo repository.MaterialSupplierRepository,
		materialRepo repository.MaterialRepository,
		logRepo repository.StockLogRepository,
	) error {
		// 1) Revalidar el estado bajo bloqueo de fila
		locked, err := purchaseRepo.GetForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("compra %d: %w", purchaseID, domain.ErrNotFound)
		}
		if !locked.Status.CanReceive() {
			return &domain.StateTransitionError{
				Entity: "compra", ID: purchaseID,
				From: string(locked.Status), To: string(entity.PurchaseStatusReceived),
				Reason: "solo una compra pendiente (to_purchase) puede recibirse",
			}
		}

		// 2) Resolver el vínculo para saber qué material entra
		link, err := linkRepo.GetByID(locked.LinkID)
		if err != nil {
			return err
		}
		if link == nil {
			return fmt.Errorf("vínculo material-proveedor %d: %w", locked.LinkID, domain.ErrNotFound)
		}

		// 3) Ingresar el stock (asienta el libro en la misma transacción)
		results, err := uc.stockEngine.ApplyChangesInTx(ctx, materialRepo, logRepo, operatorID,
			[]inventory.StockChangeInput{{
				MaterialID: link.MaterialID,
				Delta:      locked.Quantity,
				Kind:       entity.StockKindIn,
				Reference:  fmt.Sprintf("purchase:%d", purchaseID),
				Note:       "ingreso por recepción de compra",
			}}, now, batchID)
		if err != nil {
			return err
		}
		newQty = results[0].NewQuantity
		logID = results[0].LogID

		// 4) Marcar recibida con su fecha
		return purchaseRepo.UpdateStatus(purchaseID, entity.PurchaseStatusReceived, &receivedAt)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("purchase_id", purchaseID).
		Int64("operator_id", operatorID).
		Str("new_quantity", newQty.String()).
		Msg("compra recibida, stock ingresado")

	po.Status = entity.PurchaseStatusReceived
	po.ReceiptDate = &receivedAt
	view, err := uc.viewDTO(po)
	if err != nil {
		return nil, err
	}
	return &dto.ReceivePurchaseResponse{
		Purchase:    *view,
		NewQuantity: newQty,
		LogID:       logID,
	}, nil
}

// viewDTO completa el DTO de una compra con los datos del vínculo.
func (uc *PurchaseUseCase) viewDTO(po *entity.PurchaseOrder) (*dto.PurchaseOrderDTO, error) {
	link, err := uc.linkRepo.GetView(po.LinkID)
	if err != nil {
		return nil, err
	}
	if link == nil {
		result := PurchaseToDTO(po)
		return &result, nil
	}
	result := PurchaseWithLinkToDTO(po, link)
	return &result, nil
}

// PurchaseToDTO mapea una compra sin datos de vínculo.
func PurchaseToDTO(po *entity.PurchaseOrder) dto.PurchaseOrderDTO {
	out := dto.PurchaseOrderDTO{
		ID:        po.ID,
		TaskID:    po.TaskID,
		LinkID:    po.LinkID,
		Quantity:  po.Quantity,
		TotalCost: po.TotalCost,
		Status:    string(po.Status),
		CreatedAt: po.CreatedAt.Format(dto.DateTimeLayout),
	}
	if po.ReceiptDate != nil {
		out.ReceiptDate = po.ReceiptDate.Format(dto.DateLayout)
	}
	return out
}

// PurchaseWithLinkToDTO mapea una compra junto a su vínculo material-proveedor.
func PurchaseWithLinkToDTO(po *entity.PurchaseOrder, link *entity.MaterialSupplierView) dto.PurchaseOrderDTO {
	out := PurchaseToDTO(po)
	out.MaterialID = link.MaterialID
	out.MaterialName = link.MaterialName
	out.SupplierID = link.SupplierID
	out.SupplierName = link.SupplierName
	out.LinkUnitPrice = link.UnitPrice
	return out
}

// PurchaseViewToDTO mapea la vista de una compra (join con vínculo).
func PurchaseViewToDTO(v *entity.PurchaseOrderView) dto.PurchaseOrderDTO {
	out := PurchaseToDTO(&v.PurchaseOrder)
	out.MaterialID = v.MaterialID
	out.MaterialName = v.MaterialName
	out.SupplierID = v.SupplierID
	out.SupplierName = v.SupplierName
	out.LinkUnitPrice = v.LinkUnitPrice
	return out
}
