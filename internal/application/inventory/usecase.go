package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// StockUseCase aplica variaciones de existencia de forma transaccional:
// cada lote se ejecuta completo o no se ejecuta (bloqueo de fila con
// SELECT FOR UPDATE, Commit/Rollback), y cada variación deja su asiento
// inmutable en stock_logs dentro de la misma transacción.
type StockUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, materialRepo repository.MaterialRepository) *StockUseCase {
	return &StockUseCase{
		txRunner:     txRunner,
		materialRepo: materialRepo,
	}
}

// StockChangeInput una variación de existencia dentro de un lote.
// Delta es con signo: positivo entra, negativo sale. Kind es opcional:
// si falta se deduce del signo del delta.
type StockChangeInput struct {
	MaterialID int64
	Delta      decimal.Decimal
	Kind       string
	Reference  string
	Note       string
}

// StockChangeResult resultado por material tras aplicar el lote.
type StockChangeResult struct {
	MaterialID  int64
	NewQuantity decimal.Decimal
	LogID       int64
}

// ApplyChanges aplica un lote de variaciones en UNA transacción.
// Si cualquier ítem dejaría la existencia en negativo (o su material no
// existe), el lote completo se revierte y ninguna cantidad ni asiento queda
// registrado. Devuelve, en el mismo orden del lote, la cantidad resultante
// y el ID del asiento de cada material.
func (uc *StockUseCase) ApplyChanges(ctx context.Context, operatorID int64, changes []StockChangeInput) ([]StockChangeResult, error) {
	if err := validateChanges(changes); err != nil {
		return nil, err
	}

	now := time.Now()
	batchID := uuid.New().String()

	var results []StockChangeResult
	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		logRepo repository.StockLogRepository,
	) error {
		var txErr error
		results, txErr = uc.ApplyChangesInTx(ctx, materialRepo, logRepo, operatorID, changes, now, batchID)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// ApplyChangesInTx aplica el lote usando los repositorios proporcionados
// (misma transacción del caller). Lo usan ApplyChanges y los flujos de
// tareas y compras que necesitan mover stock junto a su propio estado.
// ctx propaga la transacción SQL; batchID correlaciona los asientos del lote.
func (uc *StockUseCase) ApplyChangesInTx(
	ctx context.Context,
	materialRepo repository.MaterialRepository,
	logRepo repository.StockLogRepository,
	operatorID int64,
	changes []StockChangeInput,
	now time.Time,
	batchID string,
) ([]StockChangeResult, error) {
	results := make([]StockChangeResult, 0, len(changes))
	for _, ch := range changes {
		// 1. Bloquea la fila del material (SELECT FOR UPDATE) para evitar condiciones de carrera
		material, err := materialRepo.GetForUpdate(ch.MaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, fmt.Errorf("material %d: %w", ch.MaterialID, domain.ErrNotFound)
		}

		// 2. La existencia nunca queda negativa: un ítem insuficiente revierte el lote entero
		newQty := material.Quantity.Add(ch.Delta)
		if newQty.IsNegative() {
			return nil, &domain.InsufficientStockError{
				MaterialID: ch.MaterialID,
				Required:   ch.Delta.Abs(),
				Available:  material.Quantity,
			}
		}

		// 3. Actualiza la cantidad
		if err := materialRepo.UpdateQuantity(ch.MaterialID, newQty); err != nil {
			return nil, err
		}

		// 4. Asiento inmutable en stock_logs, misma transacción
		log := &entity.StockLog{
			MaterialID: ch.MaterialID,
			Delta:      ch.Delta,
			Kind:       normalizeKind(ch.Kind, ch.Delta),
			Reference:  ch.Reference,
			OperatorID: operatorID,
			Note:       ch.Note,
			BatchID:    batchID,
			CreatedAt:  now,
		}
		if err := logRepo.Create(log); err != nil {
			return nil, err
		}

		results = append(results, StockChangeResult{
			MaterialID:  ch.MaterialID,
			NewQuantity: newQty,
			LogID:       log.ID,
		})
	}
	return results, nil
}

// UpdateLevel aplica una variación suelta (lote de un solo ítem).
func (uc *StockUseCase) UpdateLevel(ctx context.Context, operatorID int64, change StockChangeInput) (*StockChangeResult, error) {
	results, err := uc.ApplyChanges(ctx, operatorID, []StockChangeInput{change})
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// SetSafetyStock fija el umbral de seguridad de un material.
func (uc *StockUseCase) SetSafetyStock(ctx context.Context, materialID int64, qty decimal.Decimal) (*entity.Material, error) {
	if qty.IsNegative() {
		return nil, domain.NewValidation("safety_stock", "el umbral de seguridad no puede ser negativo")
	}
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.materialRepo.SetSafetyStock(materialID, qty); err != nil {
		return nil, err
	}
	material.SafetyStock = qty
	return material, nil
}

// SetUnitPrice fija el precio estándar de un material.
func (uc *StockUseCase) SetUnitPrice(ctx context.Context, materialID int64, price decimal.Decimal) (*entity.Material, error) {
	if price.IsNegative() {
		return nil, domain.NewValidation("unit_price", "el precio no puede ser negativo")
	}
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.materialRepo.SetUnitPrice(materialID, price); err != nil {
		return nil, err
	}
	material.UnitPrice = price
	return material, nil
}

// validateChanges valida el lote antes de abrir la transacción.
func validateChanges(changes []StockChangeInput) error {
	if len(changes) == 0 {
		return domain.NewValidation("changes", "el lote no puede estar vacío")
	}
	for i, ch := range changes {
		if ch.MaterialID <= 0 {
			return domain.NewValidation(fmt.Sprintf("changes[%d].material_id", i), "material_id es obligatorio")
		}
		if ch.Delta.IsZero() {
			return domain.NewValidation(fmt.Sprintf("changes[%d].delta", i), "el delta no puede ser cero")
		}
		switch ch.Kind {
		case "":
			// se deduce del signo
		case entity.StockKindIn:
			if ch.Delta.IsNegative() {
				return domain.NewValidation(fmt.Sprintf("changes[%d].kind", i), "una entrada no puede llevar delta negativo")
			}
		case entity.StockKindOut:
			if ch.Delta.IsPositive() {
				return domain.NewValidation(fmt.Sprintf("changes[%d].kind", i), "una salida no puede llevar delta positivo")
			}
		case entity.StockKindAdjust:
			// cualquier signo
		default:
			return domain.NewValidation(fmt.Sprintf("changes[%d].kind", i), "kind debe ser in, out o adjust")
		}
	}
	return nil
}

// normalizeKind deduce el tipo de asiento cuando el caller no lo indica.
func normalizeKind(kind string, delta decimal.Decimal) string {
	if kind != "" {
		return kind
	}
	if delta.IsNegative() {
		return entity.StockKindOut
	}
	return entity.StockKindIn
}
