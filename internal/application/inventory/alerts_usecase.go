package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/domain/inventory"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// AlertsUseCase genera las alertas de existencia baja y el reporte de inventario.
// Prioriza primero los materiales agotados y luego los de mayor déficit
// respecto a su umbral de seguridad.
type AlertsUseCase struct {
	materialRepo repository.MaterialRepository
}

// NewAlertsUseCase construye el caso de uso de alertas.
func NewAlertsUseCase(materialRepo repository.MaterialRepository) *AlertsUseCase {
	return &AlertsUseCase{materialRepo: materialRepo}
}

// LowStock devuelve los materiales con quantity <= safety_stock, con su
// severidad (CRITICAL si está agotado, WARNING si está bajo umbral),
// ordenados del más urgente al menos urgente.
func (uc *AlertsUseCase) LowStock(ctx context.Context) ([]dto.LowStockAlertDTO, error) {
	materials, err := uc.materialRepo.ListBelowSafety()
	if err != nil {
		return nil, err
	}

	alerts := make([]dto.LowStockAlertDTO, 0, len(materials))
	for _, m := range materials {
		severity := inventory.AlertSeverity(m)
		if severity == "" {
			continue
		}
		alerts = append(alerts, dto.LowStockAlertDTO{
			MaterialID:  m.ID,
			Name:        m.Name,
			Unit:        m.Unit,
			Quantity:    m.Quantity,
			SafetyStock: m.SafetyStock,
			Severity:    severity,
		})
	}

	// Primero los CRITICAL, luego mayor déficit absoluto bajo el umbral
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if a.Severity != b.Severity {
			return a.Severity == inventory.AlertCritical
		}
		defA := a.SafetyStock.Sub(a.Quantity)
		defB := b.SafetyStock.Sub(b.Quantity)
		return defA.GreaterThan(defB)
	})

	return alerts, nil
}

// Report arma los datos del reporte de inventario: totales de valuación y
// el detalle por material. Solo datos, el formato de salida no es asunto
// de este caso de uso.
func (uc *AlertsUseCase) Report(ctx context.Context) (*dto.InventoryReportDTO, error) {
	materials, err := uc.materialRepo.List("")
	if err != nil {
		return nil, err
	}

	summary := inventory.Summarize(materials)

	items := make([]dto.InventoryReportItemDTO, 0, len(materials))
	for _, m := range materials {
		items = append(items, dto.InventoryReportItemDTO{
			MaterialID:  m.ID,
			Name:        m.Name,
			Unit:        m.Unit,
			Quantity:    m.Quantity,
			SafetyStock: m.SafetyStock,
			UnitPrice:   m.UnitPrice,
			StockValue:  m.StockValue().Round(2),
			LowStock:    m.BelowSafety(),
		})
	}

	return &dto.InventoryReportDTO{
		TotalMaterials: summary.TotalMaterials,
		TotalValue:     summary.TotalValue,
		LowStockCount:  summary.LowStockCount,
		OutOfStock:     summary.OutOfStock,
		Items:          items,
	}, nil
}
