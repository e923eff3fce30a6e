package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/editorial-api/internal/domain/entity"
)

// Severidad de alertas de stock bajo.
const (
	AlertCritical = "CRITICAL" // existencia agotada
	AlertWarning  = "WARNING"  // existencia en o bajo el umbral de seguridad
)

// AlertSeverity clasifica un material bajo umbral: CRITICAL si está agotado,
// WARNING si solo está en o por debajo del stock de seguridad. Cadena vacía si
// la existencia es sana (servicio de dominio, sin I/O).
func AlertSeverity(m *entity.Material) string {
	if !m.BelowSafety() {
		return ""
	}
	if m.OutOfStock() {
		return AlertCritical
	}
	return AlertWarning
}

// Summary agregados de valuación del inventario de materiales.
type Summary struct {
	TotalMaterials int
	TotalValue     decimal.Decimal // suma de existencia por precio estándar, redondeada a 2
	LowStockCount  int             // materiales en o bajo su stock de seguridad (incluye agotados)
	OutOfStock     int
}

// Summarize calcula los agregados del reporte de inventario.
// TotalValue = sum(Quantity * UnitPrice) redondeado a 2 decimales al final.
func Summarize(materials []*entity.Material) Summary {
	s := Summary{TotalMaterials: len(materials)}
	total := decimal.Zero
	for _, m := range materials {
		total = total.Add(m.StockValue())
		if m.BelowSafety() {
			s.LowStockCount++
		}
		if m.OutOfStock() {
			s.OutOfStock++
		}
	}
	s.TotalValue = total.Round(2)
	return s
}
