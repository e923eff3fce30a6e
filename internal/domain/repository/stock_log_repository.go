package repository

import (
	"time"

	"github.com/jhoicas/editorial-api/internal/domain/entity"
)

// StockLogFilter criterios de búsqueda sobre el libro de variaciones.
// Since acota por fecha de asiento; Limit se aplica siempre (el usecase lo acota).
type StockLogFilter struct {
	MaterialID  int64  // 0 = todos
	ReferenceKw string // coincidencia parcial sobre la referencia
	Since       *time.Time
	Limit       int
}

// StockLogRepository define el puerto del libro de variaciones de stock (DIP).
// Solo inserta y consulta: los asientos nunca se actualizan ni se eliminan.
type StockLogRepository interface {
	Create(log *entity.StockLog) error
	ListByMaterial(materialID int64, limit int) ([]*entity.StockLogView, error)
	Search(f StockLogFilter) ([]*entity.StockLogView, error)
}
