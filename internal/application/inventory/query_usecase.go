package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

const (
	// detailLogLimit asientos recientes incluidos en el detalle de un material.
	detailLogLimit = 100

	defaultSearchDays  = 30
	defaultSearchLimit = 500
	maxSearchLimit     = 1000
)

// QueryUseCase consultas de solo lectura sobre materiales y su libro de variaciones.
type QueryUseCase struct {
	materialRepo repository.MaterialRepository
	logRepo      repository.StockLogRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(materialRepo repository.MaterialRepository, logRepo repository.StockLogRepository) *QueryUseCase {
	return &QueryUseCase{
		materialRepo: materialRepo,
		logRepo:      logRepo,
	}
}

// MaterialDetail devuelve un material con sus asientos más recientes.
func (uc *QueryUseCase) MaterialDetail(ctx context.Context, materialID int64) (*dto.MaterialDetailResponse, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	logs, err := uc.logRepo.ListByMaterial(materialID, detailLogLimit)
	if err != nil {
		return nil, err
	}
	return &dto.MaterialDetailResponse{
		Material: MaterialToDTO(material),
		Logs:     logViewsToDTO(logs),
	}, nil
}

// MaterialLogs devuelve los asientos de un material (limit acotado a 1000).
func (uc *QueryUseCase) MaterialLogs(ctx context.Context, materialID int64, limit int) ([]dto.StockLogDTO, error) {
	material, err := uc.materialRepo.GetByID(materialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = detailLogLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	logs, err := uc.logRepo.ListByMaterial(materialID, limit)
	if err != nil {
		return nil, err
	}
	return logViewsToDTO(logs), nil
}

// SearchLogs busca asientos por material, referencia y ventana de días.
// days por defecto 30; limit por defecto 500 con tope 1000.
func (uc *QueryUseCase) SearchLogs(ctx context.Context, in dto.LogSearchRequest) ([]dto.StockLogDTO, error) {
	days := in.Days
	if days <= 0 {
		days = defaultSearchDays
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	since := time.Now().AddDate(0, 0, -days)

	filter := repository.StockLogFilter{
		MaterialID:  in.MaterialID,
		ReferenceKw: in.ReferenceKw,
		Since:       &since,
		Limit:       limit,
	}
	logs, err := uc.logRepo.Search(filter)
	if err != nil {
		return nil, err
	}
	return logViewsToDTO(logs), nil
}

// MaterialToDTO mapea un material al DTO de respuesta.
func MaterialToDTO(m *entity.Material) dto.MaterialDTO {
	return dto.MaterialDTO{
		ID:          m.ID,
		Name:        m.Name,
		Unit:        m.Unit,
		Spec:        m.Spec,
		Quantity:    m.Quantity,
		SafetyStock: m.SafetyStock,
		UnitPrice:   m.UnitPrice,
		LowStock:    m.BelowSafety(),
		CreatedAt:   m.CreatedAt.Format(dto.DateTimeLayout),
		UpdatedAt:   m.UpdatedAt.Format(dto.DateTimeLayout),
	}
}

func logViewsToDTO(logs []*entity.StockLogView) []dto.StockLogDTO {
	out := make([]dto.StockLogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.StockLogDTO{
			ID:           l.ID,
			MaterialID:   l.MaterialID,
			MaterialName: l.MaterialName,
			Delta:        l.Delta,
			Kind:         l.Kind,
			Reference:    l.Reference,
			OperatorID:   l.OperatorID,
			OperatorName: l.OperatorName,
			Note:         l.Note,
			BatchID:      l.BatchID,
			CreatedAt:    l.CreatedAt.Format(dto.DateTimeLayout),
		})
	}
	return out
}
