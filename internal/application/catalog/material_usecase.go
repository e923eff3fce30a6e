package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/application/inventory"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// MaterialUseCase CRUD de materiales. La existencia nunca se muta por aquí:
// todo ingreso o salida pasa por el motor de stock y deja su asiento.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create da de alta un material con existencia cero.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.MaterialRequest) (*dto.MaterialDTO, error) {
	if err := validateMaterial(in); err != nil {
		return nil, err
	}
	now := time.Now()
	material := &entity.Material{
		Name:        in.Name,
		Unit:        in.Unit,
		Spec:        in.Spec,
		Quantity:    decimal.Zero,
		SafetyStock: in.SafetyStock,
		UnitPrice:   in.UnitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	out := inventory.MaterialToDTO(material)
	return &out, nil
}

// Update actualiza los datos maestros de un material. Quantity no se toca.
func (uc *MaterialUseCase) Update(ctx context.Context, id int64, in dto.MaterialRequest) (*dto.MaterialDTO, error) {
	if err := validateMaterial(in); err != nil {
		return nil, err
	}
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("material %d: %w", id, domain.ErrNotFound)
	}
	material.Name = in.Name
	material.Unit = in.Unit
	material.Spec = in.Spec
	material.SafetyStock = in.SafetyStock
	material.UnitPrice = in.UnitPrice
	material.UpdatedAt = time.Now()
	if err := uc.repo.Update(material); err != nil {
		return nil, err
	}
	out := inventory.MaterialToDTO(material)
	return &out, nil
}

// Get obtiene un material por id.
func (uc *MaterialUseCase) Get(ctx context.Context, id int64) (*dto.MaterialDTO, error) {
	material, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("material %d: %w", id, domain.ErrNotFound)
	}
	out := inventory.MaterialToDTO(material)
	return &out, nil
}

// List lista materiales, con filtro opcional por nombre.
func (uc *MaterialUseCase) List(ctx context.Context, nameKw string) ([]dto.MaterialDTO, error) {
	list, err := uc.repo.List(nameKw)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialDTO, 0, len(list))
	for _, m := range list {
		items = append(items, inventory.MaterialToDTO(m))
	}
	return items, nil
}

// Page pagina materiales con filtro por nombre.
func (uc *MaterialUseCase) Page(ctx context.Context, in dto.MaterialPageRequest) (*dto.MaterialPageResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.Page(in.Name, in.PageSize, in.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialDTO, 0, len(list))
	for _, m := range list {
		items = append(items, inventory.MaterialToDTO(m))
	}
	return &dto.MaterialPageResponse{
		PageResponse: dto.PageResponse{Page: in.Page, PageSize: in.PageSize, Total: total},
		Items:        items,
	}, nil
}

func validateMaterial(in dto.MaterialRequest) error {
	if in.Name == "" {
		return domain.NewValidation("name", "el nombre del material no puede estar vacío")
	}
	if in.SafetyStock.IsNegative() {
		return domain.NewValidation("safety_stock", "el umbral de seguridad no puede ser negativo")
	}
	if in.UnitPrice.IsNegative() {
		return domain.NewValidation("unit_price", "el precio estándar no puede ser negativo")
	}
	return nil
}
