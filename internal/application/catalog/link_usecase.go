package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

// LinkUseCase administra los vínculos material-proveedor: qué proveedor ofrece
// qué material, a qué precio y si es el preferido. La selección de compras se
// alimenta de estos vínculos.
type LinkUseCase struct {
	linkRepo     repository.MaterialSupplierRepository
	materialRepo repository.MaterialRepository
	supplierRepo repository.SupplierRepository
}

// NewLinkUseCase construye el caso de uso.
func NewLinkUseCase(
	linkRepo repository.MaterialSupplierRepository,
	materialRepo repository.MaterialRepository,
	supplierRepo repository.SupplierRepository,
) *LinkUseCase {
	return &LinkUseCase{linkRepo: linkRepo, materialRepo: materialRepo, supplierRepo: supplierRepo}
}

// Create vincula un material con un proveedor a un precio dado.
// Material y proveedor deben existir.
func (uc *LinkUseCase) Create(ctx context.Context, in dto.LinkRequest) (*dto.LinkDTO, error) {
	if err := validateLink(in); err != nil {
		return nil, err
	}
	material, err := uc.materialRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, fmt.Errorf("material %d: %w", in.MaterialID, domain.ErrNotFound)
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %d: %w", in.SupplierID, domain.ErrNotFound)
	}

	link := &entity.MaterialSupplier{
		MaterialID: in.MaterialID,
		SupplierID: in.SupplierID,
		UnitPrice:  in.UnitPrice,
		Preferred:  in.Preferred,
		CreatedAt:  time.Now(),
	}
	if err := uc.linkRepo.Create(link); err != nil {
		return nil, err
	}
	return &dto.LinkDTO{
		ID:             link.ID,
		MaterialID:     link.MaterialID,
		MaterialName:   material.Name,
		SupplierID:     link.SupplierID,
		SupplierName:   supplier.Name,
		SupplierStatus: supplier.Status,
		UnitPrice:      link.UnitPrice,
		Preferred:      link.Preferred,
		CreatedAt:      link.CreatedAt.Format(dto.DateTimeLayout),
	}, nil
}

// Update cambia el precio ofrecido o la marca de preferido de un vínculo.
func (uc *LinkUseCase) Update(ctx context.Context, id int64, in dto.LinkRequest) (*dto.LinkDTO, error) {
	if in.UnitPrice.IsNegative() {
		return nil, domain.NewValidation("unit_price", "el precio ofrecido no puede ser negativo")
	}
	link, err := uc.linkRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, fmt.Errorf("vínculo %d: %w", id, domain.ErrNotFound)
	}
	link.UnitPrice = in.UnitPrice
	link.Preferred = in.Preferred
	if err := uc.linkRepo.Update(link); err != nil {
		return nil, err
	}
	view, err := uc.linkRepo.GetView(id)
	if err != nil {
		return nil, err
	}
	out := linkViewToDTO(view)
	return &out, nil
}

// Delete elimina un vínculo. Las compras ya creadas conservan su costo fijado.
func (uc *LinkUseCase) Delete(ctx context.Context, id int64) error {
	link, err := uc.linkRepo.GetByID(id)
	if err != nil {
		return err
	}
	if link == nil {
		return fmt.Errorf("vínculo %d: %w", id, domain.ErrNotFound)
	}
	return uc.linkRepo.Delete(id)
}

// ListByMaterial lista los proveedores que ofrecen un material, con nombres.
func (uc *LinkUseCase) ListByMaterial(ctx context.Context, materialID int64) ([]dto.LinkDTO, error) {
	list, err := uc.linkRepo.ListByMaterial(materialID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LinkDTO, 0, len(list))
	for _, v := range list {
		items = append(items, linkViewToDTO(v))
	}
	return items, nil
}

// ListAll devuelve el directorio completo de vínculos.
func (uc *LinkUseCase) ListAll(ctx context.Context) ([]dto.LinkDTO, error) {
	list, err := uc.linkRepo.ListAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.LinkDTO, 0, len(list))
	for _, v := range list {
		items = append(items, linkViewToDTO(v))
	}
	return items, nil
}

func validateLink(in dto.LinkRequest) error {
	if in.MaterialID <= 0 {
		return domain.NewValidation("material_id", "el material es obligatorio")
	}
	if in.SupplierID <= 0 {
		return domain.NewValidation("supplier_id", "el proveedor es obligatorio")
	}
	if in.UnitPrice.IsNegative() {
		return domain.NewValidation("unit_price", "el precio ofrecido no puede ser negativo")
	}
	return nil
}

func linkViewToDTO(v *entity.MaterialSupplierView) dto.LinkDTO {
	return dto.LinkDTO{
		ID:             v.ID,
		MaterialID:     v.MaterialID,
		MaterialName:   v.MaterialName,
		SupplierID:     v.SupplierID,
		SupplierName:   v.SupplierName,
		SupplierStatus: v.SupplierStatus,
		UnitPrice:      v.UnitPrice,
		Preferred:      v.Preferred,
		CreatedAt:      v.CreatedAt.Format(dto.DateTimeLayout),
	}
}
