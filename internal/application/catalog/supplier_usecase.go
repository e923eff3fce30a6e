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

// SupplierUseCase CRUD de proveedores y alternancia de cooperación.
// Terminar la cooperación no borra los vínculos: los saca de la selección
// de compras hasta que el proveedor vuelva a estar activo.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create da de alta un proveedor en cooperación.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierDTO, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("name", "el nombre del proveedor no puede estar vacío")
	}
	now := time.Now()
	supplier := &entity.Supplier{
		Name:      in.Name,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Status:    entity.SupplierStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return supplierToDTO(supplier), nil
}

// Update actualiza los datos de contacto de un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.SupplierRequest) (*dto.SupplierDTO, error) {
	if in.Name == "" {
		return nil, domain.NewValidation("name", "el nombre del proveedor no puede estar vacío")
	}
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %d: %w", id, domain.ErrNotFound)
	}
	supplier.Name = in.Name
	supplier.Contact = in.Contact
	supplier.Phone = in.Phone
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return supplierToDTO(supplier), nil
}

// UpdateStatus alterna la cooperación: active la habilita para compras,
// terminated la excluye de la selección.
func (uc *SupplierUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*dto.SupplierDTO, error) {
	if status != entity.SupplierStatusActive && status != entity.SupplierStatusTerminated {
		return nil, domain.NewValidation("status", "el estado debe ser active o terminated")
	}
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %d: %w", id, domain.ErrNotFound)
	}
	if err := uc.repo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	supplier.Status = status
	return supplierToDTO(supplier), nil
}

// Get obtiene un proveedor por id.
func (uc *SupplierUseCase) Get(ctx context.Context, id int64) (*dto.SupplierDTO, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %d: %w", id, domain.ErrNotFound)
	}
	return supplierToDTO(supplier), nil
}

// List lista proveedores con filtros por nombre y estado de cooperación.
func (uc *SupplierUseCase) List(ctx context.Context, nameKw, status string) ([]dto.SupplierDTO, error) {
	list, err := uc.repo.List(nameKw, status)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierDTO, 0, len(list))
	for _, s := range list {
		items = append(items, *supplierToDTO(s))
	}
	return items, nil
}

// Page pagina proveedores con los mismos filtros que List.
func (uc *SupplierUseCase) Page(ctx context.Context, in dto.SupplierPageRequest) (*dto.SupplierPageResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.Page(in.Name, in.Status, in.PageSize, in.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierDTO, 0, len(list))
	for _, s := range list {
		items = append(items, *supplierToDTO(s))
	}
	return &dto.SupplierPageResponse{
		PageResponse: dto.PageResponse{Page: in.Page, PageSize: in.PageSize, Total: total},
		Items:        items,
	}, nil
}

func supplierToDTO(s *entity.Supplier) *dto.SupplierDTO {
	return &dto.SupplierDTO{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Status:    s.Status,
		CreatedAt: s.CreatedAt.Format(dto.DateTimeLayout),
	}
}
