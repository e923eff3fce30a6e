package repository

import "github.com/jhoicas/editorial-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para proveedores (DIP).
// La baja de un proveedor es un cambio de estado (terminated), no un borrado.
type SupplierRepository interface {
	GetByID(id int64) (*entity.Supplier, error)
	List(nameKw, status string) ([]*entity.Supplier, error)
	Page(nameKw, status string, limit, offset int) ([]*entity.Supplier, int, error)
	Create(s *entity.Supplier) error
	Update(s *entity.Supplier) error
	UpdateStatus(id int64, status string) error
}
