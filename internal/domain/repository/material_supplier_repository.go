package repository

import "github.com/jhoicas/editorial-api/internal/domain/entity"

// MaterialSupplierRepository define el puerto para los vínculos material-proveedor (DIP).
type MaterialSupplierRepository interface {
	GetByID(id int64) (*entity.MaterialSupplier, error)
	GetView(id int64) (*entity.MaterialSupplierView, error)
	// ListByMaterial lista todos los vínculos de un material con nombres de proveedor.
	ListByMaterial(materialID int64) ([]*entity.MaterialSupplierView, error)
	// EligibleByMaterial lista solo vínculos cuyo proveedor está en cooperación
	// (active), ordenados por id. El ranking de selección es del dominio
	// (procurement.SelectOptimal), no del SQL.
	EligibleByMaterial(materialID int64) ([]*entity.MaterialSupplierView, error)
	ListAll() ([]*entity.MaterialSupplierView, error)
	Create(link *entity.MaterialSupplier) error
	Update(link *entity.MaterialSupplier) error
	Delete(id int64) error
}
