package entity

import "time"

// Estados de cooperación de un proveedor.
const (
	SupplierStatusActive     = "active"     // en cooperación, elegible para compras
	SupplierStatusTerminated = "terminated" // cooperación terminada
)

// Supplier representa un proveedor de materiales. Solo los proveedores con
// estado active participan en la selección de compras.
type Supplier struct {
	ID        int64
	Name      string
	Contact   string
	Phone     string
	Status    string // active | terminated
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el proveedor está en cooperación.
func (s *Supplier) IsActive() bool { return s.Status == SupplierStatusActive }
