package dto

import "github.com/shopspring/decimal"

// ─── Materiales ───

// MaterialRequest body de alta/edición de material. La existencia no se toca
// por aquí: todo ingreso o salida pasa por el motor de stock.
type MaterialRequest struct {
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Spec        string          `json:"spec,omitempty"`
	SafetyStock decimal.Decimal `json:"safety_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// MaterialDTO material en respuestas.
type MaterialDTO struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Spec        string          `json:"spec,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	SafetyStock decimal.Decimal `json:"safety_stock"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// MaterialPageRequest query para GET /api/materials.
type MaterialPageRequest struct {
	PageRequest
	Name string `query:"name"`
}

// MaterialPageResponse página de materiales.
type MaterialPageResponse struct {
	PageResponse
	Items []MaterialDTO `json:"items"`
}

// ─── Proveedores ───

// SupplierRequest body de alta/edición de proveedor.
type SupplierRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// SupplierStatusRequest body para alternar cooperación.
type SupplierStatusRequest struct {
	Status string `json:"status"` // active | terminated
}

// SupplierDTO proveedor en respuestas.
type SupplierDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Contact   string `json:"contact,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// SupplierPageRequest query para GET /api/suppliers.
type SupplierPageRequest struct {
	PageRequest
	Name   string `query:"name"`
	Status string `query:"status"`
}

// SupplierPageResponse página de proveedores.
type SupplierPageResponse struct {
	PageResponse
	Items []SupplierDTO `json:"items"`
}

// ─── Vínculos material-proveedor ───

// LinkRequest body de alta/edición de vínculo material-proveedor.
type LinkRequest struct {
	MaterialID int64           `json:"material_id"`
	SupplierID int64           `json:"supplier_id"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Preferred  bool            `json:"preferred"`
}

// LinkDTO vínculo material-proveedor en respuestas.
type LinkDTO struct {
	ID             int64           `json:"id"`
	MaterialID     int64           `json:"material_id"`
	MaterialName   string          `json:"material_name,omitempty"`
	SupplierID     int64           `json:"supplier_id"`
	SupplierName   string          `json:"supplier_name,omitempty"`
	SupplierStatus string          `json:"supplier_status,omitempty"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Preferred      bool            `json:"preferred"`
	CreatedAt      string          `json:"created_at"`
}

// ─── Libros ───

// BookRequest body de alta de libro.
type BookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
}

// BookVersionRequest body de alta de versión/edición.
type BookVersionRequest struct {
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
	Pages       int    `json:"pages"`
}

// BookDTO libro en respuestas.
type BookDTO struct {
	ID        int64            `json:"id"`
	Title     string           `json:"title"`
	Author    string           `json:"author,omitempty"`
	Versions  []BookVersionDTO `json:"versions,omitempty"`
	CreatedAt string           `json:"created_at"`
}

// BookVersionDTO versión de libro en respuestas.
type BookVersionDTO struct {
	ID          int64  `json:"id"`
	BookID      int64  `json:"book_id"`
	ISBN        string `json:"isbn"`
	Description string `json:"description"`
	Pages       int    `json:"pages"`
	CreatedAt   string `json:"created_at"`
}

// BookListRequest query para GET /api/books.
type BookListRequest struct {
	Title  string `query:"title"`
	Author string `query:"author"`
	Sort   string `query:"sort"` // id_asc | id_desc | name_alpha
}

// BookImportResponse resultado de importar un feed ONIX.
type BookImportResponse struct {
	Imported int       `json:"imported"`
	Books    []BookDTO `json:"books"`
}

// ─── Empleados ───

// EmployeeRequest body de alta/edición de empleado.
type EmployeeRequest struct {
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	HiredAt  string `json:"hired_at,omitempty"` // YYYY-MM-DD
}

// EmployeeStatusRequest body para cambiar el estado laboral.
type EmployeeStatusRequest struct {
	Status string `json:"status"` // active | inactive
}

// EmployeeDTO empleado en respuestas.
type EmployeeDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Status   string `json:"status"`
	HiredAt  string `json:"hired_at,omitempty"`
}

// EmployeePageRequest query para GET /api/employees.
type EmployeePageRequest struct {
	PageRequest
	Name   string `query:"name"`
	Status string `query:"status"`
}

// EmployeePageResponse página de empleados.
type EmployeePageResponse struct {
	PageResponse
	Items []EmployeeDTO `json:"items"`
}
